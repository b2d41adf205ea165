package draft

import (
	"testing"

	"hirewheels/models"
)

func TestBillingUnitFromName(t *testing.T) {
	cases := []struct {
		name string
		want models.BillingUnit
	}{
		{"2 Hourly", models.BillPerHour},
		{"4 Hourly Premium", models.BillPerHour},
		{"Weekly Classic", models.BillPerWeek},
		{"Monthly Premium", models.BillPerMonth},
		{"One Way Drop", models.BillPerTrip},
		{"Outstation", models.BillPerTrip},
	}
	for _, tc := range cases {
		if got := BillingUnitFromName(tc.name); got != tc.want {
			t.Errorf("BillingUnitFromName(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestDestinationRequired(t *testing.T) {
	if DestinationRequired(models.BillPerHour) {
		t.Errorf("hourly packages must not require a destination")
	}
	for _, unit := range []models.BillingUnit{models.BillPerTrip, models.BillPerWeek, models.BillPerMonth} {
		if !DestinationRequired(unit) {
			t.Errorf("unit %q should require a destination", unit)
		}
	}
}

func completeDriverDraft() *models.BookingDraft {
	return &models.BookingDraft{
		Category:      models.CategoryDriver,
		BillingUnit:   models.BillPerTrip,
		Origin:        models.Location{Address: "MG Road"},
		Destination:   models.Location{Address: "Airport"},
		ScheduledDate: "2026-09-01",
		ScheduledTime: "09:30",
	}
}

func TestCanProceedDriver(t *testing.T) {
	d := completeDriverDraft()
	if ok, _ := CanProceed(d); !ok {
		t.Fatalf("complete driver draft should proceed")
	}

	d.Destination = models.Location{}
	ok, msg := CanProceed(d)
	if ok {
		t.Fatalf("per-trip draft without destination should not proceed")
	}
	if msg != msgDriverIncomplete {
		t.Errorf("unexpected message %q", msg)
	}

	// Hourly packages drop the destination requirement.
	d.BillingUnit = models.BillPerHour
	if ok, _ := CanProceed(d); !ok {
		t.Errorf("hourly draft without destination should proceed")
	}
}

func TestCanProceedParcelContacts(t *testing.T) {
	d := completeDriverDraft()
	d.Category = models.CategoryParcel

	ok, msg := CanProceed(d)
	if ok {
		t.Fatalf("parcel draft without contacts should not proceed")
	}
	if msg != msgParcelIncomplete {
		t.Errorf("unexpected message %q", msg)
	}

	d.Sender = models.ParcelContact{Kind: models.ContactOther, Name: "Asha", Mobile: "9876543210"}
	d.Receiver = models.ParcelContact{Kind: models.ContactOther, Name: "Ravi", Mobile: "  "}
	if ok, _ := CanProceed(d); ok {
		t.Fatalf("whitespace-only receiver mobile should not count as filled")
	}

	d.Receiver.Mobile = "9123456780"
	if ok, _ := CanProceed(d); !ok {
		t.Fatalf("parcel draft with full contacts should proceed")
	}
}

func TestCanProceedMissingSchedule(t *testing.T) {
	d := completeDriverDraft()
	d.ScheduledTime = ""
	if ok, _ := CanProceed(d); ok {
		t.Fatalf("draft without a scheduled time should not proceed")
	}
}
