package draft

import (
	"reflect"
	"testing"
	"time"

	"hirewheels/models"
)

func TestValidateDurationWeekly(t *testing.T) {
	if err := ValidateDuration(models.BillPerWeek, models.DurationTypeDay, 2); err == nil {
		t.Fatalf("2 days should be below the weekly minimum")
	} else if err.Error() != msgWeeklyMin {
		t.Errorf("unexpected message %q", err.Error())
	}

	if err := ValidateDuration(models.BillPerWeek, models.DurationTypeDay, 15); err == nil {
		t.Fatalf("15 days should be above the weekly maximum")
	} else if err.Error() != msgWeeklyMax {
		t.Errorf("unexpected message %q", err.Error())
	}

	for _, v := range []int{3, 7, 14} {
		if err := ValidateDuration(models.BillPerWeek, models.DurationTypeDay, v); err != nil {
			t.Errorf("%d days should be valid for weekly: %v", v, err)
		}
	}
}

func TestValidateDurationMonthly(t *testing.T) {
	for _, v := range []int{19, 27} {
		if err := ValidateDuration(models.BillPerMonth, models.DurationTypeDay, v); err == nil {
			t.Errorf("%d days should be outside the monthly band", v)
		} else if err.Error() != msgMonthlyDay {
			t.Errorf("unexpected message %q", err.Error())
		}
	}
	for _, v := range []int{20, 26} {
		if err := ValidateDuration(models.BillPerMonth, models.DurationTypeDay, v); err != nil {
			t.Errorf("%d days should be valid for monthly: %v", v, err)
		}
	}
}

func TestGenerateDatesStartsTomorrow(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	got := GenerateDates(now, 3)
	want := []string{"2026-08-31", "2026-09-01", "2026-09-02"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("GenerateDates = %v, want %v", got, want)
	}
}

func TestToggleDateDeselectKeepsCardinality(t *testing.T) {
	dates := []string{"2026-09-01", "2026-09-02", "2026-09-03"}

	got := ToggleDate(dates, "2026-09-02")
	want := []string{"2026-09-01", "2026-09-03", "2026-09-04"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("deselect = %v, want %v", got, want)
	}
}

func TestToggleDateSelectAdds(t *testing.T) {
	dates := []string{"2026-09-01", "2026-09-03"}

	got := ToggleDate(dates, "2026-09-02")
	want := []string{"2026-09-01", "2026-09-02", "2026-09-03"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("select = %v, want %v", got, want)
	}
}

func TestRepairOnResumeForcesWeeklyMinimum(t *testing.T) {
	now := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	d := &models.BookingDraft{
		BillingUnit:   models.BillPerWeek,
		DurationType:  models.DurationTypeDay,
		DurationValue: 1,
		SelectedDates: []string{"2026-08-31"},
		DatesEdited:   true,
	}

	if !RepairOnResume(d, now) {
		t.Fatalf("sub-minimum weekly duration should be repaired")
	}
	if d.DurationValue != weeklyMinDays {
		t.Errorf("DurationValue = %d, want %d", d.DurationValue, weeklyMinDays)
	}
	if len(d.SelectedDates) != weeklyMinDays {
		t.Errorf("got %d dates, want %d", len(d.SelectedDates), weeklyMinDays)
	}
	if d.SelectedDates[0] != "2026-08-31" {
		t.Errorf("regenerated dates should start tomorrow, got %v", d.SelectedDates)
	}
	if d.DatesEdited {
		t.Errorf("regeneration should clear the edited flag")
	}
}

func TestRepairOnResumeLeavesValidDraftAlone(t *testing.T) {
	d := &models.BookingDraft{
		BillingUnit:   models.BillPerWeek,
		DurationType:  models.DurationTypeDay,
		DurationValue: 5,
		SelectedDates: []string{"2026-09-01", "2026-09-02", "2026-09-03", "2026-09-05", "2026-09-06"},
		DatesEdited:   true,
	}
	if RepairOnResume(d, time.Now()) {
		t.Fatalf("valid weekly draft should not be repaired")
	}
	if !d.DatesEdited {
		t.Errorf("hand-edited dates must survive resume")
	}

	trip := &models.BookingDraft{BillingUnit: models.BillPerTrip}
	if RepairOnResume(trip, time.Now()) {
		t.Fatalf("non-recurring drafts have nothing to repair")
	}
}
