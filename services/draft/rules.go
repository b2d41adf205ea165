package draft

import (
	"strings"

	"hirewheels/models"
)

// BillingUnitFromName maps a subcategory display name to its billing unit.
// The mapping happens once, when catalog records are loaded; every rule in
// this package works off the enum, never the raw name. The substring
// conventions mirror how subcategories are named upstream ("2 Hourly",
// "Weekly Classic", "Monthly Premium").
func BillingUnitFromName(name string) models.BillingUnit {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "hourly"):
		return models.BillPerHour
	case strings.Contains(n, "weekly"):
		return models.BillPerWeek
	case strings.Contains(n, "monthly"):
		return models.BillPerMonth
	default:
		return models.BillPerTrip
	}
}

// DestinationRequired reports whether the draft needs a drop location.
// Hourly packages are round engagements with no fixed drop.
func DestinationRequired(unit models.BillingUnit) bool {
	return unit != models.BillPerHour
}

// VehicleFieldsActive reports whether vehicle category and transmission apply.
func VehicleFieldsActive(category models.Category) bool {
	return category == models.CategoryDriver
}

// ParcelFieldsActive reports whether sender/receiver details apply.
func ParcelFieldsActive(category models.Category) bool {
	return category == models.CategoryParcel
}

// parcelContactsValid requires all four sender/receiver fields non-empty
// after trimming.
func parcelContactsValid(d *models.BookingDraft) bool {
	return strings.TrimSpace(d.Sender.Name) != "" &&
		strings.TrimSpace(d.Sender.Mobile) != "" &&
		strings.TrimSpace(d.Receiver.Name) != "" &&
		strings.TrimSpace(d.Receiver.Mobile) != ""
}

// Category-level messages shown when the proceed predicate fails. Validation
// failures surface as one human-readable message per category, not
// field-by-field.
const (
	msgDriverIncomplete = "Please select pickup, drop and schedule details to continue"
	msgCabIncomplete    = "Please select pickup, drop and schedule details to continue"
	msgParcelIncomplete = "Please fill pickup, schedule and sender/receiver details to continue"
)

// CanProceed evaluates the step-1 proceed predicate: origin, schedule, a
// destination when the billing unit requires one, and complete parcel
// contacts for parcel drafts. It returns the category's single validation
// message when the predicate fails.
func CanProceed(d *models.BookingDraft) (bool, string) {
	ok := !d.Origin.Empty() &&
		d.ScheduledDate != "" &&
		d.ScheduledTime != "" &&
		(!DestinationRequired(d.BillingUnit) || !d.Destination.Empty()) &&
		(d.Category != models.CategoryParcel || parcelContactsValid(d))

	if ok {
		return true, ""
	}
	switch d.Category {
	case models.CategoryParcel:
		return false, msgParcelIncomplete
	case models.CategoryCab:
		return false, msgCabIncomplete
	default:
		return false, msgDriverIncomplete
	}
}
