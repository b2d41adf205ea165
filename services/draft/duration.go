package draft

import (
	"sort"
	"time"

	"hirewheels/models"
)

const dateLayout = "2006-01-02"

// Duration bounds per billing unit. Out-of-range values are a validation
// error, never silently clamped.
const (
	weeklyMinDays = 3
	weeklyMaxDays = 14
	monthlyMinDay = 20
	monthlyMaxDay = 26
)

const (
	msgWeeklyMin  = "A weekly booking needs a minimum of 3 days"
	msgWeeklyMax  = "For more than 14 days, please switch to a monthly package"
	msgMonthlyDay = "A monthly booking must be between 20 and 26 days"
)

// ValidateDuration checks the duration value against the bounds for the
// billing unit. A nil error means the value may regenerate the date set and
// trigger recalculation.
func ValidateDuration(unit models.BillingUnit, dtype models.DurationType, value int) error {
	switch unit {
	case models.BillPerWeek:
		if value < weeklyMinDays {
			return NewValidationError(msgWeeklyMin)
		}
		if value > weeklyMaxDays {
			return NewValidationError(msgWeeklyMax)
		}
	case models.BillPerMonth:
		if dtype == models.DurationTypeDay && (value < monthlyMinDay || value > monthlyMaxDay) {
			return NewValidationError(msgMonthlyDay)
		}
	}
	return nil
}

// GenerateDates returns the next n consecutive calendar days starting
// tomorrow. Used whenever durationValue itself changes: regeneration is
// destructive and discards any manual edits.
func GenerateDates(now time.Time, n int) []string {
	dates := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		dates = append(dates, now.AddDate(0, 0, i).Format(dateLayout))
	}
	return dates
}

// ToggleDate flips one date's membership in the selected set. Deselecting a
// date removes it and appends the next unused consecutive date after the
// current maximum, keeping the displayed cardinality constant. Selecting an
// unselected date simply adds it. Toggling never changes durationValue and
// never triggers recalculation.
func ToggleDate(dates []string, date string) []string {
	idx := -1
	for i, d := range dates {
		if d == date {
			idx = i
			break
		}
	}

	if idx < 0 {
		out := append(append([]string{}, dates...), date)
		sort.Strings(out)
		return out
	}

	out := append(append([]string{}, dates[:idx]...), dates[idx+1:]...)
	if next, ok := nextUnusedDate(dates); ok {
		out = append(out, next)
	}
	sort.Strings(out)
	return out
}

// nextUnusedDate finds the first consecutive date after the set's maximum.
func nextUnusedDate(dates []string) (string, bool) {
	if len(dates) == 0 {
		return "", false
	}
	max := dates[0]
	for _, d := range dates[1:] {
		if d > max {
			max = d
		}
	}
	t, err := time.Parse(dateLayout, max)
	if err != nil {
		return "", false
	}
	return t.AddDate(0, 0, 1).Format(dateLayout), true
}

// RepairOnResume patches a restored draft whose persisted duration reads as
// invalid: a weekly draft with a missing or sub-minimum duration is forced
// back to the minimum and its date set regenerated. This mirrors the
// historical resume behavior; a deliberately chosen value that deserialized
// below the minimum is overwritten, which is a known data-loss surprise.
func RepairOnResume(d *models.BookingDraft, now time.Time) bool {
	if !d.BillingUnit.Recurring() {
		return false
	}

	repaired := false
	if d.BillingUnit == models.BillPerWeek && d.DurationValue < weeklyMinDays {
		d.DurationValue = weeklyMinDays
		repaired = true
	}
	if d.DurationValue > 0 && len(d.SelectedDates) != d.DurationValue {
		repaired = true
	}
	if repaired {
		d.SelectedDates = GenerateDates(now, d.DurationValue)
		d.DatesEdited = false
	}
	return repaired
}
