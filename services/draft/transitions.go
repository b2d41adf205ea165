package draft

import (
	"time"

	"hirewheels/models"
)

// ApplyContext carries the environment a transition may need: the clock and
// the authenticated rider profile (for "myself" parcel contacts).
type ApplyContext struct {
	Now   time.Time
	Rider *models.Rider
}

// Apply runs one field-mutation event against a draft and returns the mutated
// draft plus the side-effect commands the mutation requires. The draft is
// modified in place; on error it is left untouched and no commands are
// returned.
//
// Any mutation of a pricing-relevant field (usage, duration, insurance, car
// or parcel tier) marks the current quote stale and requests recalculation;
// the quote must not be booked until a fresh one lands.
func Apply(d *models.BookingDraft, ev Event, actx ApplyContext) ([]Command, error) {
	switch ev.Type {
	case EventSetCity:
		d.City = ev.City
		return persistOnly(), nil

	case EventSetOrigin:
		d.Origin = ev.Location
		return persistOnly(), nil

	case EventSetDestination:
		d.Destination = ev.Location
		return persistOnly(), nil

	case EventSetSchedule:
		if ev.ScheduledDate != "" {
			d.ScheduledDate = ev.ScheduledDate
		}
		if ev.ScheduledTime != "" {
			d.ScheduledTime = ev.ScheduledTime
		}
		return persistOnly(), nil

	case EventSetSubcategory:
		return applySubcategory(d, ev, actx)

	case EventSetSubSubcategory:
		d.SubSubcategoryID = ev.SubSubcategoryID
		d.SubSubcategoryName = ev.SubSubcategoryName
		return persistOnly(), nil

	case EventSetVehicle:
		if !VehicleFieldsActive(d.Category) {
			return nil, NewValidationError("vehicle selection applies to driver bookings only")
		}
		if ev.VehicleCategory != "" {
			d.VehicleCategory = ev.VehicleCategory
		}
		if ev.Transmission != "" {
			d.Transmission = ev.Transmission
		}
		return persistOnly(), nil

	case EventSetCarCategory:
		if d.Category != models.CategoryCab {
			return nil, NewValidationError("car category applies to cab bookings only")
		}
		d.CarCategory = ev.Tier
		d.QuoteStale = true
		return persistAndRecalc(false), nil

	case EventSetParcelCategory:
		if d.Category != models.CategoryParcel {
			return nil, NewValidationError("parcel category applies to parcel bookings only")
		}
		d.ParcelCategory = ev.Tier
		d.QuoteStale = true
		return persistAndRecalc(false), nil

	case EventSetSender:
		if d.Category != models.CategoryParcel {
			return nil, NewValidationError("sender details apply to parcel bookings only")
		}
		contact, err := buildContact(ev, actx)
		if err != nil {
			return nil, err
		}
		d.Sender = contact
		return persistOnly(), nil

	case EventSetReceiver:
		if d.Category != models.CategoryParcel {
			return nil, NewValidationError("receiver details apply to parcel bookings only")
		}
		contact, err := buildContact(ev, actx)
		if err != nil {
			return nil, err
		}
		d.Receiver = contact
		return persistOnly(), nil

	case EventSelectPreset:
		d.UsagePreset = ev.Usage
		d.UsageCustom = ""
		d.QuoteStale = true
		return persistAndRecalc(false), nil

	case EventTypeCustomUsage:
		d.UsageCustom = ev.Usage
		d.UsagePreset = ""
		d.QuoteStale = true
		return persistAndRecalc(true), nil

	case EventSetDuration:
		return applyDuration(d, ev, actx)

	case EventToggleDate:
		d.SelectedDates = ToggleDate(d.SelectedDates, ev.Date)
		d.DatesEdited = true
		return persistOnly(), nil

	case EventToggleInsurance:
		d.IncludeInsurance = ev.Insurance
		d.QuoteStale = true
		return persistAndRecalc(false), nil

	case EventSelectQuoteOption:
		if d.Quote == nil {
			return nil, NewValidationError("no quote available yet")
		}
		if _, ok := d.Quote.Option(ev.QuoteOption); !ok {
			return nil, NewValidationError("selected option is not part of the current quote")
		}
		d.SelectedQuoteOption = ev.QuoteOption
		return persistOnly(), nil

	case EventSetNotes:
		d.Notes = ev.Notes
		return persistOnly(), nil

	case EventSetPaymentMethod:
		if ev.PaymentMethod != models.PayCash && ev.PaymentMethod != models.PayWallet {
			return nil, NewValidationError("unsupported payment method")
		}
		d.PaymentMethod = ev.PaymentMethod
		return persistOnly(), nil

	case EventSetReferral:
		d.ReferralApplied = ev.Referral
		return persistOnly(), nil
	}

	return nil, NewValidationError("unknown draft event")
}

// applySubcategory records the plan selection and resets every plan-derived
// field: usage, duration, dates and quote all hang off the subcategory.
func applySubcategory(d *models.BookingDraft, ev Event, actx ApplyContext) ([]Command, error) {
	if ev.SubcategoryID == "" {
		return nil, NewValidationError("subcategory is required")
	}
	d.SubcategoryID = ev.SubcategoryID
	d.SubcategoryName = ev.SubcategoryName
	if ev.BillingUnit != "" {
		d.BillingUnit = ev.BillingUnit
	} else {
		d.BillingUnit = BillingUnitFromName(ev.SubcategoryName)
	}

	d.UsagePreset = ""
	d.UsageCustom = ""
	d.Quote = nil
	d.SelectedQuoteOption = ""
	d.QuoteStale = false
	d.DatesEdited = false

	switch d.BillingUnit {
	case models.BillPerWeek:
		d.DurationType = models.DurationTypeDay
		d.DurationValue = weeklyMinDays
		d.SelectedDates = GenerateDates(actx.Now, d.DurationValue)
	case models.BillPerMonth:
		d.DurationType = models.DurationTypeDay
		d.DurationValue = monthlyMinDay
		d.SelectedDates = GenerateDates(actx.Now, d.DurationValue)
	default:
		d.DurationType = ""
		d.DurationValue = 0
		d.SelectedDates = nil
	}
	return persistOnly(), nil
}

// applyDuration validates the new duration, and only when valid regenerates
// the date set (destructively) and requests recalculation. Invalid values
// leave the draft untouched and never reach the pricing service.
func applyDuration(d *models.BookingDraft, ev Event, actx ApplyContext) ([]Command, error) {
	if !d.BillingUnit.Recurring() {
		return nil, NewValidationError("duration applies to weekly and monthly packages only")
	}
	dtype := ev.DurationType
	if dtype == "" {
		dtype = d.DurationType
	}
	if err := ValidateDuration(d.BillingUnit, dtype, ev.DurationValue); err != nil {
		return nil, err
	}

	d.DurationType = dtype
	d.DurationValue = ev.DurationValue
	d.SelectedDates = GenerateDates(actx.Now, ev.DurationValue)
	d.DatesEdited = false
	d.QuoteStale = true
	return persistAndRecalc(false), nil
}

// buildContact assembles a parcel contact. "myself" autofills from the rider
// profile and locks the fields; switching to "other" clears them for manual
// entry.
func buildContact(ev Event, actx ApplyContext) (models.ParcelContact, error) {
	switch ev.ContactKind {
	case models.ContactMyself:
		if actx.Rider == nil {
			return models.ParcelContact{}, NewValidationError("sign in to use your own details")
		}
		return models.ParcelContact{
			Kind:   models.ContactMyself,
			Name:   actx.Rider.Name,
			Mobile: actx.Rider.PhoneNumber,
			Locked: true,
		}, nil
	case models.ContactOther:
		return models.ParcelContact{
			Kind:   models.ContactOther,
			Name:   ev.Name,
			Mobile: ev.Mobile,
		}, nil
	}
	return models.ParcelContact{}, NewValidationError("contact kind must be myself or other")
}
