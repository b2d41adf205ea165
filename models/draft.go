package models

import "time"

// Category is the top-level booking family. Only these three families ever
// reach the pricing service.
type Category string

const (
	CategoryDriver Category = "Driver"
	CategoryCab    Category = "Cab"
	CategoryParcel Category = "Parcel"
)

// Valid reports whether the category is one of the priced families.
func (c Category) Valid() bool {
	return c == CategoryDriver || c == CategoryCab || c == CategoryParcel
}

// BillingUnit is the cadence a subcategory is priced by. It is derived once,
// at catalog load, from the subcategory display name, so downstream rules
// never string-match.
type BillingUnit string

const (
	BillPerTrip  BillingUnit = "perTrip"
	BillPerHour  BillingUnit = "perHour"
	BillPerWeek  BillingUnit = "perWeek"
	BillPerMonth BillingUnit = "perMonth"
)

// Recurring reports whether the unit carries a duration and date set.
func (b BillingUnit) Recurring() bool {
	return b == BillPerWeek || b == BillPerMonth
}

// Location is a structured pickup/drop point.
type Location struct {
	Address   string  `json:"address"`
	PlaceID   string  `json:"placeId,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

// Empty reports whether the location has been filled in.
func (l Location) Empty() bool {
	return l.Address == ""
}

// ContactKind says whether a parcel contact is the rider or someone else.
type ContactKind string

const (
	ContactMyself ContactKind = "myself"
	ContactOther  ContactKind = "other"
)

// ParcelContact is one end of a parcel delivery (sender or receiver).
type ParcelContact struct {
	Kind   ContactKind `json:"kind"`
	Name   string      `json:"name"`
	Mobile string      `json:"mobile"`
	// Locked is true while Kind is "myself": the fields are filled from the
	// rider profile and must not be hand-edited.
	Locked bool `json:"locked"`
}

// DurationType distinguishes day-counted monthly plans from other units.
type DurationType string

const DurationTypeDay DurationType = "Day"

// BookingDraft is the single mutable record threading through both booking
// steps. Exactly one of UsagePreset / UsageCustom is non-empty at any time.
type BookingDraft struct {
	ID      string `json:"id"`
	OwnerID string `json:"ownerId"`
	RiderID string `json:"riderId,omitempty"`

	Category           Category    `json:"category"`
	SubcategoryID      string      `json:"subcategoryId"`
	SubcategoryName    string      `json:"subcategoryName"`
	BillingUnit        BillingUnit `json:"billingUnit"`
	SubSubcategoryID   string      `json:"subSubcategoryId,omitempty"`
	SubSubcategoryName string      `json:"subSubcategoryName,omitempty"`

	City          string   `json:"city"`
	Origin        Location `json:"origin"`
	Destination   Location `json:"destination"`
	ScheduledDate string   `json:"scheduledDate"` // YYYY-MM-DD
	ScheduledTime string   `json:"scheduledTime"` // HH:MM

	VehicleCategory string `json:"vehicleCategory,omitempty"` // Driver only
	Transmission    string `json:"transmission,omitempty"`    // Driver only
	CarCategory     string `json:"carCategory,omitempty"`     // Cab only
	ParcelCategory  string `json:"parcelCategory,omitempty"`  // Parcel only

	Sender   ParcelContact `json:"sender,omitempty"`
	Receiver ParcelContact `json:"receiver,omitempty"`

	// UsagePreset is a value picked from the server-supplied preset set;
	// UsageCustom is a free-form value. Selecting one clears the other.
	UsagePreset string `json:"usagePreset,omitempty"`
	UsageCustom string `json:"usageCustom,omitempty"`

	DurationType  DurationType `json:"durationType,omitempty"`
	DurationValue int          `json:"durationValue,omitempty"`
	// SelectedDates holds exactly DurationValue calendar dates (YYYY-MM-DD)
	// for weekly/monthly subcategories.
	SelectedDates []string `json:"selectedDates,omitempty"`
	// DatesEdited is set once the rider hand-toggles a date; boundary
	// adjustments then preserve the edits instead of regenerating.
	DatesEdited bool `json:"datesEdited,omitempty"`

	IncludeInsurance bool   `json:"includeInsurance"`
	Notes            string `json:"notes,omitempty"`

	Quote               *Quote `json:"quote,omitempty"`
	SelectedQuoteOption string `json:"selectedQuoteOption,omitempty"`
	// QuoteStale is set the instant any pricing-relevant field changes and
	// cleared when a fresh quote lands. A stale quote cannot be booked.
	QuoteStale bool `json:"quoteStale,omitempty"`

	ReferralApplied bool          `json:"referralApplied"`
	PaymentMethod   PaymentMethod `json:"paymentMethod,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Usage returns whichever usage representation is set.
func (d *BookingDraft) Usage() string {
	if d.UsagePreset != "" {
		return d.UsagePreset
	}
	return d.UsageCustom
}

// HasUsage reports whether any usage amount has been entered.
func (d *BookingDraft) HasUsage() bool {
	return d.UsagePreset != "" || d.UsageCustom != ""
}
