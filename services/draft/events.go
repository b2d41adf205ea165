package draft

import "hirewheels/models"

// EventType enumerates the field mutations a rider can apply to a draft.
type EventType string

const (
	EventSetCity           EventType = "setCity"
	EventSetOrigin         EventType = "setOrigin"
	EventSetDestination    EventType = "setDestination"
	EventSetSchedule       EventType = "setSchedule"
	EventSetSubcategory    EventType = "setSubcategory"
	EventSetSubSubcategory EventType = "setSubSubcategory"
	EventSetVehicle        EventType = "setVehicle"
	EventSetCarCategory    EventType = "setCarCategory"
	EventSetParcelCategory EventType = "setParcelCategory"
	EventSetSender         EventType = "setSender"
	EventSetReceiver       EventType = "setReceiver"
	EventSelectPreset      EventType = "selectPreset"
	EventTypeCustomUsage   EventType = "typeCustomUsage"
	EventSetDuration       EventType = "setDuration"
	EventToggleDate        EventType = "toggleDate"
	EventToggleInsurance   EventType = "toggleInsurance"
	EventSelectQuoteOption EventType = "selectQuoteOption"
	EventSetNotes          EventType = "setNotes"
	EventSetPaymentMethod  EventType = "setPaymentMethod"
	EventSetReferral       EventType = "setReferral"
)

// Event is one field mutation dispatched through the transition function.
type Event struct {
	Type EventType `json:"type"`

	City     string          `json:"city,omitempty"`
	Location models.Location `json:"location,omitempty"`

	ScheduledDate string `json:"scheduledDate,omitempty"`
	ScheduledTime string `json:"scheduledTime,omitempty"`

	SubcategoryID   string             `json:"subcategoryId,omitempty"`
	SubcategoryName string             `json:"subcategoryName,omitempty"`
	BillingUnit     models.BillingUnit `json:"billingUnit,omitempty"`

	SubSubcategoryID   string `json:"subSubcategoryId,omitempty"`
	SubSubcategoryName string `json:"subSubcategoryName,omitempty"`

	VehicleCategory string `json:"vehicleCategory,omitempty"`
	Transmission    string `json:"transmission,omitempty"`
	Tier            string `json:"tier,omitempty"` // car or parcel category name

	ContactKind models.ContactKind `json:"contactKind,omitempty"`
	Name        string             `json:"name,omitempty"`
	Mobile      string             `json:"mobile,omitempty"`

	Usage string `json:"usage,omitempty"`

	DurationType  models.DurationType `json:"durationType,omitempty"`
	DurationValue int                 `json:"durationValue,omitempty"`
	Date          string              `json:"date,omitempty"`

	Insurance bool `json:"insurance,omitempty"`

	QuoteOption string `json:"quoteOption,omitempty"`

	Notes string `json:"notes,omitempty"`

	PaymentMethod models.PaymentMethod `json:"paymentMethod,omitempty"`
	Referral      bool                 `json:"referral,omitempty"`
}

// CommandType identifies a side effect requested by a transition.
type CommandType string

const (
	// CommandPersist writes the draft to the persisted store.
	CommandPersist CommandType = "persist"
	// CommandRecalculate asks the pricing service for a fresh quote.
	CommandRecalculate CommandType = "recalculate"
)

// Command is a side effect the transition function requests; the service
// layer executes them, so the effect policy is testable without a network.
type Command struct {
	Type CommandType
	// Debounced marks recalculations driven by free-text usage entry, which
	// wait 500ms after the last keystroke before firing.
	Debounced bool
}

func persistOnly() []Command {
	return []Command{{Type: CommandPersist}}
}

func persistAndRecalc(debounced bool) []Command {
	return []Command{{Type: CommandPersist}, {Type: CommandRecalculate, Debounced: debounced}}
}
