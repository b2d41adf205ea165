package models

import "time"

// PaymentMethod is how the rider pays for a booking.
type PaymentMethod string

const (
	PayCash   PaymentMethod = "cash"
	PayWallet PaymentMethod = "wallet"
)

// RideSubmission is the finalized draft sent to the rides upstream.
type RideSubmission struct {
	RiderID             string        `json:"riderId"`
	Category            Category      `json:"category"`
	SubcategoryID       string        `json:"subcategoryId"`
	SubSubcategoryID    string        `json:"subSubcategoryId,omitempty"`
	City                string        `json:"city"`
	Origin              Location      `json:"origin"`
	Destination         Location      `json:"destination,omitempty"`
	ScheduledDate       string        `json:"scheduledDate"`
	ScheduledTime       string        `json:"scheduledTime"`
	SelectedDates       []string      `json:"selectedDates,omitempty"`
	VehicleCategory     string        `json:"vehicleCategory,omitempty"`
	Transmission        string        `json:"transmission,omitempty"`
	Sender              ParcelContact `json:"sender,omitempty"`
	Receiver            ParcelContact `json:"receiver,omitempty"`
	Usage               string        `json:"usage"`
	IncludeInsurance    bool          `json:"includeInsurance"`
	Notes               string        `json:"notes,omitempty"`
	SelectedQuoteOption string        `json:"selectedQuoteOption"`
	TotalPayable        float64       `json:"totalPayable"`
	ReferralDiscount    float64       `json:"referralDiscount,omitempty"`
	PaymentMethod       PaymentMethod `json:"paymentMethod"`
}

// Ride is the created booking returned by the rides upstream.
type Ride struct {
	ID            string        `json:"id"`
	RiderID       string        `json:"riderId"`
	Category      Category      `json:"category"`
	Status        string        `json:"status"`
	ScheduledDate string        `json:"scheduledDate"`
	ScheduledTime string        `json:"scheduledTime"`
	TotalPayable  float64       `json:"totalPayable"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// ReminderPayload is the asynq task body for a ride start reminder.
type ReminderPayload struct {
	RideID   string `json:"rideId"`
	RiderID  string `json:"riderId"`
	Title    string `json:"title"`
	Body     string `json:"body"`
	FireDate string `json:"fireDate"`
}
