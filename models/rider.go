package models

import "time"

// Rider is an authenticated customer account, keyed by phone number.
type Rider struct {
	ID           string `json:"id" bson:"id"`
	Name         string `json:"name" bson:"name"`
	PhoneNumber  string `json:"phoneNumber" bson:"phoneNumber"`
	Email        string `json:"email,omitempty" bson:"email,omitempty"`
	City         string `json:"city,omitempty" bson:"city,omitempty"`
	ReferralCode string `json:"referralCode" bson:"referralCode"`
	ReferredBy   string `json:"referredBy,omitempty" bson:"referredBy,omitempty"`

	WalletBalance   float64 `json:"walletBalance" bson:"walletBalance"`
	ReferralBalance float64 `json:"referralBalance" bson:"referralBalance"`

	// ProfileComplete is false for riders created by OTP verification until
	// they submit the profile step.
	ProfileComplete bool `json:"profileComplete" bson:"profileComplete"`

	// TokenHash is the SHA-256 of the currently valid bearer token.
	TokenHash string `json:"-" bson:"tokenHash,omitempty"`

	// FCMTokens holds push tokens for the rider's devices.
	FCMTokens []string `json:"-" bson:"fcmTokens,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// WalletTransaction records a wallet credit or debit.
type WalletTransaction struct {
	ID        string    `json:"id" bson:"id"`
	RiderID   string    `json:"riderId" bson:"riderId"`
	Amount    float64   `json:"amount" bson:"amount"`
	Kind      string    `json:"kind" bson:"kind"` // "topup", "deduct", "refund"
	Reference string    `json:"reference,omitempty" bson:"reference,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
