package riderRepo

import (
	"hirewheels/models"
)

// RiderRepository defines methods for rider data access.
type RiderRepository interface {
	// GetByID retrieves a rider by its unique ID.
	GetByID(id string) (*models.Rider, error)
	// GetByPhone retrieves a rider by phone number.
	GetByPhone(phone string) (*models.Rider, error)
	// Create inserts a new rider record.
	Create(rider *models.Rider) error
	// Update modifies an existing rider record.
	Update(rider *models.Rider) error
	// Delete removes a rider record by its ID.
	Delete(id string) error
	// AdjustWalletBalance atomically credits (positive) or debits (negative)
	// the rider's wallet, refusing debits past zero.
	AdjustWalletBalance(id string, delta float64) (float64, error)
	// AdjustReferralBalance atomically adjusts the referral balance.
	AdjustReferralBalance(id string, delta float64) (float64, error)
	// RecordWalletTransaction appends a wallet ledger entry.
	RecordWalletTransaction(txn *models.WalletTransaction) error
}
