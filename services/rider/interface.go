package rider

import (
	"context"

	riderRepo "hirewheels/database/repository/rider"
	"hirewheels/models"

	"go.uber.org/zap"
)

// AuthResult is what a successful OTP verification yields.
type AuthResult struct {
	Token      string        `json:"token"`
	IsNewRider bool          `json:"isNewRider"`
	Rider      *models.Rider `json:"rider"`
}

// RiderService handles OTP authentication, profiles and wallet operations.
type RiderService interface {
	SendOTP(ctx context.Context, phone string) error
	VerifyOTP(ctx context.Context, phone, otp, deviceID string) (*AuthResult, error)
	CompleteProfile(ctx context.Context, riderID, name, email, city string) (*models.Rider, error)
	GetRiderByID(ctx context.Context, riderID string) (*models.Rider, error)
	RevokeToken(ctx context.Context, riderID string) error

	WalletBalance(ctx context.Context, riderID string) (float64, error)
	TopUpWallet(ctx context.Context, riderID string, amount float64) (*models.WalletTransaction, error)
	DeductWallet(ctx context.Context, riderID string, amount float64, reference string) error
	RefundWallet(ctx context.Context, riderID string, amount float64, reference string) error
}

// DefaultRiderService implements RiderService.
type DefaultRiderService struct {
	Repo   riderRepo.RiderRepository
	Logger *zap.Logger
}
