package rider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hirewheels/models"
	"hirewheels/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const tokenDuration = 30 * 24 * time.Hour

// SendOTP issues a one-time password to the phone number.
func (s *DefaultRiderService) SendOTP(ctx context.Context, phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return fmt.Errorf("phone number is required")
	}
	return utils.InitiateRiderOTP(phone)
}

// VerifyOTP checks the OTP and returns a bearer credential. Unknown phone
// numbers get a skeleton rider record; those riders must complete the
// profile step before the booking flow resumes.
func (s *DefaultRiderService) VerifyOTP(ctx context.Context, phone, otp, deviceID string) (*AuthResult, error) {
	phone = strings.TrimSpace(phone)
	if err := utils.VerifyRiderOTPRecord(phone, otp); err != nil {
		return nil, err
	}

	rider, err := s.Repo.GetByPhone(phone)
	if err != nil {
		return nil, err
	}

	isNew := rider == nil
	if isNew {
		rider = &models.Rider{
			ID:           uuid.New().String(),
			PhoneNumber:  phone,
			ReferralCode: newReferralCode(),
		}
		if err := s.Repo.Create(rider); err != nil {
			return nil, fmt.Errorf("failed to create rider: %w", err)
		}
		s.Logger.Info("new rider registered", zap.String("rider", rider.ID))
	}

	token, err := utils.GenerateToken(rider.ID, deviceID, tokenDuration)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	rider.TokenHash = utils.HashToken(token)
	if err := s.Repo.Update(rider); err != nil {
		return nil, err
	}

	return &AuthResult{
		Token:      token,
		IsNewRider: isNew || !rider.ProfileComplete,
		Rider:      rider,
	}, nil
}

// CompleteProfile fills in the details a new rider must provide before the
// booking flow resumes.
func (s *DefaultRiderService) CompleteProfile(ctx context.Context, riderID, name, email, city string) (*models.Rider, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	rider, err := s.Repo.GetByID(riderID)
	if err != nil {
		return nil, err
	}
	rider.Name = name
	rider.Email = strings.TrimSpace(email)
	rider.City = strings.TrimSpace(city)
	rider.ProfileComplete = true
	if err := s.Repo.Update(rider); err != nil {
		return nil, err
	}
	return rider, nil
}

// GetRiderByID fetches a rider record.
func (s *DefaultRiderService) GetRiderByID(ctx context.Context, riderID string) (*models.Rider, error) {
	return s.Repo.GetByID(riderID)
}

// RevokeToken invalidates the rider's current bearer token (logout, 401
// recovery).
func (s *DefaultRiderService) RevokeToken(ctx context.Context, riderID string) error {
	rider, err := s.Repo.GetByID(riderID)
	if err != nil {
		return err
	}
	rider.TokenHash = ""
	return s.Repo.Update(rider)
}

func newReferralCode() string {
	return "HW" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}
