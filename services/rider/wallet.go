package rider

import (
	"context"
	"fmt"

	"hirewheels/models"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// WalletBalance returns the rider's current wallet balance.
func (s *DefaultRiderService) WalletBalance(ctx context.Context, riderID string) (float64, error) {
	rider, err := s.Repo.GetByID(riderID)
	if err != nil {
		return 0, err
	}
	return rider.WalletBalance, nil
}

// TopUpWallet charges the rider through the payment gateway and credits the
// wallet once the charge succeeds.
func (s *DefaultRiderService) TopUpWallet(ctx context.Context, riderID string, amount float64) (*models.WalletTransaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("invalid top-up amount")
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(amount * 100)),
		Currency: stripe.String(string(stripe.CurrencyINR)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("riderId", riderID)
	intent, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("payment gateway rejected top-up: %w", err)
	}

	balance, err := s.Repo.AdjustWalletBalance(riderID, amount)
	if err != nil {
		return nil, err
	}

	txn := &models.WalletTransaction{
		ID:        uuid.New().String(),
		RiderID:   riderID,
		Amount:    amount,
		Kind:      "topup",
		Reference: intent.ID,
	}
	if err := s.Repo.RecordWalletTransaction(txn); err != nil {
		s.Logger.Error("failed to record wallet top-up", zap.Error(err))
	}

	s.Logger.Info("wallet topped up",
		zap.String("rider", riderID), zap.Float64("amount", amount), zap.Float64("balance", balance))
	return txn, nil
}

// DeductWallet debits the wallet ahead of a wallet-paid booking. An
// insufficient balance refuses the deduction and the booking must not be
// submitted.
func (s *DefaultRiderService) DeductWallet(ctx context.Context, riderID string, amount float64, reference string) error {
	if amount <= 0 {
		return nil
	}
	if _, err := s.Repo.AdjustWalletBalance(riderID, -amount); err != nil {
		return err
	}
	txn := &models.WalletTransaction{
		ID:        uuid.New().String(),
		RiderID:   riderID,
		Amount:    -amount,
		Kind:      "deduct",
		Reference: reference,
	}
	if err := s.Repo.RecordWalletTransaction(txn); err != nil {
		s.Logger.Error("failed to record wallet deduction", zap.Error(err))
	}
	return nil
}

// RefundWallet returns a previously deducted amount after a failed
// submission.
func (s *DefaultRiderService) RefundWallet(ctx context.Context, riderID string, amount float64, reference string) error {
	if amount <= 0 {
		return nil
	}
	if _, err := s.Repo.AdjustWalletBalance(riderID, amount); err != nil {
		return err
	}
	txn := &models.WalletTransaction{
		ID:        uuid.New().String(),
		RiderID:   riderID,
		Amount:    amount,
		Kind:      "refund",
		Reference: reference,
	}
	if err := s.Repo.RecordWalletTransaction(txn); err != nil {
		s.Logger.Error("failed to record wallet refund", zap.Error(err))
	}
	return nil
}
