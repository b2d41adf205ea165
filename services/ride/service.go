package ride

import (
	"context"
	"fmt"
	"time"

	riderRepo "hirewheels/database/repository/rider"
	"hirewheels/models"
	"hirewheels/services/draft"
	"hirewheels/services/notification"
	"hirewheels/services/rider"
	"hirewheels/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const reminderLead = time.Hour

// RideService turns a completed draft into a booked ride.
type RideService interface {
	Submit(ctx context.Context, riderID string) (*models.Ride, error)
}

// DefaultRideService implements RideService.
type DefaultRideService struct {
	Drafts       draft.DraftService
	Riders       rider.RiderService
	Repo         riderRepo.RiderRepository
	Upstream     *Client
	Notification notification.NotificationService
	Reminders    *asynq.Client
	Logger       *zap.Logger
}

// Submit finalizes the rider's draft. It requires a fresh quote with a
// selected option and a complete draft, applies the referral discount,
// pre-deducts wallet payments, and only purges the draft once the rides
// upstream has accepted the booking. A rejected submission leaves the draft
// and the wallet exactly as they were.
func (s *DefaultRideService) Submit(ctx context.Context, riderID string) (*models.Ride, error) {
	d, err := s.Drafts.Get(ctx, riderID)
	if err != nil {
		if err == draft.ErrNotFound {
			return nil, draft.NewValidationError("no booking in progress")
		}
		return nil, err
	}

	if ok, msg := draft.CanProceed(d); !ok {
		return nil, draft.NewValidationError(msg)
	}
	if d.Quote == nil || d.QuoteStale || d.SelectedQuoteOption == "" {
		return nil, draft.NewValidationError("waiting for an up to date price, please try again")
	}
	opt, ok := d.Quote.Option(d.SelectedQuoteOption)
	if !ok {
		return nil, draft.NewValidationError("the selected price option is no longer available")
	}
	if d.PaymentMethod == "" {
		return nil, draft.NewValidationError("please choose a payment method")
	}

	r, err := s.Riders.GetRiderByID(ctx, riderID)
	if err != nil {
		return nil, err
	}

	payable := opt.TotalPayable
	discount := 0.0
	if d.ReferralApplied && r.ReferralBalance > 0 {
		discount = r.ReferralBalance
		if discount > payable {
			discount = payable
		}
		payable -= discount
	}

	walletHeld := false
	if d.PaymentMethod == models.PayWallet && payable > 0 {
		if err := s.Riders.DeductWallet(ctx, riderID, payable, "ride:"+d.ID); err != nil {
			return nil, err
		}
		walletHeld = true
	}

	sub := buildSubmission(d, riderID, payable, discount)
	booked, err := s.Upstream.Book(ctx, sub)
	if err != nil {
		if walletHeld {
			if rerr := s.Riders.RefundWallet(ctx, riderID, payable, "ride:"+d.ID); rerr != nil {
				s.Logger.Error("wallet refund after failed submission failed",
					zap.String("rider", riderID), zap.Float64("amount", payable), zap.Error(rerr))
			}
		}
		return nil, err
	}

	if discount > 0 {
		if _, aerr := s.Repo.AdjustReferralBalance(riderID, -discount); aerr != nil {
			s.Logger.Error("referral balance deduction failed",
				zap.String("rider", riderID), zap.Float64("discount", discount), zap.Error(aerr))
		}
	}

	if err := s.Drafts.Purge(ctx, riderID); err != nil {
		s.Logger.Warn("purging draft after booking failed",
			zap.String("rider", riderID), zap.Error(err))
	}

	s.scheduleReminder(booked, riderID)
	s.sendConfirmation(ctx, r, booked)

	s.Logger.Info("ride booked",
		zap.String("rider", riderID),
		zap.String("ride", booked.ID),
		zap.Float64("totalPayable", payable))
	return booked, nil
}

func buildSubmission(d *models.BookingDraft, riderID string, payable, discount float64) models.RideSubmission {
	return models.RideSubmission{
		RiderID:             riderID,
		Category:            d.Category,
		SubcategoryID:       d.SubcategoryID,
		SubSubcategoryID:    d.SubSubcategoryID,
		City:                d.City,
		Origin:              d.Origin,
		Destination:         d.Destination,
		ScheduledDate:       d.ScheduledDate,
		ScheduledTime:       d.ScheduledTime,
		SelectedDates:       d.SelectedDates,
		VehicleCategory:     d.VehicleCategory,
		Transmission:        d.Transmission,
		Sender:              d.Sender,
		Receiver:            d.Receiver,
		Usage:               d.Usage(),
		IncludeInsurance:    d.IncludeInsurance,
		Notes:               d.Notes,
		SelectedQuoteOption: d.SelectedQuoteOption,
		TotalPayable:        payable,
		ReferralDiscount:    discount,
		PaymentMethod:       d.PaymentMethod,
	}
}

// scheduleReminder enqueues a push reminder one hour before the ride starts.
// Rides starting sooner than that get no reminder.
func (s *DefaultRideService) scheduleReminder(booked *models.Ride, riderID string) {
	if s.Reminders == nil {
		return
	}
	start, err := time.ParseInLocation("2006-01-02 15:04",
		booked.ScheduledDate+" "+booked.ScheduledTime, time.Local)
	if err != nil {
		s.Logger.Warn("unparseable ride schedule, skipping reminder",
			zap.String("ride", booked.ID), zap.Error(err))
		return
	}
	fireAt := start.Add(-reminderLead)
	if !fireAt.After(time.Now()) {
		return
	}

	payload := models.ReminderPayload{
		RideID:   booked.ID,
		RiderID:  riderID,
		Title:    "Upcoming ride",
		Body:     fmt.Sprintf("Your %s booking starts at %s.", booked.Category, booked.ScheduledTime),
		FireDate: fireAt.Format(time.RFC3339),
	}
	task, opts, err := tasks.NewReminderTask(payload, fireAt)
	if err != nil {
		s.Logger.Error("building reminder task failed", zap.Error(err))
		return
	}
	if _, err := s.Reminders.Enqueue(task, opts...); err != nil {
		s.Logger.Error("enqueueing reminder failed",
			zap.String("ride", booked.ID), zap.Error(err))
	}
}

func (s *DefaultRideService) sendConfirmation(ctx context.Context, r *models.Rider, booked *models.Ride) {
	if s.Notification == nil {
		return
	}
	body := fmt.Sprintf("Your %s booking for %s at %s is confirmed.",
		booked.Category, booked.ScheduledDate, booked.ScheduledTime)
	if err := s.Notification.SendRiderPush(ctx, r, "Booking confirmed", body,
		map[string]string{"rideId": booked.ID}); err != nil {
		s.Logger.Warn("confirmation push failed",
			zap.String("rider", r.ID), zap.Error(err))
	}
}
