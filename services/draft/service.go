package draft

import (
	"context"
	"time"

	"hirewheels/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ResumeTarget says where the client lands after an auth detour.
type ResumeTarget string

const (
	// ResumeStep2 resumes directly at the pricing/payment step.
	ResumeStep2 ResumeTarget = "step2"
	// ResumeHome returns to category selection; a draft without a chosen
	// subcategory is treated as abandoned.
	ResumeHome ResumeTarget = "home"
)

// DraftService manages the in-progress booking draft across both steps.
type DraftService interface {
	Create(ctx context.Context, ownerID string, category models.Category) (*models.BookingDraft, error)
	Get(ctx context.Context, ownerID string) (*models.BookingDraft, error)
	ApplyEvent(ctx context.Context, ownerID string, ev Event, rider *models.Rider) (*models.BookingDraft, error)
	Back(ctx context.Context, ownerID string, step int) (*models.BookingDraft, error)
	Resume(ctx context.Context, deviceID, riderID string) (ResumeTarget, *models.BookingDraft, error)
	Purge(ctx context.Context, ownerID string) error
}

// DefaultDraftService implements DraftService.
type DefaultDraftService struct {
	Store  *Store
	Recalc *Recalculator
	Logger *zap.Logger
}

// Create starts an empty draft when the rider picks a category. The schedule
// defaults to today's date and the current wall-clock time, captured once at
// creation and never re-evaluated.
func (s *DefaultDraftService) Create(ctx context.Context, ownerID string, category models.Category) (*models.BookingDraft, error) {
	if !category.Valid() {
		return nil, NewValidationError("unknown booking category")
	}
	now := time.Now()
	d := &models.BookingDraft{
		ID:            uuid.New().String(),
		OwnerID:       ownerID,
		Category:      category,
		ScheduledDate: now.Format(dateLayout),
		ScheduledTime: now.Format("15:04"),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	switch category {
	case models.CategoryCab:
		d.CarCategory = "Classic"
	case models.CategoryParcel:
		d.ParcelCategory = "Classic"
	}
	if err := s.Store.Save(ctx, d); err != nil {
		return nil, err
	}
	s.Logger.Info("booking draft created",
		zap.String("owner", ownerID), zap.String("category", string(category)))
	return d, nil
}

// Get returns the owner's current draft.
func (s *DefaultDraftService) Get(ctx context.Context, ownerID string) (*models.BookingDraft, error) {
	return s.Store.Get(ctx, ownerID)
}

// ApplyEvent runs one field mutation through the transition function,
// persists the result, and executes the requested side effects.
func (s *DefaultDraftService) ApplyEvent(ctx context.Context, ownerID string, ev Event, rider *models.Rider) (*models.BookingDraft, error) {
	d, err := s.Store.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	cmds, err := Apply(d, ev, ApplyContext{Now: time.Now(), Rider: rider})
	if err != nil {
		return nil, err
	}
	d.UpdatedAt = time.Now()

	for _, cmd := range cmds {
		switch cmd.Type {
		case CommandPersist:
			if err := s.Store.Save(ctx, d); err != nil {
				return nil, err
			}
		case CommandRecalculate:
			s.Recalc.Trigger(ctx, ownerID, cmd.Debounced)
		}
	}
	return d, nil
}

// Back handles the confirmed "go back" action. Step 1 back purges the whole
// draft; step 2 back clears only the step-2-derived fields (usage, quote,
// notes, duration, dates) and keeps step-1 data intact.
func (s *DefaultDraftService) Back(ctx context.Context, ownerID string, step int) (*models.BookingDraft, error) {
	switch step {
	case 1:
		if err := s.Store.Delete(ctx, ownerID); err != nil {
			return nil, err
		}
		return nil, nil
	case 2:
		d, err := s.Store.Get(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		d.UsagePreset = ""
		d.UsageCustom = ""
		d.Quote = nil
		d.SelectedQuoteOption = ""
		d.QuoteStale = false
		d.Notes = ""
		d.DurationType = ""
		d.DurationValue = 0
		d.SelectedDates = nil
		d.DatesEdited = false
		d.UpdatedAt = time.Now()
		if err := s.Store.Save(ctx, d); err != nil {
			return nil, err
		}
		return d, nil
	}
	return nil, NewValidationError("unknown step")
}

// Resume re-reads the persisted draft after authentication, migrating it
// from the device key to the rider key. A draft with a chosen subcategory
// resumes at step 2; anything else is treated as abandoned and the client
// goes back to category selection.
func (s *DefaultDraftService) Resume(ctx context.Context, deviceID, riderID string) (ResumeTarget, *models.BookingDraft, error) {
	d, err := s.Store.Migrate(ctx, deviceID, riderID)
	if err != nil {
		if err == ErrNotFound {
			return ResumeHome, nil, nil
		}
		return ResumeHome, nil, err
	}
	d.RiderID = riderID

	if RepairOnResume(d, time.Now()) {
		s.Logger.Warn("resumed draft repaired",
			zap.String("owner", riderID), zap.Int("durationValue", d.DurationValue))
	}
	if err := s.Store.Save(ctx, d); err != nil {
		return ResumeHome, nil, err
	}

	if d.SubcategoryID != "" {
		return ResumeStep2, d, nil
	}
	return ResumeHome, d, nil
}

// Purge drops the persisted draft entirely (logout, successful booking).
func (s *DefaultDraftService) Purge(ctx context.Context, ownerID string) error {
	return s.Store.Delete(ctx, ownerID)
}
