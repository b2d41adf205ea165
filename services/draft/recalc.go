package draft

import (
	"context"
	"sync"
	"time"

	"hirewheels/models"

	"go.uber.org/zap"
)

// PricingService is the external pricing upstream from this package's point
// of view.
type PricingService interface {
	Calculate(ctx context.Context, d *models.BookingDraft) ([]models.QuoteOption, error)
}

// DebounceInterval is how long free-text usage entry waits after the last
// keystroke before firing a recalculation.
const DebounceInterval = 500 * time.Millisecond

// Recalculator issues price recalculations with at most one call in flight
// per draft. A trigger that fires while a call is outstanding is dropped, not
// queued: after a burst of edits the quote can stay stale until the rider
// re-touches a field. That is accepted behavior, not a bug.
type Recalculator struct {
	Pricing  PricingService
	Store    *Store
	Logger   *zap.Logger
	Debounce time.Duration

	mu       sync.Mutex
	inFlight map[string]bool
	timers   map[string]*time.Timer

	// afterRun, when set, is invoked once a recalculation settles. Tests use
	// it to synchronize.
	afterRun func(ownerID string)
}

func NewRecalculator(pricing PricingService, store *Store, logger *zap.Logger) *Recalculator {
	return &Recalculator{
		Pricing:  pricing,
		Store:    store,
		Logger:   logger,
		Debounce: DebounceInterval,
		inFlight: make(map[string]bool),
		timers:   make(map[string]*time.Timer),
	}
}

// ShouldRecalculate checks the preconditions: a priced category, a chosen
// subcategory, and a non-empty usage amount. Drafts outside the three priced
// families never call pricing.
func ShouldRecalculate(d *models.BookingDraft) bool {
	return d.Category.Valid() && d.SubcategoryID != "" && d.HasUsage()
}

// pricingInputs are the draft fields a quote is priced from. A snapshot taken
// when a call starts is compared against the draft the response lands on; a
// mismatch means the quote was priced from superseded inputs and must stay
// stale.
type pricingInputs struct {
	SubcategoryID    string
	SubSubcategoryID string
	City             string
	UsagePreset      string
	UsageCustom      string
	DurationType     models.DurationType
	DurationValue    int
	IncludeInsurance bool
	CarCategory      string
	ParcelCategory   string
}

func snapshotPricingInputs(d *models.BookingDraft) pricingInputs {
	return pricingInputs{
		SubcategoryID:    d.SubcategoryID,
		SubSubcategoryID: d.SubSubcategoryID,
		City:             d.City,
		UsagePreset:      d.UsagePreset,
		UsageCustom:      d.UsageCustom,
		DurationType:     d.DurationType,
		DurationValue:    d.DurationValue,
		IncludeInsurance: d.IncludeInsurance,
		CarCategory:      d.CarCategory,
		ParcelCategory:   d.ParcelCategory,
	}
}

// Trigger requests a recalculation for the owner's draft. Debounced triggers
// reset a per-draft timer; immediate triggers fire now. The return value
// reports whether a pricing call was actually started (false when dropped,
// skipped, or merely scheduled).
func (r *Recalculator) Trigger(ctx context.Context, ownerID string, debounced bool) bool {
	if debounced {
		r.schedule(ownerID)
		return false
	}
	return r.fire(ctx, ownerID)
}

// schedule arms (or re-arms) the debounce timer for the draft.
func (r *Recalculator) schedule(ownerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.timers[ownerID]; ok {
		t.Stop()
	}
	r.timers[ownerID] = time.AfterFunc(r.Debounce, func() {
		r.mu.Lock()
		delete(r.timers, ownerID)
		r.mu.Unlock()
		// The timer outlives the request that armed it.
		r.fire(context.Background(), ownerID)
	})
}

// fire starts a pricing call unless one is already outstanding for the draft.
func (r *Recalculator) fire(ctx context.Context, ownerID string) bool {
	d, err := r.Store.Get(ctx, ownerID)
	if err != nil {
		r.Logger.Warn("recalculation skipped, draft unavailable",
			zap.String("owner", ownerID), zap.Error(err))
		return false
	}
	if !ShouldRecalculate(d) {
		return false
	}

	r.mu.Lock()
	if r.inFlight[ownerID] {
		r.mu.Unlock()
		r.Logger.Debug("recalculation dropped, one already in flight",
			zap.String("owner", ownerID))
		return false
	}
	r.inFlight[ownerID] = true
	r.mu.Unlock()

	go r.run(ownerID, d, snapshotPricingInputs(d))
	return true
}

func (r *Recalculator) run(ownerID string, d *models.BookingDraft, snap pricingInputs) {
	defer func() {
		r.mu.Lock()
		delete(r.inFlight, ownerID)
		r.mu.Unlock()
		if r.afterRun != nil {
			r.afterRun(ownerID)
		}
	}()

	ctx := context.Background()
	options, err := r.Pricing.Calculate(ctx, d)
	if err != nil {
		// Prior quote stays untouched; the rider retries by touching a field.
		r.Logger.Error("price recalculation failed",
			zap.String("owner", ownerID), zap.Error(err))
		return
	}

	// Re-read: fields may have changed while the call was in flight; the
	// response is still applied over the latest draft (last write wins).
	latest, err := r.Store.Get(ctx, ownerID)
	if err != nil {
		r.Logger.Warn("draft gone before quote landed", zap.String("owner", ownerID))
		return
	}

	ApplyQuote(latest, options, time.Now())
	if snapshotPricingInputs(latest) != snap {
		// The inputs moved while the call was out. The quote still lands for
		// display, but stays stale so it cannot be booked.
		latest.QuoteStale = true
	}
	if err := r.Store.Save(ctx, latest); err != nil {
		r.Logger.Error("failed to persist fresh quote",
			zap.String("owner", ownerID), zap.Error(err))
	}
}

// ApplyQuote replaces the draft's quote and re-resolves the selected option
// against the new entries.
func ApplyQuote(d *models.BookingDraft, options []models.QuoteOption, now time.Time) {
	d.Quote = &models.Quote{Options: options, ReceivedAt: now}
	d.SelectedQuoteOption = ResolveQuoteSelection(d.Category, d.SelectedQuoteOption, options)
	d.QuoteStale = false
}

// ResolveQuoteSelection picks the selected option after a quote refresh. Cab
// always re-picks the first entry, overriding any prior choice. Other
// categories keep the prior selection when the new quote still carries it,
// fall back to the category default name, then to the first entry.
func ResolveQuoteSelection(category models.Category, prior string, options []models.QuoteOption) string {
	if len(options) == 0 {
		return ""
	}
	if category == models.CategoryCab {
		return options[0].Category
	}

	names := make(map[string]bool, len(options))
	for _, opt := range options {
		names[opt.Category] = true
	}
	if prior != "" && names[prior] {
		return prior
	}

	fallback := "Prime"
	if category == models.CategoryParcel {
		fallback = "Classic"
	}
	if names[fallback] {
		return fallback
	}
	return options[0].Category
}
