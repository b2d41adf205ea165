package ride

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hirewheels/models"
	"hirewheels/services/draft"
	"hirewheels/services/rider"

	"go.uber.org/zap"
)

// fakeDrafts serves a single in-memory draft.
type fakeDrafts struct {
	draft  *models.BookingDraft
	purged bool
}

func (f *fakeDrafts) Create(ctx context.Context, ownerID string, category models.Category) (*models.BookingDraft, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeDrafts) Get(ctx context.Context, ownerID string) (*models.BookingDraft, error) {
	if f.draft == nil {
		return nil, draft.ErrNotFound
	}
	return f.draft, nil
}

func (f *fakeDrafts) ApplyEvent(ctx context.Context, ownerID string, ev draft.Event, r *models.Rider) (*models.BookingDraft, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeDrafts) Back(ctx context.Context, ownerID string, step int) (*models.BookingDraft, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeDrafts) Resume(ctx context.Context, deviceID, riderID string) (draft.ResumeTarget, *models.BookingDraft, error) {
	return draft.ResumeHome, nil, errors.New("not implemented")
}

func (f *fakeDrafts) Purge(ctx context.Context, ownerID string) error {
	f.purged = true
	f.draft = nil
	return nil
}

// fakeRiders records wallet movements.
type fakeRiders struct {
	rider     *models.Rider
	deducted  float64
	refunded  float64
	deductErr error
}

func (f *fakeRiders) SendOTP(ctx context.Context, phone string) error { return nil }
func (f *fakeRiders) VerifyOTP(ctx context.Context, phone, otp, deviceID string) (*rider.AuthResult, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeRiders) CompleteProfile(ctx context.Context, riderID, name, email, city string) (*models.Rider, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeRiders) GetRiderByID(ctx context.Context, riderID string) (*models.Rider, error) {
	return f.rider, nil
}
func (f *fakeRiders) RevokeToken(ctx context.Context, riderID string) error { return nil }
func (f *fakeRiders) WalletBalance(ctx context.Context, riderID string) (float64, error) {
	return f.rider.WalletBalance, nil
}
func (f *fakeRiders) TopUpWallet(ctx context.Context, riderID string, amount float64) (*models.WalletTransaction, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeRiders) DeductWallet(ctx context.Context, riderID string, amount float64, reference string) error {
	if f.deductErr != nil {
		return f.deductErr
	}
	f.deducted += amount
	return nil
}
func (f *fakeRiders) RefundWallet(ctx context.Context, riderID string, amount float64, reference string) error {
	f.refunded += amount
	return nil
}

// fakeRepo tracks referral balance adjustments.
type fakeRepo struct {
	referralDelta float64
}

func (f *fakeRepo) GetByID(id string) (*models.Rider, error)       { return nil, nil }
func (f *fakeRepo) GetByPhone(phone string) (*models.Rider, error) { return nil, nil }
func (f *fakeRepo) Create(r *models.Rider) error                   { return nil }
func (f *fakeRepo) Update(r *models.Rider) error                   { return nil }
func (f *fakeRepo) Delete(id string) error                         { return nil }
func (f *fakeRepo) AdjustWalletBalance(id string, delta float64) (float64, error) {
	return 0, nil
}
func (f *fakeRepo) AdjustReferralBalance(id string, delta float64) (float64, error) {
	f.referralDelta += delta
	return 0, nil
}
func (f *fakeRepo) RecordWalletTransaction(txn *models.WalletTransaction) error { return nil }

func submittableDraft() *models.BookingDraft {
	return &models.BookingDraft{
		ID:            "d1",
		OwnerID:       "rider-1",
		Category:      models.CategoryDriver,
		SubcategoryID: "sub-hourly",
		BillingUnit:   models.BillPerHour,
		Origin:        models.Location{Address: "MG Road"},
		ScheduledDate: "2026-09-05",
		ScheduledTime: "10:00",
		UsagePreset:   "120",
		Quote: &models.Quote{
			Options:    []models.QuoteOption{{Category: "Prime", TotalPayable: 500}},
			ReceivedAt: time.Now(),
		},
		SelectedQuoteOption: "Prime",
		PaymentMethod:       models.PayCash,
	}
}

func ridesServer(t *testing.T, status int, body any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
}

func newService(drafts *fakeDrafts, riders *fakeRiders, repo *fakeRepo, upstream *httptest.Server) *DefaultRideService {
	return &DefaultRideService{
		Drafts: drafts,
		Riders: riders,
		Repo:   repo,
		Upstream: &Client{
			BaseURL:    upstream.URL,
			HTTPClient: upstream.Client(),
			Logger:     zap.NewNop(),
		},
		Logger: zap.NewNop(),
	}
}

func TestSubmitAppliesReferralDiscount(t *testing.T) {
	drafts := &fakeDrafts{draft: submittableDraft()}
	drafts.draft.ReferralApplied = true
	riders := &fakeRiders{rider: &models.Rider{ID: "rider-1", ReferralBalance: 200}}
	repo := &fakeRepo{}

	srv := ridesServer(t, http.StatusCreated, models.Ride{
		ID: "ride-1", RiderID: "rider-1", Category: models.CategoryDriver,
		ScheduledDate: "2026-09-05", ScheduledTime: "10:00", TotalPayable: 300,
	})
	defer srv.Close()

	booked, err := newService(drafts, riders, repo, srv).Submit(context.Background(), "rider-1")
	if err != nil {
		t.Fatalf("submitting: %v", err)
	}
	if booked.ID != "ride-1" {
		t.Fatalf("unexpected ride %+v", booked)
	}
	if repo.referralDelta != -200 {
		t.Errorf("referral balance delta = %v, want -200", repo.referralDelta)
	}
	if !drafts.purged {
		t.Errorf("draft should be purged after a successful booking")
	}
}

func TestSubmitReferralDiscountCapsAtPayable(t *testing.T) {
	drafts := &fakeDrafts{draft: submittableDraft()}
	drafts.draft.ReferralApplied = true
	riders := &fakeRiders{rider: &models.Rider{ID: "rider-1", ReferralBalance: 900}}
	repo := &fakeRepo{}

	var sent models.RideSubmission
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&sent)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(models.Ride{ID: "ride-2", ScheduledDate: "2026-09-05", ScheduledTime: "10:00"})
	}))
	defer srv.Close()

	if _, err := newService(drafts, riders, repo, srv).Submit(context.Background(), "rider-1"); err != nil {
		t.Fatalf("submitting: %v", err)
	}
	if sent.TotalPayable != 0 || sent.ReferralDiscount != 500 {
		t.Errorf("payable=%v discount=%v, want 0 and 500", sent.TotalPayable, sent.ReferralDiscount)
	}
	if repo.referralDelta != -500 {
		t.Errorf("referral delta = %v, want -500", repo.referralDelta)
	}
}

func TestSubmitWalletInsufficientBlocksSubmission(t *testing.T) {
	drafts := &fakeDrafts{draft: submittableDraft()}
	drafts.draft.PaymentMethod = models.PayWallet
	riders := &fakeRiders{
		rider:     &models.Rider{ID: "rider-1"},
		deductErr: errors.New("insufficient wallet balance"),
	}
	repo := &fakeRepo{}

	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	_, err := newService(drafts, riders, repo, srv).Submit(context.Background(), "rider-1")
	if err == nil {
		t.Fatalf("insufficient wallet should block submission")
	}
	if called {
		t.Errorf("upstream must not be called when the wallet deduction fails")
	}
	if drafts.purged {
		t.Errorf("draft must survive a blocked submission")
	}
}

func TestSubmitRefundsWalletOnUpstreamFailure(t *testing.T) {
	drafts := &fakeDrafts{draft: submittableDraft()}
	drafts.draft.PaymentMethod = models.PayWallet
	riders := &fakeRiders{rider: &models.Rider{ID: "rider-1", WalletBalance: 1000}}
	repo := &fakeRepo{}

	srv := ridesServer(t, http.StatusUnprocessableEntity, map[string]string{
		"message": "No drivers available in your area right now",
	})
	defer srv.Close()

	_, err := newService(drafts, riders, repo, srv).Submit(context.Background(), "rider-1")
	if err == nil {
		t.Fatalf("upstream rejection should surface as an error")
	}
	var subErr *SubmissionError
	if !errors.As(err, &subErr) {
		t.Fatalf("expected a SubmissionError, got %T: %v", err, err)
	}
	if subErr.Message != "No drivers available in your area right now" {
		t.Errorf("upstream message should pass through verbatim, got %q", subErr.Message)
	}
	if riders.deducted != 500 || riders.refunded != 500 {
		t.Errorf("deducted=%v refunded=%v, want 500 and 500", riders.deducted, riders.refunded)
	}
	if drafts.purged {
		t.Errorf("draft must survive a failed submission")
	}
}

func TestSubmitRequiresFreshQuote(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(d *models.BookingDraft)
	}{
		{"stale quote", func(d *models.BookingDraft) { d.QuoteStale = true }},
		{"no quote", func(d *models.BookingDraft) { d.Quote = nil }},
		{"no selection", func(d *models.BookingDraft) { d.SelectedQuoteOption = "" }},
		{"no payment method", func(d *models.BookingDraft) { d.PaymentMethod = "" }},
		{"incomplete step one", func(d *models.BookingDraft) { d.Origin = models.Location{} }},
	}

	srv := ridesServer(t, http.StatusCreated, models.Ride{ID: "ride-x"})
	defer srv.Close()

	for _, tc := range cases {
		d := submittableDraft()
		tc.mutate(d)
		drafts := &fakeDrafts{draft: d}
		riders := &fakeRiders{rider: &models.Rider{ID: "rider-1"}}

		_, err := newService(drafts, riders, &fakeRepo{}, srv).Submit(context.Background(), "rider-1")
		if err == nil {
			t.Errorf("%s: submission should be rejected", tc.name)
			continue
		}
		if !draft.IsValidationError(err) {
			t.Errorf("%s: expected a validation error, got %v", tc.name, err)
		}
	}
}
