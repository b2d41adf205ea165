package draft

import (
	"context"
	"testing"

	"hirewheels/models"

	"go.uber.org/zap"
)

func TestStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	d := recalculableDraft("device-abc")
	d.City = "Bengaluru"
	if err := store.Save(ctx, d); err != nil {
		t.Fatalf("saving draft: %v", err)
	}

	got, err := store.Get(ctx, "device-abc")
	if err != nil {
		t.Fatalf("loading draft: %v", err)
	}
	if got.City != "Bengaluru" || got.SubcategoryID != d.SubcategoryID {
		t.Fatalf("loaded draft does not match saved draft: %+v", got)
	}

	if _, err := store.Get(ctx, "nobody"); err != ErrNotFound {
		t.Fatalf("missing draft should return ErrNotFound, got %v", err)
	}
}

func TestStoreMigrate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	d := recalculableDraft("device-abc")
	if err := store.Save(ctx, d); err != nil {
		t.Fatalf("saving draft: %v", err)
	}

	moved, err := store.Migrate(ctx, "device-abc", "rider-1")
	if err != nil {
		t.Fatalf("migrating draft: %v", err)
	}
	if moved.OwnerID != "rider-1" {
		t.Errorf("OwnerID = %q, want rider-1", moved.OwnerID)
	}

	if _, err := store.Get(ctx, "device-abc"); err != ErrNotFound {
		t.Errorf("device key should be gone after migration, got %v", err)
	}
	if _, err := store.Get(ctx, "rider-1"); err != nil {
		t.Errorf("rider key should hold the draft, got %v", err)
	}
}

func newTestService(t *testing.T) *DefaultDraftService {
	t.Helper()
	store := newTestStore(t)
	fp := &fakePricing{options: []models.QuoteOption{{Category: "Prime"}}}
	return &DefaultDraftService{
		Store:  store,
		Recalc: NewRecalculator(fp, store, zap.NewNop()),
		Logger: zap.NewNop(),
	}
}

func TestServiceCreateDefaults(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	d, err := svc.Create(ctx, "device-1", models.CategoryCab)
	if err != nil {
		t.Fatalf("creating draft: %v", err)
	}
	if d.CarCategory != "Classic" {
		t.Errorf("cab draft should default to the Classic tier, got %q", d.CarCategory)
	}
	if d.ScheduledDate == "" || d.ScheduledTime == "" {
		t.Errorf("schedule should default to now, got %q %q", d.ScheduledDate, d.ScheduledTime)
	}

	if _, err := svc.Create(ctx, "device-1", models.Category("Boat")); err == nil {
		t.Fatalf("unknown category should be rejected")
	}
}

func TestServiceBackStepTwoClearsDerivedFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	d := recalculableDraft("device-2")
	d.Origin = models.Location{Address: "MG Road"}
	d.Notes = "call on arrival"
	d.DurationValue = 5
	d.SelectedDates = []string{"2026-09-01"}
	d.Quote = &models.Quote{Options: []models.QuoteOption{{Category: "Prime"}}}
	d.SelectedQuoteOption = "Prime"
	if err := svc.Store.Save(ctx, d); err != nil {
		t.Fatalf("seeding draft: %v", err)
	}

	got, err := svc.Back(ctx, "device-2", 2)
	if err != nil {
		t.Fatalf("step-2 back: %v", err)
	}
	if got.UsagePreset != "" || got.Quote != nil || got.SelectedQuoteOption != "" ||
		got.Notes != "" || got.DurationValue != 0 || got.SelectedDates != nil {
		t.Fatalf("step-2 back should clear derived fields, got %+v", got)
	}
	if got.Origin.Address != "MG Road" {
		t.Errorf("step-1 fields must survive a step-2 back")
	}
}

func TestServiceBackStepOnePurges(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.Store.Save(ctx, recalculableDraft("device-3")); err != nil {
		t.Fatalf("seeding draft: %v", err)
	}
	d, err := svc.Back(ctx, "device-3", 1)
	if err != nil {
		t.Fatalf("step-1 back: %v", err)
	}
	if d != nil {
		t.Fatalf("step-1 back should discard the draft")
	}
	if _, err := svc.Store.Get(ctx, "device-3"); err != ErrNotFound {
		t.Fatalf("draft should be purged, got %v", err)
	}
}

func TestServiceResumeMigratesAndRepairs(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	d := recalculableDraft("device-4")
	d.BillingUnit = models.BillPerWeek
	d.DurationType = models.DurationTypeDay
	d.DurationValue = 1
	d.SelectedDates = []string{"2026-09-01"}
	if err := svc.Store.Save(ctx, d); err != nil {
		t.Fatalf("seeding draft: %v", err)
	}

	target, resumed, err := svc.Resume(ctx, "device-4", "rider-9")
	if err != nil {
		t.Fatalf("resuming: %v", err)
	}
	if target != ResumeStep2 {
		t.Fatalf("draft with a subcategory should resume at step 2, got %q", target)
	}
	if resumed.RiderID != "rider-9" || resumed.OwnerID != "rider-9" {
		t.Errorf("resumed draft should belong to the rider, got owner=%q rider=%q", resumed.OwnerID, resumed.RiderID)
	}
	if resumed.DurationValue != 3 || len(resumed.SelectedDates) != 3 {
		t.Errorf("sub-minimum weekly duration should be repaired to 3, got value=%d dates=%d",
			resumed.DurationValue, len(resumed.SelectedDates))
	}

	if _, err := svc.Store.Get(ctx, "device-4"); err != ErrNotFound {
		t.Errorf("device draft should be migrated away, got %v", err)
	}
}

func TestServiceResumeWithoutDraft(t *testing.T) {
	svc := newTestService(t)

	target, d, err := svc.Resume(context.Background(), "device-5", "rider-10")
	if err != nil {
		t.Fatalf("resuming with no draft: %v", err)
	}
	if target != ResumeHome || d != nil {
		t.Fatalf("no draft means resume at home, got %q %+v", target, d)
	}
}
