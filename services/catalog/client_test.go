package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hirewheels/models"

	"go.uber.org/zap"
)

func testClient(srv *httptest.Server) *Client {
	return &Client{BaseURL: srv.URL, HTTPClient: srv.Client(), Logger: zap.NewNop()}
}

func TestSubcategoriesFilterAndTagBillingUnit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("categoryId") != "cat-driver" {
			t.Errorf("categoryId = %q, want cat-driver", r.URL.Query().Get("categoryId"))
		}
		_ = json.NewEncoder(w).Encode([]models.Subcategory{
			{ID: "s1", Name: "2 Hourly", Active: true},
			{ID: "s2", Name: "Weekly Classic", Active: true},
			{ID: "s3", Name: "Retired Plan", Active: false},
			{ID: "s4", Name: "One Way", Active: true},
		})
	}))
	defer srv.Close()

	subs, err := testClient(srv).Subcategories(context.Background(), "cat-driver")
	if err != nil {
		t.Fatalf("fetching subcategories: %v", err)
	}
	if len(subs) != 3 {
		t.Fatalf("inactive records should be dropped, got %d", len(subs))
	}
	if subs[0].BillingUnit != models.BillPerHour {
		t.Errorf("hourly plan tagged %q, want %q", subs[0].BillingUnit, models.BillPerHour)
	}
	if subs[1].BillingUnit != models.BillPerWeek {
		t.Errorf("weekly plan tagged %q, want %q", subs[1].BillingUnit, models.BillPerWeek)
	}
	if subs[2].BillingUnit != models.BillPerTrip {
		t.Errorf("one-way plan tagged %q, want %q", subs[2].BillingUnit, models.BillPerTrip)
	}
}

func TestTiersDropInactive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]models.ServiceTier{
			{ID: "t1", Name: "Classic", Active: true},
			{ID: "t2", Name: "Prime", Active: false},
		})
	}))
	defer srv.Close()

	tiers, err := testClient(srv).CarCategories(context.Background())
	if err != nil {
		t.Fatalf("fetching tiers: %v", err)
	}
	if len(tiers) != 1 || tiers[0].Name != "Classic" {
		t.Fatalf("unexpected tiers %+v", tiers)
	}
}
