package pricing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"hirewheels/models"

	"go.uber.org/zap"
)

func TestConvertUsage(t *testing.T) {
	v, unit, err := ConvertUsage("120", models.BillPerHour)
	if err != nil {
		t.Fatalf("converting minutes: %v", err)
	}
	if v != 2 || unit != "hours" {
		t.Errorf("120 minutes = %v %s, want 2 hours", v, unit)
	}

	v, unit, err = ConvertUsage("45", models.BillPerTrip)
	if err != nil {
		t.Fatalf("converting km: %v", err)
	}
	if v != 45 || unit != "km" {
		t.Errorf("45 = %v %s, want 45 km", v, unit)
	}

	if _, _, err := ConvertUsage("a lot", models.BillPerTrip); err == nil {
		t.Fatalf("non-numeric usage should fail")
	}
}

func TestNormalizePresets(t *testing.T) {
	got := NormalizePresets([]float64{120, 60, 120, 240, 60}, models.BillPerHour)
	want := models.UsagePresets{Unit: "minutes", Values: []string{"60", "120", "240"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("NormalizePresets = %+v, want %+v", got, want)
	}

	km := NormalizePresets([]float64{30.5, 10}, models.BillPerTrip)
	if km.Unit != "km" {
		t.Errorf("distance presets should be km, got %q", km.Unit)
	}
	if km.Values[0] != "10" {
		t.Errorf("smallest preset should come first, got %v", km.Values)
	}
}

func TestCalculate(t *testing.T) {
	var gotPath string
	var gotReq map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"options": []models.QuoteOption{
				{Category: "Prime", TotalPayable: 499},
				{Category: "Classic", TotalPayable: 399},
			},
		})
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, HTTPClient: srv.Client(), Logger: zap.NewNop()}
	d := &models.BookingDraft{
		Category:      models.CategoryDriver,
		SubcategoryID: "sub-hourly",
		BillingUnit:   models.BillPerHour,
		City:          "Bengaluru",
		UsagePreset:   "120",
	}

	options, err := c.Calculate(context.Background(), d)
	if err != nil {
		t.Fatalf("calculating: %v", err)
	}
	if gotPath != "/pricing/calculate/driver" {
		t.Errorf("path = %q, want /pricing/calculate/driver", gotPath)
	}
	if gotReq["usage"] != 2.0 || gotReq["usageUnit"] != "hours" {
		t.Errorf("usage sent as %v %v, want 2 hours", gotReq["usage"], gotReq["usageUnit"])
	}
	if len(options) != 2 || options[0].Category != "Prime" {
		t.Fatalf("unexpected options %+v", options)
	}
}

func TestCalculateUnpricedCategory(t *testing.T) {
	c := &Client{BaseURL: "http://unused", HTTPClient: http.DefaultClient, Logger: zap.NewNop()}
	d := &models.BookingDraft{Category: models.Category("Boat"), UsagePreset: "10"}
	if _, err := c.Calculate(context.Background(), d); err == nil {
		t.Fatalf("unpriced category should never reach the wire")
	}
}

func TestCalculateEmptyOptions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"options": []models.QuoteOption{}})
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, HTTPClient: srv.Client(), Logger: zap.NewNop()}
	d := &models.BookingDraft{
		Category:      models.CategoryCab,
		SubcategoryID: "sub-1",
		BillingUnit:   models.BillPerTrip,
		UsageCustom:   "12",
	}
	if _, err := c.Calculate(context.Background(), d); err == nil {
		t.Fatalf("an empty option list should be an error")
	}
}
