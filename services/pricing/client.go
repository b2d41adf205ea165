// Package pricing wraps the external pricing service. The pricing algorithm
// itself is opaque; this client only shapes requests and normalizes
// responses.
package pricing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"hirewheels/config"
	"hirewheels/models"

	"go.uber.org/zap"
)

// Client calls the pricing upstream. One calculate endpoint exists per
// category family.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func NewClient(logger *zap.Logger) *Client {
	return &Client{
		BaseURL:    config.AppConfig.PricingBaseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Logger:     logger,
	}
}

// calculateRequest is the draft snapshot the pricing service prices.
type calculateRequest struct {
	SubcategoryID    string  `json:"subcategoryId"`
	SubSubcategoryID string  `json:"subSubcategoryId,omitempty"`
	City             string  `json:"city"`
	Usage            float64 `json:"usage"`
	UsageUnit        string  `json:"usageUnit"`
	DurationType     string  `json:"durationType,omitempty"`
	DurationValue    int     `json:"durationValue,omitempty"`
	IncludeInsurance bool    `json:"includeInsurance"`
	CarCategory      string  `json:"carCategory,omitempty"`
	ParcelCategory   string  `json:"parcelCategory,omitempty"`
}

type calculateResponse struct {
	Options []models.QuoteOption `json:"options"`
}

func familyPath(category models.Category) (string, error) {
	switch category {
	case models.CategoryDriver:
		return "driver", nil
	case models.CategoryCab:
		return "cab", nil
	case models.CategoryParcel:
		return "parcel", nil
	}
	return "", fmt.Errorf("category %q is not priced", category)
}

// ConvertUsage turns the stored usage string into the value the calculate
// payload carries: presets are minutes for per-hour plans and are sent as
// hours; everything else is kilometers sent as-is.
func ConvertUsage(usage string, unit models.BillingUnit) (float64, string, error) {
	v, err := strconv.ParseFloat(usage, 64)
	if err != nil {
		return 0, "", fmt.Errorf("usage %q is not numeric: %w", usage, err)
	}
	if unit == models.BillPerHour {
		return v / 60, "hours", nil
	}
	return v, "km", nil
}

// Calculate prices the draft and returns the ordered quote options.
func (c *Client) Calculate(ctx context.Context, d *models.BookingDraft) ([]models.QuoteOption, error) {
	family, err := familyPath(d.Category)
	if err != nil {
		return nil, err
	}
	usage, usageUnit, err := ConvertUsage(d.Usage(), d.BillingUnit)
	if err != nil {
		return nil, err
	}

	req := calculateRequest{
		SubcategoryID:    d.SubcategoryID,
		SubSubcategoryID: d.SubSubcategoryID,
		City:             d.City,
		Usage:            usage,
		UsageUnit:        usageUnit,
		DurationType:     string(d.DurationType),
		DurationValue:    d.DurationValue,
		IncludeInsurance: d.IncludeInsurance,
		CarCategory:      d.CarCategory,
		ParcelCategory:   d.ParcelCategory,
	}

	var resp calculateResponse
	url := fmt.Sprintf("%s/pricing/calculate/%s", c.BaseURL, family)
	if err := c.post(ctx, url, req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Options) == 0 {
		return nil, fmt.Errorf("pricing service returned no options")
	}
	return resp.Options, nil
}

type includedDataRequest struct {
	CategoryID    string `json:"categoryId"`
	SubcategoryID string `json:"subcategoryId"`
}

type includedDataResponse struct {
	Values []float64 `json:"values"`
}

// IncludedData fetches the finite preset-usage set for a subcategory. The
// upstream list may carry duplicates and arrive unsorted; the client
// de-duplicates and sorts ascending, so the first value is the default.
func (c *Client) IncludedData(ctx context.Context, categoryID, subcategoryID string, unit models.BillingUnit) (models.UsagePresets, error) {
	var resp includedDataResponse
	url := fmt.Sprintf("%s/pricing/included-data", c.BaseURL)
	if err := c.post(ctx, url, includedDataRequest{CategoryID: categoryID, SubcategoryID: subcategoryID}, &resp); err != nil {
		return models.UsagePresets{}, err
	}
	return NormalizePresets(resp.Values, unit), nil
}

// NormalizePresets de-duplicates and numerically sorts the raw preset
// values. Minutes for time-billed subcategories, kilometers otherwise.
func NormalizePresets(raw []float64, unit models.BillingUnit) models.UsagePresets {
	seen := make(map[float64]bool, len(raw))
	values := make([]float64, 0, len(raw))
	for _, v := range raw {
		if !seen[v] {
			seen[v] = true
			values = append(values, v)
		}
	}
	sort.Float64s(values)

	out := models.UsagePresets{Unit: "km"}
	if unit == models.BillPerHour {
		out.Unit = "minutes"
	}
	for _, v := range values {
		out.Values = append(out.Values, strconv.FormatFloat(v, 'f', -1, 64))
	}
	return out
}

func (c *Client) post(ctx context.Context, url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal pricing request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build pricing request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("pricing request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("pricing service returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding pricing response failed: %w", err)
	}
	return nil
}
