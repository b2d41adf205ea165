// Package catalog wraps the external catalog service: categories,
// subcategories, vehicle types and service tiers. Inactive records are
// filtered client-side; subcategories get their billing unit attached here
// so the rest of the system never string-matches display names.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hirewheels/config"
	"hirewheels/models"
	"hirewheels/services/draft"

	"go.uber.org/zap"
)

// CatalogService exposes the lookups the booking flow needs.
type CatalogService interface {
	Categories(ctx context.Context) ([]models.CatalogCategory, error)
	Subcategories(ctx context.Context, categoryID string) ([]models.Subcategory, error)
	Subcategory(ctx context.Context, id string) (*models.Subcategory, error)
	SubSubcategories(ctx context.Context, subcategoryID string) ([]models.SubSubcategory, error)
	VehicleTypes(ctx context.Context) ([]models.VehicleType, error)
	VehiclesByType(ctx context.Context, vehicleTypeID string) ([]models.Vehicle, error)
	CarCategories(ctx context.Context) ([]models.ServiceTier, error)
	ParcelCategories(ctx context.Context) ([]models.ServiceTier, error)
}

// Client implements CatalogService over the catalog upstream.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func NewClient(logger *zap.Logger) *Client {
	return &Client{
		BaseURL:    config.AppConfig.CatalogBaseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Logger:     logger,
	}
}

func (c *Client) Categories(ctx context.Context) ([]models.CatalogCategory, error) {
	var all []models.CatalogCategory
	if err := c.get(ctx, c.BaseURL+"/catalog/categories", &all); err != nil {
		return nil, err
	}
	out := all[:0]
	for _, rec := range all {
		if rec.Active {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (c *Client) Subcategories(ctx context.Context, categoryID string) ([]models.Subcategory, error) {
	url := c.BaseURL + "/catalog/subcategories"
	if categoryID != "" {
		url += "?categoryId=" + categoryID
	}
	var all []models.Subcategory
	if err := c.get(ctx, url, &all); err != nil {
		return nil, err
	}
	out := all[:0]
	for _, rec := range all {
		if !rec.Active {
			continue
		}
		rec.BillingUnit = draft.BillingUnitFromName(rec.Name)
		out = append(out, rec)
	}
	return out, nil
}

// Subcategory resolves a single subcategory by id, billing unit attached.
func (c *Client) Subcategory(ctx context.Context, id string) (*models.Subcategory, error) {
	subs, err := c.Subcategories(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, sub := range subs {
		if sub.ID == id {
			return &sub, nil
		}
	}
	return nil, fmt.Errorf("subcategory %s not found", id)
}

func (c *Client) SubSubcategories(ctx context.Context, subcategoryID string) ([]models.SubSubcategory, error) {
	url := c.BaseURL + "/catalog/subsubcategories"
	if subcategoryID != "" {
		url += "?id=" + subcategoryID
	}
	var all []models.SubSubcategory
	if err := c.get(ctx, url, &all); err != nil {
		return nil, err
	}
	out := all[:0]
	for _, rec := range all {
		if rec.Active {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (c *Client) VehicleTypes(ctx context.Context) ([]models.VehicleType, error) {
	var all []models.VehicleType
	if err := c.get(ctx, c.BaseURL+"/catalog/vehicle-types", &all); err != nil {
		return nil, err
	}
	out := all[:0]
	for _, rec := range all {
		if rec.Active {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (c *Client) VehiclesByType(ctx context.Context, vehicleTypeID string) ([]models.Vehicle, error) {
	var all []models.Vehicle
	body := map[string]string{"vehicleTypeId": vehicleTypeID}
	if err := c.post(ctx, c.BaseURL+"/catalog/vehicles-by-type", body, &all); err != nil {
		return nil, err
	}
	out := all[:0]
	for _, rec := range all {
		if rec.Active {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (c *Client) CarCategories(ctx context.Context) ([]models.ServiceTier, error) {
	return c.tiers(ctx, "/catalog/car-categories")
}

func (c *Client) ParcelCategories(ctx context.Context) ([]models.ServiceTier, error) {
	return c.tiers(ctx, "/catalog/parcel-categories")
}

func (c *Client) tiers(ctx context.Context, path string) ([]models.ServiceTier, error) {
	var all []models.ServiceTier
	if err := c.get(ctx, c.BaseURL+path, &all); err != nil {
		return nil, err
	}
	out := all[:0]
	for _, rec := range all {
		if rec.Active {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build catalog request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("catalog service returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding catalog response failed: %w", err)
	}
	return nil
}
