package models

// CatalogCategory is a top-level browse category from the catalog service.
type CatalogCategory struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// Subcategory is a bookable plan under a category. BillingUnit is populated
// client-side from the display name when the record is loaded.
type Subcategory struct {
	ID          string      `json:"id"`
	CategoryID  string      `json:"categoryId"`
	Name        string      `json:"name"`
	Active      bool        `json:"active"`
	BillingUnit BillingUnit `json:"billingUnit"`
}

// SubSubcategory refines a subcategory (e.g. round-trip variants).
type SubSubcategory struct {
	ID            string `json:"id"`
	SubcategoryID string `json:"subcategoryId"`
	Name          string `json:"name"`
	Active        bool   `json:"active"`
}

// VehicleType describes a vehicle class riders can request a driver for.
type VehicleType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
}

// Vehicle is a concrete vehicle model under a vehicle type.
type Vehicle struct {
	ID            string `json:"id"`
	VehicleTypeID string `json:"vehicleTypeId"`
	Name          string `json:"name"`
	Active        bool   `json:"active"`
}

// ServiceTier is a priced tier for cabs or parcels ("Classic", "Prime").
type ServiceTier struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Active      bool   `json:"active"`
}

// UsagePresets is the finite preset-usage set for a subcategory, already
// de-duplicated and sorted ascending. Unit is minutes for per-hour plans,
// kilometers otherwise.
type UsagePresets struct {
	Unit   string   `json:"unit"` // "minutes" or "km"
	Values []string `json:"values"`
}

// Default returns the smallest preset value, which seeds a new draft.
func (p UsagePresets) Default() string {
	if len(p.Values) == 0 {
		return ""
	}
	return p.Values[0]
}
