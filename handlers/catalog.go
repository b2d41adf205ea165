package handlers

import (
	"net/http"

	"hirewheels/services/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var CatalogSvc catalog.CatalogService

func respondCatalog(c *gin.Context, logger *zap.Logger, data any, err error) {
	if err != nil {
		logger.Error("Catalog lookup failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Catalog service unavailable"})
		return
	}
	c.JSON(http.StatusOK, data)
}

// CategoriesHandler lists the active top-level booking categories.
func CategoriesHandler(c *gin.Context) {
	data, err := CatalogSvc.Categories(c.Request.Context())
	respondCatalog(c, getLogger(c), data, err)
}

// SubcategoriesHandler lists active packages under a category, each tagged
// with its billing unit.
func SubcategoriesHandler(c *gin.Context) {
	data, err := CatalogSvc.Subcategories(c.Request.Context(), c.Param("categoryId"))
	respondCatalog(c, getLogger(c), data, err)
}

// SubSubcategoriesHandler lists active package variants.
func SubSubcategoriesHandler(c *gin.Context) {
	data, err := CatalogSvc.SubSubcategories(c.Request.Context(), c.Param("subcategoryId"))
	respondCatalog(c, getLogger(c), data, err)
}

// VehicleTypesHandler lists active vehicle types for driver bookings.
func VehicleTypesHandler(c *gin.Context) {
	data, err := CatalogSvc.VehicleTypes(c.Request.Context())
	respondCatalog(c, getLogger(c), data, err)
}

// VehiclesHandler lists active vehicles of a type.
func VehiclesHandler(c *gin.Context) {
	data, err := CatalogSvc.VehiclesByType(c.Request.Context(), c.Param("vehicleTypeId"))
	respondCatalog(c, getLogger(c), data, err)
}

// CarCategoriesHandler lists the cab service tiers.
func CarCategoriesHandler(c *gin.Context) {
	data, err := CatalogSvc.CarCategories(c.Request.Context())
	respondCatalog(c, getLogger(c), data, err)
}

// ParcelCategoriesHandler lists the parcel service tiers.
func ParcelCategoriesHandler(c *gin.Context) {
	data, err := CatalogSvc.ParcelCategories(c.Request.Context())
	respondCatalog(c, getLogger(c), data, err)
}
