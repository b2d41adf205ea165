package handlers

import (
	"net/http"

	"hirewheels/models"
	"hirewheels/services/draft"
	"hirewheels/services/pricing"
	"hirewheels/services/ride"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	DraftSvc      draft.DraftService
	PricingClient *pricing.Client
	RideSvc       ride.RideService
)

// draftOwner returns the key the caller's draft is stored under. A signed-in
// rider owns the draft by rider ID; everyone else by device ID.
func draftOwner(c *gin.Context) string {
	if riderID := c.GetString("riderID"); riderID != "" {
		return riderID
	}
	return c.GetString("deviceID")
}

func respondDraftError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case err == draft.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "No booking in progress"})
	case draft.IsValidationError(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		logger.Error("Draft operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}

// CreateDraftHandler starts a draft when the rider picks a booking category.
func CreateDraftHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Category models.Category `json:"category" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := DraftSvc.Create(c.Request.Context(), draftOwner(c), req.Category)
	if err != nil {
		respondDraftError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// GetDraftHandler returns the caller's current draft.
func GetDraftHandler(c *gin.Context) {
	logger := getLogger(c)

	d, err := DraftSvc.Get(c.Request.Context(), draftOwner(c))
	if err != nil {
		respondDraftError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// ApplyEventHandler applies one field mutation to the draft and returns the
// updated draft. Recalculation runs in the background; the client polls the
// draft for the refreshed quote.
func ApplyEventHandler(c *gin.Context) {
	logger := getLogger(c)

	var ev draft.Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var r *models.Rider
	if riderID := c.GetString("riderID"); riderID != "" {
		var err error
		r, err = RiderSvc.GetRiderByID(c.Request.Context(), riderID)
		if err != nil {
			logger.Warn("Rider lookup failed for event", zap.Error(err))
		}
	}

	d, err := DraftSvc.ApplyEvent(c.Request.Context(), draftOwner(c), ev, r)
	if err != nil {
		respondDraftError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// UsagePresetsHandler returns the preset usage chips for the draft's chosen
// subcategory, deduplicated and sorted with the smallest first.
func UsagePresetsHandler(c *gin.Context) {
	logger := getLogger(c)

	d, err := DraftSvc.Get(c.Request.Context(), draftOwner(c))
	if err != nil {
		respondDraftError(c, logger, err)
		return
	}
	if d.SubcategoryID == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Pick a package first"})
		return
	}

	presets, err := PricingClient.IncludedData(c.Request.Context(), string(d.Category), d.SubcategoryID, d.BillingUnit)
	if err != nil {
		logger.Error("Failed to fetch usage presets", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Pricing service unavailable"})
		return
	}
	c.JSON(http.StatusOK, presets)
}

// BackHandler handles a confirmed back navigation. Leaving step 1 discards
// the draft; leaving step 2 clears only the step-2 fields.
func BackHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Step int `json:"step" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d, err := DraftSvc.Back(c.Request.Context(), draftOwner(c), req.Step)
	if err != nil {
		respondDraftError(c, logger, err)
		return
	}
	if d == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Draft discarded"})
		return
	}
	c.JSON(http.StatusOK, d)
}

// SubmitHandler finalizes the draft into a booked ride. Requires a signed-in
// rider.
func SubmitHandler(c *gin.Context) {
	logger := getLogger(c)
	riderID := c.GetString("riderID")

	booked, err := RideSvc.Submit(c.Request.Context(), riderID)
	if err != nil {
		if subErr, ok := err.(*ride.SubmissionError); ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": subErr.Message})
			return
		}
		respondDraftError(c, logger, err)
		return
	}
	c.JSON(http.StatusCreated, booked)
}
