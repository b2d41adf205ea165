package handlers

import (
	"net/http"

	"hirewheels/services/draft"
	"hirewheels/services/rider"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var RiderSvc rider.RiderService

// SendOTPHandler issues a one-time code to the given phone number.
func SendOTPHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Phone string `json:"phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := RiderSvc.SendOTP(c.Request.Context(), req.Phone); err != nil {
		logger.Error("Failed to send OTP", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OTP sent"})
}

// VerifyOTPHandler exchanges a valid OTP for a session token. Any draft the
// device was editing anonymously is migrated to the rider and the response
// tells the client where to resume.
func VerifyOTPHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		Phone string `json:"phone" binding:"required"`
		OTP   string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	deviceID := c.GetString("deviceID")

	result, err := RiderSvc.VerifyOTP(c.Request.Context(), req.Phone, req.OTP, deviceID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	resumeTo, d, err := DraftSvc.Resume(c.Request.Context(), deviceID, result.Rider.ID)
	if err != nil {
		logger.Error("Draft resume failed", zap.Error(err))
		resumeTo = draft.ResumeHome
		d = nil
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      result.Token,
		"isNewRider": result.IsNewRider,
		"rider":      result.Rider,
		"resumeTo":   resumeTo,
		"draft":      d,
	})
}

// CompleteProfileHandler fills in the rider's details after first sign-in.
func CompleteProfileHandler(c *gin.Context) {
	logger := getLogger(c)
	riderID := c.GetString("riderID")

	var req struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email"`
		City  string `json:"city"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	r, err := RiderSvc.CompleteProfile(c.Request.Context(), riderID, req.Name, req.Email, req.City)
	if err != nil {
		logger.Error("Failed to complete profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, r)
}

// LogoutHandler revokes the rider's token and drops any in-progress draft.
func LogoutHandler(c *gin.Context) {
	logger := getLogger(c)
	riderID := c.GetString("riderID")

	if err := RiderSvc.RevokeToken(c.Request.Context(), riderID); err != nil {
		logger.Error("Failed to revoke token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
		return
	}
	if err := DraftSvc.Purge(c.Request.Context(), riderID); err != nil && err != draft.ErrNotFound {
		logger.Warn("Failed to purge draft on logout", zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GetProfileHandler returns the authenticated rider's profile.
func GetProfileHandler(c *gin.Context) {
	logger := getLogger(c)
	riderID := c.GetString("riderID")

	r, err := RiderSvc.GetRiderByID(c.Request.Context(), riderID)
	if err != nil {
		logger.Error("Failed to get rider profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
		return
	}
	c.JSON(http.StatusOK, r)
}
