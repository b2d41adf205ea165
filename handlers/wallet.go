package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WalletBalanceHandler returns the rider's wallet balance.
func WalletBalanceHandler(c *gin.Context) {
	logger := getLogger(c)
	riderID := c.GetString("riderID")

	balance, err := RiderSvc.WalletBalance(c.Request.Context(), riderID)
	if err != nil {
		logger.Error("Failed to fetch wallet balance", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch balance"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// TopUpWalletHandler charges the rider through Stripe and credits the wallet.
func TopUpWalletHandler(c *gin.Context) {
	logger := getLogger(c)
	riderID := c.GetString("riderID")

	var req struct {
		Amount float64 `json:"amount" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txn, err := RiderSvc.TopUpWallet(c.Request.Context(), riderID, req.Amount)
	if err != nil {
		logger.Error("Wallet top-up failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Top-up failed"})
		return
	}
	c.JSON(http.StatusOK, txn)
}
