package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	riderRepo "hirewheels/database/repository/rider"
	"hirewheels/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// JWTAuthRiderMiddleware requires a valid bearer token issued to the calling
// device and sets "riderID" in the context.
func JWTAuthRiderMiddleware(repo riderRepo.RiderRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer recoverToJSON(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c, "Insufficient authorization")
			return
		}
		if !authenticateRider(c, repo, strings.TrimPrefix(authHeader, "Bearer ")) {
			return
		}
		c.Next()
	}
}

// OptionalJWTAuthRiderMiddleware lets anonymous requests through untouched.
// When a bearer token is present it must be valid; drafts stay keyed by
// device until the rider signs in, then by rider ID.
func OptionalJWTAuthRiderMiddleware(repo riderRepo.RiderRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer recoverToJSON(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}
		if !authenticateRider(c, repo, strings.TrimPrefix(authHeader, "Bearer ")) {
			return
		}
		c.Next()
	}
}

// authenticateRider validates the token against the device, the auth cache
// and finally the database. It aborts the request and returns false on any
// failure; on success it sets "riderID" in the context.
func authenticateRider(c *gin.Context, repo riderRepo.RiderRepository, tokenString string) bool {
	ctx := context.Background()

	if tokenString == "" {
		abortUnauthorized(c, "Insufficient authorization")
		return false
	}

	// Extract both rider ID and device ID from the token.
	riderID, tokenDeviceID, err := utils.ExtractIDsFromToken(tokenString)
	if err != nil || riderID == "" || tokenDeviceID == "" {
		abortUnauthorized(c, "Insufficient authorization")
		return false
	}

	// The device presenting the token must be the one it was issued to.
	ctxDeviceID := c.GetString("deviceID")
	if ctxDeviceID == "" || tokenDeviceID != ctxDeviceID {
		abortUnauthorized(c, "Insufficient authorization")
		return false
	}

	computedHash := utils.HashToken(tokenString)
	if computedHash == "" {
		abortUnauthorized(c, "Insufficient authorization")
		return false
	}

	// Composite cache key using riderID and deviceID.
	cacheKey := utils.AuthCachePrefix + riderID + ":" + tokenDeviceID

	authCache := utils.GetAuthCacheClient()
	cacheEnabled := true
	if authCache == nil {
		log.Printf("WARNING: Auth cache client not available. Falling back to DB lookup.")
		cacheEnabled = false
	}

	if cacheEnabled {
		cachedHash, err := authCache.Get(ctx, cacheKey).Result()
		if err == nil {
			if cachedHash == computedHash {
				_ = authCache.Expire(ctx, cacheKey, time.Hour).Err()
				c.Set("riderID", riderID)
				return true
			}
			abortUnauthorized(c, "Token mismatch")
			return false
		} else if err != redis.Nil {
			log.Printf("WARNING: Error retrieving auth cache key: %v. Falling back to DB lookup.", err)
		}
	}

	// Cache miss: query the database.
	r, err := repo.GetByID(riderID)
	if err != nil || r == nil {
		abortUnauthorized(c, "Authentication error")
		return false
	}
	if r.TokenHash == "" || r.TokenHash != computedHash {
		abortUnauthorized(c, "Token mismatch")
		return false
	}

	if cacheEnabled {
		_ = authCache.Set(ctx, cacheKey, computedHash, time.Hour).Err()
	}

	c.Set("riderID", riderID)
	return true
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": msg,
		"code":  0,
	})
}

func recoverToJSON(c *gin.Context) {
	if r := recover(); r != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
			"code":  500,
		})
	}
}
