package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"hirewheels/config"

	"github.com/golang-jwt/jwt"
)

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "HIREWHEELS"
	}
	return []byte(secret)
}

// GenerateToken creates a signed JWT token for the given rider and device.
// The token expires after the specified duration.
func GenerateToken(riderID, deviceID string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": riderID,
		"dev": deviceID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ExtractIDsFromToken extracts the rider ID and device ID from a valid token string.
func ExtractIDsFromToken(tokenString string) (string, string, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return "", "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", "", errors.New("token does not contain a valid 'sub' claim")
	}
	dev, ok := claims["dev"].(string)
	if !ok || dev == "" {
		return "", "", errors.New("token does not contain a valid 'dev' claim")
	}

	return sub, dev, nil
}
