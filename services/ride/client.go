// Package ride finalizes a booking draft: referral application, wallet
// pre-deduction, submission to the rides upstream, and post-booking
// notifications.
package ride

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hirewheels/config"
	"hirewheels/models"

	"go.uber.org/zap"
)

// SubmissionError carries the rides upstream's message verbatim so the rider
// sees exactly what the service rejected.
type SubmissionError struct {
	Message string
}

func (e *SubmissionError) Error() string {
	return e.Message
}

// Client talks to the rides upstream.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

func NewClient(logger *zap.Logger) *Client {
	return &Client{
		BaseURL:    config.AppConfig.RidesBaseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		Logger:     logger,
	}
}

// Book submits the finalized draft and returns the created ride.
func (c *Client) Book(ctx context.Context, sub models.RideSubmission) (*models.Ride, error) {
	payload, err := json.Marshal(sub)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ride submission: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/rides/book", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build ride request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ride submission failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var body struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		msg := body.Message
		if msg == "" {
			msg = body.Error
		}
		if msg == "" {
			msg = fmt.Sprintf("ride service returned status %d", resp.StatusCode)
		}
		return nil, &SubmissionError{Message: msg}
	}

	var ride models.Ride
	if err := json.NewDecoder(resp.Body).Decode(&ride); err != nil {
		return nil, fmt.Errorf("decoding ride response failed: %w", err)
	}
	return &ride, nil
}
