package notification

import (
	"context"

	"hirewheels/models"
	"hirewheels/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService sends push notifications to riders.
type NotificationService interface {
	SendRiderPush(ctx context.Context, rider *models.Rider, title, body string, data map[string]string) error
}

// DefaultNotificationService implements NotificationService over FCM.
type DefaultNotificationService struct {
	Logger *zap.Logger
}

// SendRiderPush delivers a notification to every registered device token of
// the rider. Missing tokens are not an error; the rider simply gets nothing.
func (s *DefaultNotificationService) SendRiderPush(ctx context.Context, rider *models.Rider, title, body string, data map[string]string) error {
	if len(rider.FCMTokens) == 0 {
		return nil
	}
	client := utils.FCMClient
	if client == nil {
		s.Logger.Warn("FCM client not initialized, dropping push",
			zap.String("rider", rider.ID))
		return nil
	}

	msg := &messaging.MulticastMessage{
		Tokens: rider.FCMTokens,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	resp, err := client.SendEachForMulticast(ctx, msg)
	if err != nil {
		return err
	}
	if resp.FailureCount > 0 {
		s.Logger.Warn("some push deliveries failed",
			zap.String("rider", rider.ID), zap.Int("failures", resp.FailureCount))
	}
	return nil
}
