// Package push delivers FCM notifications mirroring the realtime channel,
// so alerts reach family members whose app is backgrounded.
package push

import (
	"context"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

type FirebaseService struct {
	client *messaging.Client
}

// NewFirebaseService initializes the FCM client from a credentials file.
func NewFirebaseService(credentialsPath string) (*FirebaseService, error) {
	ctx := context.Background()

	opt := option.WithCredentialsFile(credentialsPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Messaging client: %w", err)
	}

	log.Println("Firebase push service initialized")

	return &FirebaseService{client: client}, nil
}

// SendEmergencyAlert pushes a high-priority emergency notification.
func (s *FirebaseService) SendEmergencyAlert(ctx context.Context, deviceToken, elderName, message string) error {
	if deviceToken == "" {
		return fmt.Errorf("device token is empty")
	}

	msg := &messaging.Message{
		Token: deviceToken,
		Notification: &messaging.Notification{
			Title: "🚨 Emergência",
			Body:  message,
		},
		Data: map[string]string{
			"type":      "emergency_alert",
			"elderName": elderName,
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound:     "default",
				Priority:  messaging.PriorityHigh,
				ChannelID: "amparo_emergency",
			},
		},
	}

	id, err := s.client.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to send push: %w", err)
	}

	log.Printf("push sent: %s", id)
	return nil
}
