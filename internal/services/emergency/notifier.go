package emergency

import (
	"context"
	"log"
	"time"

	"amparo/internal/push"
	"amparo/internal/realtime"
	"amparo/internal/repositories"
)

const pushTimeout = 5 * time.Second

// HubNotifier delivers alerts over open websocket connections.
type HubNotifier struct {
	hub *realtime.Hub
}

func NewHubNotifier(hub *realtime.Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) Notify(targetID uint, alert Alert) {
	n.hub.Emit(targetID, "emergency_received", alert)
}

// PushNotifier mirrors alerts to FCM so backgrounded apps still ring.
// Targets without a registered device token are skipped.
type PushNotifier struct {
	firebase *push.FirebaseService
	userRepo repositories.UserRepository
}

func NewPushNotifier(firebase *push.FirebaseService, userRepo repositories.UserRepository) *PushNotifier {
	return &PushNotifier{
		firebase: firebase,
		userRepo: userRepo,
	}
}

func (n *PushNotifier) Notify(targetID uint, alert Alert) {
	user, err := n.userRepo.GetByID(targetID)
	if err != nil || user.DeviceToken == "" {
		return
	}

	go func(token string) {
		ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
		defer cancel()
		if err := n.firebase.SendEmergencyAlert(ctx, token, alert.ElderName, alert.Message); err != nil {
			log.Printf("emergency: push to user %d failed: %v", targetID, err)
		}
	}(user.DeviceToken)
}

// LogNotifier writes every delivery to the process log; it doubles as an
// audit trail for alerts raised while no sink could reach the target.
type LogNotifier struct{}

func (LogNotifier) Notify(targetID uint, alert Alert) {
	log.Printf("emergency: alert %d (%s) -> user %d", alert.AlertID, alert.ElderName, targetID)
}

// FanoutNotifier delivers through every configured sink.
type FanoutNotifier struct {
	sinks []Notifier
}

func NewFanoutNotifier(sinks ...Notifier) *FanoutNotifier {
	return &FanoutNotifier{sinks: sinks}
}

func (n *FanoutNotifier) Notify(targetID uint, alert Alert) {
	for _, sink := range n.sinks {
		sink.Notify(targetID, alert)
	}
}
