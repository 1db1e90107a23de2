package service

import (
	"context"
	"encoding/json"
	"time"

	"wellmind_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CrisisNotifier receives exactly one dispatch per session when responses
// first indicate clinical crisis. The engine does not await or depend on the
// downstream handling.
type CrisisNotifier interface {
	NotifyCrisis(ctx context.Context, sessionID uint, metadata map[string]string) error
}

// CrisisEvent is the wire shape published to the alert channel.
type CrisisEvent struct {
	EventID    string            `json:"eventId"`
	SessionID  uint              `json:"sessionId"`
	OccurredAt time.Time         `json:"occurredAt"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// RedisCrisisNotifier publishes crisis events to a redis channel consumed by
// the on-call alerting pipeline.
type RedisCrisisNotifier struct {
	Client  *redis.Client
	Channel string
}

func NewRedisCrisisNotifier(client *redis.Client, channel string) *RedisCrisisNotifier {
	if channel == "" {
		channel = "screening_crisis_alerts"
	}
	return &RedisCrisisNotifier{Client: client, Channel: channel}
}

func (n *RedisCrisisNotifier) NotifyCrisis(ctx context.Context, sessionID uint, metadata map[string]string) error {
	event := CrisisEvent{
		EventID:    uuid.New().String(),
		SessionID:  sessionID,
		OccurredAt: time.Now(),
		Metadata:   metadata,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return n.Client.Publish(ctx, n.Channel, payload).Err()
}

// LogCrisisNotifier is used when redis is not configured. The event still
// lands in the structured log stream for operators.
type LogCrisisNotifier struct{}

func (LogCrisisNotifier) NotifyCrisis(_ context.Context, sessionID uint, metadata map[string]string) error {
	logger.Log.Warn("Crisis indicated for screening session",
		zap.Uint("sessionId", sessionID),
		zap.Any("metadata", metadata),
	)
	return nil
}
