package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/harbourview/aptly/internal/domain"
)

// RedisBroadcaster publishes safety alerts on a per-tenant pub/sub channel.
// Mobile clients subscribed to their complex's channel receive the alert
// without polling.
type RedisBroadcaster struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisBroadcaster creates a new RedisBroadcaster.
func NewRedisBroadcaster(client *redis.Client, logger *slog.Logger) *RedisBroadcaster {
	return &RedisBroadcaster{
		client: client,
		logger: logger.With("component", "redis_broadcaster"),
	}
}

// channelFor returns the pub/sub channel name for one apartment complex.
func channelFor(apartment string) string {
	return "alerts:" + apartment
}

// Broadcast publishes the alert as JSON on the tenant's channel.
func (b *RedisBroadcaster) Broadcast(ctx context.Context, apartment string, alert *domain.SafetyAlert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("marshal safety alert: %w", err)
	}

	if err := b.client.Publish(ctx, channelFor(apartment), payload).Err(); err != nil {
		return fmt.Errorf("publish safety alert: %w", err)
	}

	b.logger.Info("broadcast safety alert", "apartment", apartment, "alert_id", alert.ID)
	return nil
}
