// Package notifier publishes committed coaching events to a Redis stream so
// that downstream consumers can react to artifact changes.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/heartmarshall/coaching-backend/internal/domain"
)

// DefaultStream is the stream used when none is configured.
const DefaultStream = "coaching_events"

// Notifier appends events to a Redis stream.
type Notifier struct {
	client *redis.Client
	stream string
	maxLen int64
}

// New creates a Notifier over an existing client. maxLen caps the stream
// approximately; zero leaves it unbounded.
func New(client *redis.Client, stream string, maxLen int64) *Notifier {
	if stream == "" {
		stream = DefaultStream
	}
	return &Notifier{client: client, stream: stream, maxLen: maxLen}
}

// Connect creates a Redis client from a URL and checks it is reachable.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 5 * time.Second
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

// Publish appends one event to the stream and returns nothing but the error.
func (n *Notifier) Publish(ctx context.Context, e *domain.CoachingEvent) error {
	data, err := json.Marshal(e.EventData)
	if err != nil {
		return fmt.Errorf("marshal event data: %w", err)
	}

	values := map[string]any{
		"event_id":   e.ID.String(),
		"client_id":  e.ClientID.String(),
		"coach_id":   e.CoachID.String(),
		"event_type": e.EventType.String(),
		"area":       e.Area.String(),
		"source":     e.Source.String(),
		"title":      e.Title,
		"created_at": e.CreatedAt.UTC().Format(time.RFC3339Nano),
		"data":       string(data),
	}
	if e.RelatedEntityType != nil && e.RelatedEntityID != nil {
		values["related_entity_type"] = *e.RelatedEntityType
		values["related_entity_id"] = e.RelatedEntityID.String()
	}
	if e.AIGenerationLogID != nil {
		values["generation_log_id"] = e.AIGenerationLogID.String()
	}

	args := &redis.XAddArgs{Stream: n.stream, Values: values}
	if n.maxLen > 0 {
		args.MaxLen = n.maxLen
		args.Approx = true
	}

	if err := n.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("publish event %s: %w", e.ID, err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (n *Notifier) Ping(ctx context.Context) error {
	return n.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (n *Notifier) Close() error {
	return n.client.Close()
}
