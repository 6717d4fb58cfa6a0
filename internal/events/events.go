package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/Skotchmaster/product_catalog/internal/logging"
)

const (
	TopicUsers    = "user_events"
	TopicProducts = "product_events"
)

const (
	UserRegistered = "user_registered"
	UserLoggedIn   = "user_logged_in"
	ProductCreated = "product_created"
	ProductUpdated = "product_updated"
	ProductDeleted = "product_deleted"
)

const publishTimeout = 5 * time.Second

type Publisher interface {
	Publish(ctx context.Context, topic, key string, event any) error
	Close() error
}

type Event struct {
	Type      string    `json:"type"`
	UserID    uint      `json:"userID,omitempty"`
	Username  string    `json:"username,omitempty"`
	ProductID uint      `json:"productID,omitempty"`
	Name      string    `json:"name,omitempty"`
	At        time.Time `json:"at"`
}

// Emit publishes best effort: failures are logged and swallowed.
func Emit(ctx context.Context, p Publisher, topic, key string, ev Event) {
	if p == nil {
		return
	}
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := p.Publish(pubCtx, topic, key, ev); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "topic", topic, "type", ev.Type, "error", err)
		return
	}
	logging.FromContext(ctx).Debug("event_published", slog.String("topic", topic), slog.String("type", ev.Type))
}

type Nop struct{}

func (Nop) Publish(context.Context, string, string, any) error { return nil }
func (Nop) Close() error                                      { return nil }
