package events

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/credmarket/pkg/slogx"
)

// LogPublisher logs events at debug level. It is the default when no broker
// is configured.
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, events ...Event) error {
	logger := slogx.FromContext(ctx)
	for _, e := range events {
		logger.Debug("domain event",
			slog.String("event_id", e.ID),
			slog.String("type", string(e.Type)),
			slog.String("aggregate_id", e.AggregateID),
		)
	}
	return nil
}

func (LogPublisher) Close() error { return nil }
