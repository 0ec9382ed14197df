// Package service holds the onboarding business logic: the company
// directory, user identity, the OTP ledger, the signup workflow and approval
// propagation. Handlers and the CLI call into it; it never touches HTTP.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/credmarket/internal/credmarket/events"
	"github.com/aussiebroadwan/credmarket/internal/credmarket/notify"
	"github.com/aussiebroadwan/credmarket/pkg/slogx"
)

// Clock returns the current time. A nil Clock means time.Now. Every
// timestamp the services write is UTC.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}

// Notifier queues an email for background delivery. Submit must not block;
// a false return means the message was dropped (already logged).
type Notifier interface {
	Submit(msg notify.Message) bool
}

type discardNotifier struct{}

func (discardNotifier) Submit(notify.Message) bool { return false }

func notifierOrDiscard(n Notifier) Notifier {
	if n == nil {
		return discardNotifier{}
	}
	return n
}

// publish sends events after a commit. Failures are logged, the change they
// describe has already happened.
func publish(ctx context.Context, pub events.Publisher, evs ...events.Event) {
	if pub == nil || len(evs) == 0 {
		return
	}
	if err := pub.Publish(ctx, evs...); err != nil {
		slogx.FromContext(ctx).Error("failed to publish domain events",
			slog.Int("count", len(evs)),
			slog.Any("error", err),
		)
	}
}

func ptr[T any](v T) *T { return &v }
