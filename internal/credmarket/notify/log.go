package notify

import (
	"context"
	"log/slog"
)

// LogSender writes messages to the log instead of delivering them. Used when
// no SMTP host is configured, which is how development runs surface OTP codes.
type LogSender struct {
	Logger *slog.Logger
}

func (s LogSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("email (log sender)",
		slog.String("kind", msg.Kind),
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("body", msg.Text),
	)
	return nil
}
