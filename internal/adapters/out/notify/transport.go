package notify

import (
	"context"
	"log/slog"
)

// Message is a rendered notification ready for delivery.
type Message struct {
	To       string
	Name     string
	Language string
	Subject  string
	Body     string
}

// Transport hands rendered messages to a delivery channel (SMTP relay, provider API, log).
type Transport interface {
	Send(ctx context.Context, msg Message) error
}

// LogTransport writes messages to the log instead of delivering them.
type LogTransport struct {
	logger *slog.Logger
}

func NewLogTransport(logger *slog.Logger) *LogTransport {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogTransport{logger: logger.With("component", "notify")}
}

func (t *LogTransport) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.logger.InfoContext(ctx, "notification sent",
		"to", msg.To,
		"language", msg.Language,
		"subject", msg.Subject,
	)
	return nil
}
