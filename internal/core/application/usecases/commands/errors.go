package commands

import (
	"context"
	"errors"
	"log/slog"

	"shipping/internal/core/ports"
)

var (
	// ErrIdentifierCollision is returned when every minted code already existed in storage.
	ErrIdentifierCollision = errors.New("could not mint an unused tracking code")
	// ErrServiceClassImmutable is returned when an edit asks for another service class.
	// The service is encoded in the tracking code, so a new shipment must be created instead.
	ErrServiceClassImmutable = errors.New("service class cannot be changed after the code is minted")
)

// invalidateTracking drops the cached public view of code. The cache TTL bounds
// staleness, so failures are only logged.
func invalidateTracking(ctx context.Context, cache ports.TrackingCache, logger *slog.Logger, code string) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, code); err != nil {
		logger.WarnContext(ctx, "failed to invalidate tracking view", "code", code, "error", err)
	}
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger.With("component", "commands")
}
