package queries

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"gorm.io/gorm"
)

// DefaultTrackingTTL bounds how long a cached view may lag behind a change
// whose invalidation failed.
const DefaultTrackingTTL = 5 * time.Minute

// TrackShipmentQueryHandler serves public tracking views through a
// read-through cache. Cache failures degrade to database reads.
//
// Example:
//
//	handler := NewTrackShipmentQueryHandler(db, redisCache, time.Minute, logger)
//	query, err := NewTrackShipmentQuery("FDX 3123 4567 8903")
//	view, err := handler.Handle(ctx, query)
type TrackShipmentQueryHandler struct {
	db     *gorm.DB
	cache  ports.TrackingCache
	ttl    time.Duration
	logger *slog.Logger
}

// NewTrackShipmentQueryHandler creates the handler. A nil cache reads the
// database every time; a ttl below one second falls back to DefaultTrackingTTL.
func NewTrackShipmentQueryHandler(
	db *gorm.DB,
	cache ports.TrackingCache,
	ttl time.Duration,
	logger *slog.Logger,
) TrackShipmentQueryHandler {
	if ttl < time.Second {
		ttl = DefaultTrackingTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return TrackShipmentQueryHandler{
		db:     db,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With("component", "tracking"),
	}
}

func (h TrackShipmentQueryHandler) Handle(ctx context.Context, query TrackShipmentQuery) (*TrackShipmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	code := query.code.String()

	if view, ok := h.cached(ctx, code); ok {
		return view, nil
	}

	view, err := h.load(ctx, query)
	if err != nil {
		return nil, err
	}

	if h.cache != nil {
		if raw, err := json.Marshal(view); err == nil {
			if err = h.cache.Set(ctx, code, raw, h.ttl); err != nil {
				h.logger.WarnContext(ctx, "failed to cache tracking view", "code", code, "error", err)
			}
		}
	}
	return view, nil
}

func (h TrackShipmentQueryHandler) cached(ctx context.Context, code string) (*TrackShipmentQueryResponse, bool) {
	if h.cache == nil {
		return nil, false
	}

	raw, err := h.cache.Get(ctx, code)
	if err != nil {
		if !errors.Is(err, ports.ErrCacheMiss) {
			h.logger.WarnContext(ctx, "tracking cache unavailable", "code", code, "error", err)
		}
		return nil, false
	}

	var view TrackShipmentQueryResponse
	if err = json.Unmarshal(raw, &view); err != nil {
		h.logger.WarnContext(ctx, "discarding undecodable tracking view", "code", code, "error", err)
		return nil, false
	}
	return &view, true
}

func (h TrackShipmentQueryHandler) load(ctx context.Context, query TrackShipmentQuery) (*TrackShipmentQueryResponse, error) {
	code := query.code.String()

	routes, err := loadRoutes(ctx, h.db, []string{code})
	if err != nil {
		return nil, err
	}
	r, ok := routes[code]
	if !ok {
		return nil, errs.NewObjectNotFoundError("shipment", code)
	}

	stops := make([]TrackedStop, 0, len(r.Waypoints()))
	for _, v := range r.Describe() {
		stops = append(stops, TrackedStop{
			Label:       v.Label,
			FullLabel:   v.FullLabel,
			CountryCode: v.CountryCode,
			FlagURL:     v.FlagURL,
			Coordinates: v.Coordinates,
			Status:      v.Status.String(),
			ReachedAt:   v.Timestamp,
		})
	}

	service := query.code.Service()
	return &TrackShipmentQueryResponse{
		Code:               code,
		FormattedCode:      query.code.Formatted(),
		Service:            service.String(),
		ServiceDescription: service.Description(),
		CurrentIndex:       r.CurrentIndex(),
		Delivered:          r.IsDelivered(),
		Stops:              stops,
	}, nil
}
