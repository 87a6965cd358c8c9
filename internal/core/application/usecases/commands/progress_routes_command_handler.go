package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"shipping/internal/core/domain/model/tracking"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"
)

// ProgressRoutesCommandHandler advances due shipments by one stop, each in its
// own unit of work. A shipment that fails to load or store is logged and left
// for the next run; the others still move.
//
// Example:
//
//	handler := NewProgressRoutesCommandHandler(uowFactory, cache, logger)
//	// typically called periodically by a scheduler
//	advanced, err := handler.Handle(ctx, cmd)
type ProgressRoutesCommandHandler struct {
	uowFactory ShipmentUoWFactory
	cache      ports.TrackingCache
	logger     *slog.Logger
	now        func() time.Time
}

func NewProgressRoutesCommandHandler(
	uowFactory ShipmentUoWFactory,
	cache ports.TrackingCache,
	logger *slog.Logger,
) ProgressRoutesCommandHandler {
	return ProgressRoutesCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     loggerOrDefault(logger),
		now:        time.Now,
	}
}

// Handle returns the number of shipments moved forward. Only a failure to list
// due shipments or a cancelled ctx is returned as an error.
func (h *ProgressRoutesCommandHandler) Handle(ctx context.Context, cmd ProgressRoutesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := h.now()
	cutoff := now.Add(-cmd.Dwell())

	due, err := h.uowFactory.Create().ShipmentRepository().ListDueForProgress(ctx, cutoff, cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	advanced := 0
	for _, code := range due {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return advanced, ctxErr
		}

		moved, advanceErr := h.advance(ctx, code, cutoff, now)
		switch {
		case errors.Is(advanceErr, ports.ErrConcurrentUpdate):
			h.logger.InfoContext(ctx, "shipment changed concurrently, skipping", "code", code.String())
			continue
		case errors.Is(advanceErr, errs.ErrObjectNotFound):
			continue
		case advanceErr != nil:
			h.logger.ErrorContext(ctx, "failed to progress shipment", "code", code.String(), "error", advanceErr)
			continue
		}
		if moved {
			invalidateTracking(ctx, h.cache, h.logger, code.String())
			advanced++
		}
	}
	return advanced, nil
}

// advance moves one shipment if it is still due once loaded.
func (h *ProgressRoutesCommandHandler) advance(
	ctx context.Context,
	code tracking.Code,
	cutoff, now time.Time,
) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ShipmentRepository()
	aggregate, err := repo.Get(ctx, code)
	if err != nil {
		return false, err
	}

	current := aggregate.Route().Current()
	reachedAt, ok := current.Timestamp()
	if aggregate.Route().IsDelivered() || !ok || !reachedAt.Before(cutoff) {
		return false, nil
	}

	if err = aggregate.AdvanceRoute(aggregate.Route().CurrentIndex()+1, now); err != nil {
		return false, err
	}
	if err = repo.Update(ctx, aggregate); err != nil {
		return false, err
	}
	if err = uow.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}
