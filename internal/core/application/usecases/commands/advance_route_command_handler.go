package commands

import (
	"context"
	"log/slog"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/tracking"
	"shipping/internal/core/ports"
)

// AdvanceRouteCommandHandler moves the current stop of one shipment. Only the
// route changes; the stored version guards against concurrent edits.
type AdvanceRouteCommandHandler struct {
	uowFactory ShipmentUoWFactory
	cache      ports.TrackingCache
	logger     *slog.Logger
	now        func() time.Time
}

// NewAdvanceRouteCommandHandler creates the handler. cache may be nil.
func NewAdvanceRouteCommandHandler(
	uowFactory ShipmentUoWFactory,
	cache ports.TrackingCache,
	logger *slog.Logger,
) AdvanceRouteCommandHandler {
	return AdvanceRouteCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     loggerOrDefault(logger),
		now:        time.Now,
	}
}

// Handle returns shipment.ErrNotOwner for foreign shipments and
// ports.ErrConcurrentUpdate when the shipment changed in between.
func (h *AdvanceRouteCommandHandler) Handle(ctx context.Context, cmd AdvanceRouteCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ShipmentRepository()
	aggregate, err := loadOwned(ctx, repo, cmd.Code(), cmd.Owner(), cmd.ExpectedVersion())
	if err != nil {
		return err
	}

	if err = aggregate.AdvanceRoute(cmd.Index(), h.now()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	invalidateTracking(ctx, h.cache, h.logger, cmd.Code().String())
	return nil
}

// loadOwned fetches a shipment, checks ownership and, unless expectedVersion is
// AnyVersion, the version the caller last saw.
func loadOwned(
	ctx context.Context,
	repo ports.ShipmentRepository,
	code tracking.Code,
	owner kernel.UUID,
	expectedVersion int,
) (*shipment.Shipment, error) {
	aggregate, err := repo.Get(ctx, code)
	if err != nil {
		return nil, err
	}
	if err = aggregate.CheckOwner(owner); err != nil {
		return nil, err
	}
	if expectedVersion != AnyVersion && expectedVersion != aggregate.Version() {
		return nil, ports.ErrConcurrentUpdate
	}
	return aggregate, nil
}
