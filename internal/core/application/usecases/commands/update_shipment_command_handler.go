package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"shipping/internal/core/ports"
)

// UpdateShipmentCommandHandler applies edits to contacts, parcel, pickup and
// language. The route is only changed through AdvanceRouteCommandHandler.
type UpdateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	cache      ports.TrackingCache
	logger     *slog.Logger
	now        func() time.Time
}

func NewUpdateShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	cache ports.TrackingCache,
	logger *slog.Logger,
) UpdateShipmentCommandHandler {
	return UpdateShipmentCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     loggerOrDefault(logger),
		now:        time.Now,
	}
}

func (h *UpdateShipmentCommandHandler) Handle(ctx context.Context, cmd UpdateShipmentCommand) error {
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

	if cmd.Service() != "" && cmd.Service() != aggregate.Service() {
		return fmt.Errorf("%w: %s to %s", ErrServiceClassImmutable, aggregate.Service(), cmd.Service())
	}

	if err = aggregate.UpdateDetails(cmd.Details(), h.now()); err != nil {
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
