package commands

import (
	"context"
	"log/slog"

	"shipping/internal/core/ports"
)

// DeleteShipmentCommandHandler hard-deletes a shipment owned by the caller.
type DeleteShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	cache      ports.TrackingCache
	logger     *slog.Logger
}

func NewDeleteShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	cache ports.TrackingCache,
	logger *slog.Logger,
) DeleteShipmentCommandHandler {
	return DeleteShipmentCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     loggerOrDefault(logger),
	}
}

func (h *DeleteShipmentCommandHandler) Handle(ctx context.Context, cmd DeleteShipmentCommand) error {
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
	if _, err := loadOwned(ctx, repo, cmd.Code(), cmd.Owner(), AnyVersion); err != nil {
		return err
	}

	if err := repo.Delete(ctx, cmd.Code()); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	invalidateTracking(ctx, h.cache, h.logger, cmd.Code().String())
	return nil
}
