package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/tracking"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"
)

// DefaultMaxMintAttempts bounds the regenerate-on-collision loop.
const DefaultMaxMintAttempts = 5

// CreateShipmentCommandHandler mints a code, stores the shipment and notifies
// both parties.
//
// Every storage attempt runs in its own unit of work: a duplicate key aborts
// the transaction, so the retry needs a fresh one. When notification fails
// after commit, the stored shipment is deleted again and the error returned,
// so no code stays reserved for a shipment nobody was told about.
//
// Example:
//
//	handler := NewCreateShipmentCommandHandler(uowFactory, assembler, labels, notifier, 5, logger)
//	code, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrIdentifierCollision) {
//	    // storage is saturated, retry later
//	}
type CreateShipmentCommandHandler struct {
	uowFactory  ShipmentUoWFactory
	assembler   services.ShipmentAssembler
	labels      services.LabelComposer
	notifier    ports.Notifier
	maxAttempts int
	logger      *slog.Logger
	now         func() time.Time
}

// NewCreateShipmentCommandHandler creates the handler. A nil notifier skips
// notification; maxAttempts below 1 falls back to DefaultMaxMintAttempts.
func NewCreateShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	assembler services.ShipmentAssembler,
	labels services.LabelComposer,
	notifier ports.Notifier,
	maxAttempts int,
	logger *slog.Logger,
) CreateShipmentCommandHandler {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxMintAttempts
	}
	return CreateShipmentCommandHandler{
		uowFactory:  uowFactory,
		assembler:   assembler,
		labels:      labels,
		notifier:    notifier,
		maxAttempts: maxAttempts,
		logger:      loggerOrDefault(logger),
		now:         time.Now,
	}
}

// Handle returns the code of the stored shipment.
func (h *CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) (tracking.Code, error) {
	if err := cmd.Validate(); err != nil {
		return tracking.Code{}, err
	}

	now := h.now()
	draft := services.Draft{
		Owner:   cmd.Owner(),
		Service: cmd.Service(),
		Details: cmd.Details(),
		Points:  cmd.Points(),
	}

	for attempt := 1; attempt <= h.maxAttempts; attempt++ {
		aggregate, err := h.assembler.Assemble(draft, now)
		if err != nil {
			return tracking.Code{}, err
		}

		err = h.store(ctx, aggregate)
		if errors.Is(err, ports.ErrDuplicateCode) {
			h.logger.InfoContext(ctx, "tracking code collision, minting again",
				"attempt", attempt, "service", cmd.Service().String())
			continue
		}
		if err != nil {
			return tracking.Code{}, err
		}

		if err = h.notify(ctx, aggregate, now); err != nil {
			return tracking.Code{}, h.compensate(ctx, aggregate.Code(), err)
		}
		return aggregate.Code(), nil
	}

	return tracking.Code{}, fmt.Errorf("%w: %d attempts", ErrIdentifierCollision, h.maxAttempts)
}

func (h *CreateShipmentCommandHandler) store(ctx context.Context, aggregate *shipment.Shipment) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.ShipmentRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func (h *CreateShipmentCommandHandler) notify(ctx context.Context, aggregate *shipment.Shipment, now time.Time) error {
	if h.notifier == nil {
		return nil
	}

	label, err := h.labels.Compose(aggregate, now)
	if err != nil {
		return fmt.Errorf("compose label: %w", err)
	}

	party := func(c shipment.Contact) ports.NoticeParty {
		return ports.NoticeParty{Name: c.Name(), FirstName: c.FirstName(), Email: c.Email(), Address: c.Address()}
	}
	notice := ports.ShipmentNotice{
		Language:       aggregate.Language().String(),
		Service:        aggregate.Service(),
		ParcelKind:     string(aggregate.Parcel().Kind()),
		ParcelImageRef: aggregate.Parcel().ImageRef(),
		PickupDate:     aggregate.Pickup().Date(),
		Sender:         party(aggregate.Sender()),
		Recipient:      party(aggregate.Recipient()),
		Label:          label,
	}

	if err = h.notifier.NotifyShipmentCreated(ctx, notice); err != nil {
		return fmt.Errorf("notify shipment created: %w", err)
	}
	return nil
}

// compensate deletes a shipment whose notification failed and returns cause,
// joined with the deletion error if the cleanup failed too.
func (h *CreateShipmentCommandHandler) compensate(ctx context.Context, code tracking.Code, cause error) error {
	uow := h.uowFactory.Create()
	err := uow.Begin(ctx)
	if err == nil {
		defer func() {
			_ = uow.Rollback(ctx)
		}()
		err = uow.ShipmentRepository().Delete(ctx, code)
	}
	if err == nil {
		err = uow.Commit(ctx)
	}

	if err != nil {
		h.logger.ErrorContext(ctx, "failed to delete shipment after notification failure",
			"code", code.String(), "error", err)
		return errors.Join(cause, fmt.Errorf("delete shipment %s: %w", code, err))
	}

	h.logger.WarnContext(ctx, "shipment deleted after notification failure", "code", code.String(), "error", cause)
	return cause
}
