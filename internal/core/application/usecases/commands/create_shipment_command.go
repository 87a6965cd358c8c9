package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/route"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/tracking"
	"shipping/internal/pkg/guard"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

// CreateShipmentCommand is a submitted shipment form: who owns it, which
// service it ships with, the parties and parcel, and four route points.
//
// Example:
//
//	cmd, err := NewCreateShipmentCommand(owner, tracking.Express, details, points)
//	if err != nil {
//	    return fmt.Errorf("invalid shipment form: %w", err)
//	}
//	code, err := handler.Handle(ctx, cmd)
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	owner   kernel.UUID
	service tracking.ServiceClass
	details shipment.Details
	points  []route.Point

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand validates the owner, the service class and the
// details. The number of points is checked when the route is initialized.
func NewCreateShipmentCommand(
	owner kernel.UUID,
	service tracking.ServiceClass,
	details shipment.Details,
	points []route.Point,
) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOwner(owner),
		cmd.setService(service),
		cmd.setDetails(details),
	); err != nil {
		return CreateShipmentCommand{}, err
	}
	cmd.points = append([]route.Point(nil), points...)

	return cmd, nil
}

func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

func (c CreateShipmentCommand) Owner() kernel.UUID             { return c.owner }
func (c CreateShipmentCommand) Service() tracking.ServiceClass { return c.service }
func (c CreateShipmentCommand) Details() shipment.Details      { return c.details }

// Points returns a copy of the submitted route points.
func (c CreateShipmentCommand) Points() []route.Point {
	return append([]route.Point(nil), c.points...)
}

func (c *CreateShipmentCommand) setOwner(owner kernel.UUID) error {
	if err := owner.Validate(); err != nil {
		return err
	}
	c.owner = owner
	return nil
}

func (c *CreateShipmentCommand) setService(service tracking.ServiceClass) error {
	if err := service.Validate(); err != nil {
		return err
	}
	c.service = service
	return nil
}

func (c *CreateShipmentCommand) setDetails(details shipment.Details) error {
	if err := details.Validate(); err != nil {
		return err
	}
	c.details = details
	return nil
}
