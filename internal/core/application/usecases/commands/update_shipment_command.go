package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/tracking"
	"shipping/internal/pkg/guard"
)

var ErrUpdateShipmentCommandIsNotConstructed = errors.New(
	"UpdateShipmentCommand must be created via NewUpdateShipmentCommand constructor",
)

// UpdateShipmentCommand replaces the editable details of a shipment.
// service is the delivery type the edit form submitted; an empty value means
// "unchanged" and any other value must match the code's service class.
type UpdateShipmentCommand struct { //nolint:recvcheck //using for validation
	owner           kernel.UUID
	code            tracking.Code
	service         tracking.ServiceClass
	details         shipment.Details
	expectedVersion int

	guard guard.ConstructorGuard
}

func NewUpdateShipmentCommand(
	owner kernel.UUID,
	code tracking.Code,
	service tracking.ServiceClass,
	details shipment.Details,
	expectedVersion int,
) (UpdateShipmentCommand, error) {
	cmd := UpdateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	var serviceErr error
	if service != "" {
		serviceErr = service.Validate()
	}
	if err := errors.Join(
		owner.Validate(),
		code.Validate(),
		serviceErr,
		details.Validate(),
		validateExpectedVersion(expectedVersion),
	); err != nil {
		return UpdateShipmentCommand{}, err
	}

	cmd.owner = owner
	cmd.code = code
	cmd.service = service
	cmd.details = details
	cmd.expectedVersion = expectedVersion
	return cmd, nil
}

func (c UpdateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrUpdateShipmentCommandIsNotConstructed)
}

func (c UpdateShipmentCommand) Owner() kernel.UUID             { return c.owner }
func (c UpdateShipmentCommand) Code() tracking.Code            { return c.code }
func (c UpdateShipmentCommand) Service() tracking.ServiceClass { return c.service }
func (c UpdateShipmentCommand) Details() shipment.Details      { return c.details }
func (c UpdateShipmentCommand) ExpectedVersion() int           { return c.expectedVersion }
