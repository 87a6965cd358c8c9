package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/tracking"
	"shipping/internal/pkg/guard"
)

var ErrDeleteShipmentCommandIsNotConstructed = errors.New(
	"DeleteShipmentCommand must be created via NewDeleteShipmentCommand constructor",
)

// DeleteShipmentCommand removes a shipment and its route for good.
type DeleteShipmentCommand struct { //nolint:recvcheck //using for validation
	owner kernel.UUID
	code  tracking.Code

	guard guard.ConstructorGuard
}

func NewDeleteShipmentCommand(owner kernel.UUID, code tracking.Code) (DeleteShipmentCommand, error) {
	if err := errors.Join(owner.Validate(), code.Validate()); err != nil {
		return DeleteShipmentCommand{}, err
	}
	return DeleteShipmentCommand{
		owner: owner,
		code:  code,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteShipmentCommand) Validate() error {
	return c.guard.Validate(ErrDeleteShipmentCommandIsNotConstructed)
}

func (c DeleteShipmentCommand) Owner() kernel.UUID  { return c.owner }
func (c DeleteShipmentCommand) Code() tracking.Code { return c.code }
