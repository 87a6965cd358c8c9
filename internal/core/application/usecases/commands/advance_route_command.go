package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/tracking"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrAdvanceRouteCommandIsNotConstructed = errors.New(
	"AdvanceRouteCommand must be created via NewAdvanceRouteCommand constructor",
)

// AnyVersion disables the caller-side version check of a command.
const AnyVersion = 0

// AdvanceRouteCommand moves the current stop of a shipment to index, forwards or
// backwards. When expectedVersion is not AnyVersion the command only applies
// to that version of the shipment.
type AdvanceRouteCommand struct { //nolint:recvcheck //using for validation
	owner           kernel.UUID
	code            tracking.Code
	index           int
	expectedVersion int

	guard guard.ConstructorGuard
}

// NewAdvanceRouteCommand validates the owner, the code and the version. The index
// range is checked by the route itself.
func NewAdvanceRouteCommand(
	owner kernel.UUID,
	code tracking.Code,
	index int,
	expectedVersion int,
) (AdvanceRouteCommand, error) {
	cmd := AdvanceRouteCommand{
		index: index,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		owner.Validate(),
		code.Validate(),
		validateExpectedVersion(expectedVersion),
	); err != nil {
		return AdvanceRouteCommand{}, err
	}
	cmd.owner = owner
	cmd.code = code
	cmd.expectedVersion = expectedVersion

	return cmd, nil
}

func (c AdvanceRouteCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceRouteCommandIsNotConstructed)
}

func (c AdvanceRouteCommand) Owner() kernel.UUID   { return c.owner }
func (c AdvanceRouteCommand) Code() tracking.Code  { return c.code }
func (c AdvanceRouteCommand) Index() int           { return c.index }
func (c AdvanceRouteCommand) ExpectedVersion() int { return c.expectedVersion }

func validateExpectedVersion(version int) error {
	if version < AnyVersion {
		return errs.NewValueIsOutOfRangeError("expected version", version, AnyVersion, "unbounded")
	}
	return nil
}
