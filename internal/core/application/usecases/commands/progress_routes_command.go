package commands

import (
	"errors"
	"time"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrProgressRoutesCommandIsNotConstructed = errors.New(
	"ProgressRoutesCommand must be created via NewProgressRoutesCommand constructor",
)

// ProgressRoutesCommand moves every shipment that has dwelled at its current
// stop for at least dwell one stop further, at most batchSize per run. It
// simulates parcels travelling when nobody edits the route by hand.
//
// Example:
//
//	cmd, _ := NewProgressRoutesCommand(6*time.Hour, 100)
//	advanced, err := handler.Handle(ctx, cmd)
type ProgressRoutesCommand struct { //nolint:recvcheck //using for validation
	dwell     time.Duration
	batchSize int

	guard guard.ConstructorGuard
}

func NewProgressRoutesCommand(dwell time.Duration, batchSize int) (ProgressRoutesCommand, error) {
	var err error
	if dwell <= 0 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("dwell", dwell, "1ns", "unbounded"))
	}
	if batchSize < 1 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, "unbounded"))
	}
	if err != nil {
		return ProgressRoutesCommand{}, err
	}

	return ProgressRoutesCommand{
		dwell:     dwell,
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ProgressRoutesCommand) Validate() error {
	return c.guard.Validate(ErrProgressRoutesCommandIsNotConstructed)
}

func (c ProgressRoutesCommand) Dwell() time.Duration { return c.dwell }
func (c ProgressRoutesCommand) BatchSize() int       { return c.batchSize }
