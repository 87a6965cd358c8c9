package services

import (
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/route"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/tracking"
)

// CodeMinter mints tracking codes. *tracking.Generator satisfies it.
type CodeMinter interface {
	Generate(service tracking.ServiceClass) (tracking.Code, error)
}

// Draft is a validated shipment form that has not been given a code yet.
type Draft struct {
	Owner   kernel.UUID
	Service tracking.ServiceClass
	Details shipment.Details
	Points  []route.Point
}

// ShipmentAssembler turns drafts into shipments ready to be stored.
//
// Assemble is called once per storage attempt: every call mints a fresh code,
// so a caller that hits a duplicate key simply assembles again.
//
// Example usage:
//
//	assembler := services.NewShipmentAssembler(tracking.NewGenerator(nil))
//	s, err := assembler.Assemble(draft, time.Now())
//	if errors.Is(err, route.ErrInvalidRouteLength) {
//	    // reject the form
//	}
type ShipmentAssembler struct {
	minter CodeMinter
}

// NewShipmentAssembler uses minter for codes, or crypto/rand when minter is nil.
func NewShipmentAssembler(minter CodeMinter) ShipmentAssembler {
	if minter == nil {
		minter = tracking.NewGenerator(nil)
	}
	return ShipmentAssembler{minter: minter}
}

// Assemble checks the service class, initializes the route from the draft
// points, mints a code and builds the aggregate. Nothing is minted for a draft
// whose service or route is invalid.
func (a ShipmentAssembler) Assemble(draft Draft, now time.Time) (*shipment.Shipment, error) {
	if err := draft.Service.Validate(); err != nil {
		return nil, err
	}

	r, err := route.Initialize(draft.Points, now)
	if err != nil {
		return nil, err
	}

	code, err := a.minter.Generate(draft.Service)
	if err != nil {
		return nil, err
	}

	return shipment.NewShipment(code, draft.Owner, draft.Details, r, now)
}
