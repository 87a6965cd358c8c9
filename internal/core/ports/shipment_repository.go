// Package ports defines the contracts between the shipping core and its adapters:
// storage, notification delivery and the tracking view cache.
package ports

import (
	"context"
	"errors"
	"time"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/tracking"
	"shipping/internal/pkg/errs"
)

var (
	// ErrDuplicateCode is returned by Add when the tracking code is already stored.
	ErrDuplicateCode = errors.New("tracking code already exists")
	// ErrConcurrentUpdate is returned by Update when the stored version no longer
	// matches the version the shipment was loaded with.
	ErrConcurrentUpdate = errs.NewVersionIsInvalidError("shipment")
)

// ShipmentRepository persists Shipment aggregates keyed by tracking code.
// The four waypoints of the route are stored in journey order with the shipment.
type ShipmentRepository interface {
	// Add stores a new shipment. A stored code yields ErrDuplicateCode.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update stores the route and details of a shipment if its stored version
	// still equals aggregate.Version(), then increments the stored version.
	// A missing row yields errs.ErrObjectNotFound and a version mismatch
	// ErrConcurrentUpdate. The aggregate must be reloaded before another update.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get loads a shipment with its route. A missing row yields errs.ErrObjectNotFound.
	Get(ctx context.Context, code tracking.Code) (*shipment.Shipment, error)

	// Delete removes a shipment and its route. A missing row yields errs.ErrObjectNotFound.
	Delete(ctx context.Context, code tracking.Code) error

	// ListDueForProgress returns the codes of shipments whose current stop was
	// reached before reachedBefore and is not the destination, oldest first, at most limit.
	ListDueForProgress(ctx context.Context, reachedBefore time.Time, limit int) ([]tracking.Code, error)
}
