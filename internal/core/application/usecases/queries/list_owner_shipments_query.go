package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/tracking"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

var ErrListOwnerShipmentsQueryIsNotConstructed = errors.New(
	"ListOwnerShipmentsQuery must be created via NewListOwnerShipmentsQuery constructor",
)

// ListOwnerShipmentsQuery pages through the shipments of one owner, most
// recently changed first.
//
// Example:
//
//	query, err := NewListOwnerShipmentsQuery(owner, 0, 0) // first page, default size
//	items, err := handler.Handle(ctx, query)
type ListOwnerShipmentsQuery struct {
	owner  kernel.UUID
	limit  int
	offset int
	guard  guard.ConstructorGuard
}

// NewListOwnerShipmentsQuery uses DefaultListLimit when limit is 0.
func NewListOwnerShipmentsQuery(owner kernel.UUID, limit, offset int) (ListOwnerShipmentsQuery, error) {
	if limit == 0 {
		limit = DefaultListLimit
	}

	var err error
	if limit < 1 || limit > MaxListLimit {
		err = errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxListLimit)
	}
	if offset < 0 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("offset", offset, 0, "unbounded"))
	}
	if err = errors.Join(owner.Validate(), err); err != nil {
		return ListOwnerShipmentsQuery{}, err
	}

	return ListOwnerShipmentsQuery{
		owner:  owner,
		limit:  limit,
		offset: offset,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q ListOwnerShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrListOwnerShipmentsQueryIsNotConstructed)
}

func (q ListOwnerShipmentsQuery) Limit() int  { return q.limit }
func (q ListOwnerShipmentsQuery) Offset() int { return q.offset }

// ShipmentSummary is one dashboard row.
type ShipmentSummary struct {
	Code          string
	FormattedCode string
	Service       tracking.ServiceClass
	Origin        string
	Destination   string
	CurrentIndex  int
	CurrentStop   string
	Delivered     bool
	Version       int
	UpdatedAt     time.Time
}
