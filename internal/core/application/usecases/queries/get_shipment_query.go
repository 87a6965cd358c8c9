package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/route"
	"shipping/internal/core/domain/model/tracking"
	"shipping/internal/pkg/guard"
)

var ErrGetShipmentQueryIsNotConstructed = errors.New(
	"GetShipmentQuery must be created via NewGetShipmentQuery constructor",
)

// GetShipmentQuery reads everything the owner of a shipment may see.
type GetShipmentQuery struct {
	owner kernel.UUID
	code  tracking.Code
	guard guard.ConstructorGuard
}

func NewGetShipmentQuery(owner kernel.UUID, code tracking.Code) (GetShipmentQuery, error) {
	if err := errors.Join(owner.Validate(), code.Validate()); err != nil {
		return GetShipmentQuery{}, err
	}
	return GetShipmentQuery{owner: owner, code: code, guard: guard.NewConstructorGuard()}, nil
}

func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

type ContactView struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

type ParcelView struct {
	Kind     string
	Weight   float64
	Length   float64
	Width    float64
	Height   float64
	ImageRef string
}

// GetShipmentQueryResponse is the owner view of a shipment.
type GetShipmentQueryResponse struct {
	Code          string
	FormattedCode string
	DashedCode    string
	Service       tracking.ServiceClass
	Language      string
	Sender        ContactView
	Recipient     ContactView
	Parcel        ParcelView
	PickupDate    time.Time
	PickupWindow  string
	CurrentIndex  int
	Delivered     bool
	Stops         []route.StopView
	Version       int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
