package ports

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/tracking"
)

// NoticeParty is one addressee of a shipment notice.
type NoticeParty struct {
	Name      string
	FirstName string
	Email     string
	Address   string
}

// ShipmentNotice is everything an email renderer needs to tell sender and
// recipient that a parcel is on its way.
type ShipmentNotice struct {
	Language       string
	Service        tracking.ServiceClass
	ParcelKind     string
	ParcelImageRef string
	PickupDate     time.Time
	Sender         NoticeParty
	Recipient      NoticeParty
	Label          tracking.Label
}

// Notifier delivers shipment notices. Rendering and transport are the adapter's business.
type Notifier interface {
	NotifyShipmentCreated(ctx context.Context, notice ShipmentNotice) error
}
