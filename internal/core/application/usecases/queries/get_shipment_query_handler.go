package queries

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetShipmentQueryHandler reads one shipment for its owner. A foreign
// shipment yields shipment.ErrNotOwner, a missing one errs.ErrObjectNotFound.
type GetShipmentQueryHandler struct {
	db *gorm.DB
}

func NewGetShipmentQueryHandler(db *gorm.DB) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{db: db}
}

type shipmentRow struct {
	Code             string
	OwnerID          uuid.UUID
	Language         string
	SenderName       string
	SenderEmail      string
	SenderPhone      string
	SenderAddress    string
	RecipientName    string
	RecipientEmail   string
	RecipientPhone   string
	RecipientAddress string
	ParcelKind       string
	ParcelWeight     float64
	ParcelLength     float64
	ParcelWidth      float64
	ParcelHeight     float64
	ParcelImageRef   string
	PickupDate       time.Time
	PickupWindow     string
	Version          int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (h GetShipmentQueryHandler) Handle(ctx context.Context, query GetShipmentQuery) (*GetShipmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	code := query.code.String()
	var row shipmentRow
	result := h.db.WithContext(ctx).Raw(`
		SELECT
			code, owner_id, language,
			sender_name, sender_email, sender_phone, sender_address,
			recipient_name, recipient_email, recipient_phone, recipient_address,
			parcel_kind, parcel_weight, parcel_length, parcel_width, parcel_height, parcel_image_ref,
			pickup_date, pickup_window,
			version, created_at, updated_at
		FROM shipments
		WHERE code = ?
	`, code).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewObjectNotFoundError("shipment", code)
	}

	owner, err := kernel.UUIDFromBytes(row.OwnerID[:])
	if err != nil {
		return nil, err
	}
	if !owner.IsEqual(query.owner) {
		return nil, shipment.ErrNotOwner
	}

	routes, err := loadRoutes(ctx, h.db, []string{code})
	if err != nil {
		return nil, err
	}
	r, ok := routes[code]
	if !ok {
		return nil, errs.NewObjectNotFoundError("route", code)
	}

	return &GetShipmentQueryResponse{
		Code:          code,
		FormattedCode: query.code.Formatted(),
		DashedCode:    query.code.Dashed(),
		Service:       query.code.Service(),
		Language:      row.Language,
		Sender: ContactView{
			Name: row.SenderName, Email: row.SenderEmail, Phone: row.SenderPhone, Address: row.SenderAddress,
		},
		Recipient: ContactView{
			Name: row.RecipientName, Email: row.RecipientEmail, Phone: row.RecipientPhone, Address: row.RecipientAddress,
		},
		Parcel: ParcelView{
			Kind:     row.ParcelKind,
			Weight:   row.ParcelWeight,
			Length:   row.ParcelLength,
			Width:    row.ParcelWidth,
			Height:   row.ParcelHeight,
			ImageRef: row.ParcelImageRef,
		},
		PickupDate:   row.PickupDate,
		PickupWindow: row.PickupWindow,
		CurrentIndex: r.CurrentIndex(),
		Delivered:    r.IsDelivered(),
		Stops:        r.Describe(),
		Version:      row.Version,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}, nil
}
