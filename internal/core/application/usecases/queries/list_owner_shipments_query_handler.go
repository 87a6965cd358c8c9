package queries

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/tracking"

	"gorm.io/gorm"
)

type ListOwnerShipmentsQueryHandler struct {
	db *gorm.DB
}

func NewListOwnerShipmentsQueryHandler(db *gorm.DB) ListOwnerShipmentsQueryHandler {
	return ListOwnerShipmentsQueryHandler{db: db}
}

// Handle returns at most query.Limit() summaries. Stops of the page are read
// with one additional statement.
func (h ListOwnerShipmentsQueryHandler) Handle(
	ctx context.Context,
	query ListOwnerShipmentsQuery,
) ([]ShipmentSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	type summaryRow struct {
		Code      string
		Service   string
		Version   int
		UpdatedAt time.Time
	}

	var rows []summaryRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT code, service, version, updated_at
		FROM shipments
		WHERE owner_id = ?
		ORDER BY updated_at DESC, code
		LIMIT ? OFFSET ?
	`, query.owner.Bytes(), query.limit, query.offset).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	codes := make([]string, 0, len(rows))
	for _, row := range rows {
		codes = append(codes, row.Code)
	}
	routes, err := loadRoutes(ctx, h.db, codes)
	if err != nil {
		return nil, err
	}

	summaries := make([]ShipmentSummary, 0, len(rows))
	for _, row := range rows {
		service, err := tracking.ParseServiceClass(row.Service)
		if err != nil {
			return nil, err
		}
		code, err := tracking.NewCode(row.Code, service)
		if err != nil {
			return nil, err
		}

		summary := ShipmentSummary{
			Code:          row.Code,
			FormattedCode: code.Formatted(),
			Service:       service,
			Version:       row.Version,
			UpdatedAt:     row.UpdatedAt,
		}
		if r, ok := routes[row.Code]; ok {
			summary.Origin = r.Origin().Address().CityCountry()
			summary.Destination = r.Destination().Address().CityCountry()
			summary.CurrentIndex = r.CurrentIndex()
			summary.CurrentStop = r.Current().Address().CityCountry()
			summary.Delivered = r.IsDelivered()
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}
