package shipmentrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/route"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/tracking"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormShipmentRepository implements ports.ShipmentRepository using GORM.
// The *gorm.DB must be opened with TranslateError so that unique violations
// surface as gorm.ErrDuplicatedKey.
type GormShipmentRepository struct {
	db *gorm.DB
}

func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// Add inserts the shipment row and its stops.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", ports.ErrDuplicateCode, dto.Code)
		}
		return err
	}
	return nil
}

// Update writes details and route if the stored version still matches, and
// increments the stored version.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := db.Model(&ShipmentDTO{}).
		Where("code = ? AND version = ?", dto.Code, aggregate.Version()).
		Select("*").
		Omit("code", "service", "owner_id", "created_at", clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, dto.Code)
	}

	for _, stop := range dto.Stops {
		err := db.Model(&StopDTO{}).
			Where("shipment_code = ? AND position = ?", stop.ShipmentCode, stop.Position).
			Select("status", "reached_at").
			Updates(&stop).Error
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *GormShipmentRepository) missingOrStale(ctx context.Context, code string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ShipmentDTO{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("shipment", code)
	}
	return ports.ErrConcurrentUpdate
}

// Get loads a shipment with its stops.
func (r *GormShipmentRepository) Get(ctx context.Context, code tracking.Code) (*shipment.Shipment, error) {
	if err := code.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	err := r.db.WithContext(ctx).
		Preload("Stops", orderedStops).
		First(&dto, "code = ?", code.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", code.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes the shipment and its stops.
func (r *GormShipmentRepository) Delete(ctx context.Context, code tracking.Code) error {
	if err := code.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	if err := db.Delete(&StopDTO{}, "shipment_code = ?", code.String()).Error; err != nil {
		return err
	}
	result := db.Delete(&ShipmentDTO{}, "code = ?", code.String())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("shipment", code.String())
	}
	return nil
}

// ListDueForProgress reads codes only; callers load each shipment in its own
// unit of work, so one unreadable route does not hold back the others.
func (r *GormShipmentRepository) ListDueForProgress(
	ctx context.Context,
	reachedBefore time.Time,
	limit int,
) ([]tracking.Code, error) {
	type dueRow struct {
		Code    string
		Service string
	}

	var rows []dueRow
	err := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Select("code", "service").
		Where("current_stop < ? AND current_reached_at < ?", route.Length-1, reachedBefore).
		Order("current_reached_at").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	codes := make([]tracking.Code, 0, len(rows))
	for _, row := range rows {
		service, err := tracking.ParseServiceClass(row.Service)
		if err != nil {
			return nil, fmt.Errorf("shipment %s: %w", row.Code, err)
		}
		code, err := tracking.NewCode(row.Code, service)
		if err != nil {
			return nil, fmt.Errorf("shipment %s: %w", row.Code, err)
		}
		codes = append(codes, code)
	}
	return codes, nil
}

func orderedStops(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}
