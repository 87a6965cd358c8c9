package postgres

import (
	"shipping/internal/adapters/out/postgres/shipmentrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the shipments and shipment_stops tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&shipmentrepo.ShipmentDTO{}, &shipmentrepo.StopDTO{})
}
