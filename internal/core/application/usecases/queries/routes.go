// Package queries contains read operations over shipments. Handlers read the
// tables with plain SQL and build read models without loading aggregates.
package queries

import (
	"context"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/route"

	"gorm.io/gorm"
)

type stopRow struct {
	ShipmentCode string
	Position     int
	Lat          float64
	Lng          float64
	Country      string
	CountryCode  string
	IsoRegion    string `gorm:"column:iso_region"`
	City         string
	Town         string
	Village      string
	Hamlet       string
	Suburb       string
	County       string
	State        string
	Postcode     string
	Status       string
	ReachedAt    *time.Time
}

// loadRoutes reads the stops of the given shipments and restores their routes.
func loadRoutes(ctx context.Context, db *gorm.DB, codes []string) (map[string]route.Route, error) {
	routes := make(map[string]route.Route, len(codes))
	if len(codes) == 0 {
		return routes, nil
	}

	var rows []stopRow
	err := db.WithContext(ctx).Raw(`
		SELECT
			shipment_code, position, lat, lng,
			country, country_code, iso_region, city, town, village, hamlet,
			suburb, county, state, postcode,
			status, reached_at
		FROM shipment_stops
		WHERE shipment_code IN ?
		ORDER BY shipment_code, position
	`, codes).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	waypoints := make(map[string][]route.Waypoint, len(codes))
	for _, row := range rows {
		w, wErr := row.toWaypoint()
		if wErr != nil {
			return nil, fmt.Errorf("shipment %s stop %d: %w", row.ShipmentCode, row.Position, wErr)
		}
		waypoints[row.ShipmentCode] = append(waypoints[row.ShipmentCode], w)
	}

	for code, ws := range waypoints {
		r, rErr := route.Restore(ws)
		if rErr != nil {
			return nil, fmt.Errorf("shipment %s: %w", code, rErr)
		}
		routes[code] = r
	}
	return routes, nil
}

func (row stopRow) toWaypoint() (route.Waypoint, error) {
	coordinates, err := kernel.NewLatLng(row.Lat, row.Lng)
	if err != nil {
		return route.Waypoint{}, err
	}
	status, err := route.ParseStatus(row.Status)
	if err != nil {
		return route.Waypoint{}, err
	}
	return route.RestoreWaypoint(route.Point{
		Coordinates: coordinates,
		Address: route.Address{
			Country:     row.Country,
			CountryCode: row.CountryCode,
			ISORegion:   row.IsoRegion,
			City:        row.City,
			Town:        row.Town,
			Village:     row.Village,
			Hamlet:      row.Hamlet,
			Suburb:      row.Suburb,
			County:      row.County,
			State:       row.State,
			Postcode:    row.Postcode,
		},
	}, status, row.ReachedAt)
}
