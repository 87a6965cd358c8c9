package tracking

import "shipping/internal/core/domain/model/kernel"

// zoneBounds are the inclusive upper distance bounds, in miles, of zones 1 to 7.
var zoneBounds = [...]float64{50, 150, 300, 600, 1000, 1400, 1800}

// MaxZone is assigned to anything farther than the last bound.
const MaxZone = len(zoneBounds) + 1

// Zone maps the great-circle distance between origin and destination to a label zone 1..8.
func Zone(origin, destination kernel.LatLng) int {
	return ZoneForDistance(origin.DistanceMiles(destination))
}

// ZoneForDistance returns the first zone whose bound the distance does not exceed.
func ZoneForDistance(miles float64) int {
	for i, bound := range zoneBounds {
		if miles <= bound {
			return i + 1
		}
	}
	return MaxZone
}
