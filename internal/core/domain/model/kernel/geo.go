package kernel

import (
	"errors"
	"fmt"
	"math"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0

	// EarthRadiusMiles is the mean Earth radius used for great-circle distances.
	EarthRadiusMiles = 3958.8
)

var (
	ErrLatLngIsNotConstructed = errs.NewValueIsRequiredError("coordinates must be created via NewLatLng")
	errNotFinite              = errors.New("coordinate must be a finite number")
)

// LatLng is a WGS 84 coordinate pair. The zero value is invalid; (0, 0) built
// through NewLatLng is a legitimate point in the Gulf of Guinea.
type LatLng struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewLatLng validates that both components are finite and inside their ranges.
func NewLatLng(lat, lng float64) (LatLng, error) {
	p := LatLng{guard: guard.NewConstructorGuard()}
	if err := errors.Join(p.setLat(lat), p.setLng(lng)); err != nil {
		return LatLng{}, err
	}
	return p, nil
}

// MustLatLng is NewLatLng for literals known to be valid.
func MustLatLng(lat, lng float64) LatLng {
	p, err := NewLatLng(lat, lng)
	if err != nil {
		panic(err)
	}
	return p
}

func (p LatLng) Validate() error {
	return p.guard.Validate(ErrLatLngIsNotConstructed)
}

func (p LatLng) Lat() float64 { return p.lat }
func (p LatLng) Lng() float64 { return p.lng }

// Pair returns the coordinate in [lat, lng] order.
func (p LatLng) Pair() [2]float64 {
	return [2]float64{p.lat, p.lng}
}

func (p LatLng) IsEqual(other LatLng) bool {
	return p.lat == other.lat && p.lng == other.lng
}

func (p LatLng) String() string {
	return fmt.Sprintf("LatLng(%g,%g)", p.lat, p.lng)
}

// DistanceMiles returns the haversine great-circle distance to other.
func (p LatLng) DistanceMiles(other LatLng) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(other.lat - p.lat)
	dLng := toRad(other.lng - p.lng)
	a := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(toRad(p.lat))*math.Cos(toRad(other.lat))*math.Pow(math.Sin(dLng/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMiles * c
}

func (p *LatLng) setLat(lat float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) {
		return errs.NewValueIsInvalidErrorWithCause("latitude", errNotFinite)
	}
	if lat < MinLatitude || lat > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", lat, MinLatitude, MaxLatitude)
	}
	p.lat = lat
	return nil
}

func (p *LatLng) setLng(lng float64) error {
	if math.IsNaN(lng) || math.IsInf(lng, 0) {
		return errs.NewValueIsInvalidErrorWithCause("longitude", errNotFinite)
	}
	if lng < MinLongitude || lng > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", lng, MinLongitude, MaxLongitude)
	}
	p.lng = lng
	return nil
}
