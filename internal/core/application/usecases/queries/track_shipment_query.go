package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/tracking"
	"shipping/internal/pkg/guard"
)

var ErrTrackShipmentQueryIsNotConstructed = errors.New(
	"TrackShipmentQuery must be created via NewTrackShipmentQuery constructor",
)

// TrackShipmentQuery is a public lookup by tracking code. It needs no owner.
type TrackShipmentQuery struct {
	code  tracking.Code
	guard guard.ConstructorGuard
}

// NewTrackShipmentQuery accepts the code as printed: grouped, dashed or with
// the product prefix.
func NewTrackShipmentQuery(text string) (TrackShipmentQuery, error) {
	code, err := tracking.ParseAny(text)
	if err != nil {
		return TrackShipmentQuery{}, err
	}
	return TrackShipmentQuery{code: code, guard: guard.NewConstructorGuard()}, nil
}

func (q TrackShipmentQuery) Validate() error {
	return q.guard.Validate(ErrTrackShipmentQueryIsNotConstructed)
}

func (q TrackShipmentQuery) Code() tracking.Code { return q.code }

// TrackedStop is a waypoint as shown on the public tracking page. It carries
// places and progress only, never contact details.
type TrackedStop struct {
	Label       string     `json:"label"`
	FullLabel   string     `json:"fullLabel"`
	CountryCode string     `json:"countryCode"`
	FlagURL     string     `json:"flagUrl"`
	Coordinates [2]float64 `json:"coordinates"`
	Status      string     `json:"status"`
	ReachedAt   *time.Time `json:"reachedAt,omitempty"`
}

// TrackShipmentQueryResponse is cached as JSON, so it carries its own tags.
type TrackShipmentQueryResponse struct {
	Code               string        `json:"code"`
	FormattedCode      string        `json:"formattedCode"`
	Service            string        `json:"service"`
	ServiceDescription string        `json:"serviceDescription"`
	CurrentIndex       int           `json:"currentIndex"`
	Delivered          bool          `json:"delivered"`
	Stops              []TrackedStop `json:"stops"`
}
