package route

import (
	"errors"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
)

// Point is a raw, not yet routed stop: where it is and what it is called.
type Point struct {
	Coordinates kernel.LatLng
	Address     Address
}

func (p Point) Validate() error {
	return errors.Join(p.Coordinates.Validate(), p.Address.Validate())
}

// Waypoint is one stop of a Route.
//
// The timestamp is unexported and only reachable through Timestamp, which
// reports whether it is set. Upcoming waypoints are built without one, so
// a regression to Upcoming can never leave a stale timestamp behind.
type Waypoint struct {
	point     Point
	status    Status
	timestamp time.Time
}

// RestoreWaypoint rebuilds a waypoint from storage. timestamp must be non-nil
// exactly when status is Completed or Current.
func RestoreWaypoint(point Point, status Status, timestamp *time.Time) (Waypoint, error) {
	if err := errors.Join(point.Validate(), status.Validate()); err != nil {
		return Waypoint{}, err
	}

	switch {
	case status.HasTimestamp() && (timestamp == nil || timestamp.IsZero()):
		return Waypoint{}, errs.NewValueIsRequiredErrorWithCause("timestamp",
			fmt.Errorf("%s waypoint must carry a timestamp", status))
	case !status.HasTimestamp() && timestamp != nil:
		return Waypoint{}, errs.NewValueIsInvalidErrorWithCause("timestamp",
			fmt.Errorf("%s waypoint must not carry a timestamp", status))
	}

	w := Waypoint{point: point, status: status}
	if timestamp != nil {
		w.timestamp = *timestamp
	}
	return w, nil
}

func (w Waypoint) Point() Point               { return w.point }
func (w Waypoint) Coordinates() kernel.LatLng { return w.point.Coordinates }
func (w Waypoint) Address() Address           { return w.point.Address }
func (w Waypoint) Status() Status             { return w.status }
func (w Waypoint) IsCurrent() bool            { return w.status == Current }

// Timestamp returns the moment the stop was first reached and false for upcoming stops.
func (w Waypoint) Timestamp() (time.Time, bool) {
	if !w.status.HasTimestamp() {
		return time.Time{}, false
	}
	return w.timestamp, true
}

// reached moves the stop into a stamped status, keeping the first timestamp.
func (w Waypoint) reached(status Status, now time.Time) Waypoint {
	ts := w.timestamp
	if !w.status.HasTimestamp() || ts.IsZero() {
		ts = now
	}
	return Waypoint{point: w.point, status: status, timestamp: ts}
}

func (w Waypoint) pending() Waypoint {
	return Waypoint{point: w.point, status: Upcoming}
}
