package route

import (
	"errors"
	"fmt"
	"time"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// Length is the number of waypoints on every route.
const Length = 4

var (
	// ErrInvalidRouteLength is returned when a route is built from anything but Length points.
	ErrInvalidRouteLength = errors.New("route must contain exactly 4 waypoints")
	// ErrIndexOutOfRange is returned by AdvanceTo for an index outside [0, Length-1].
	ErrIndexOutOfRange = errors.New("waypoint index is out of range")
	// ErrRouteIsNotConstructed is returned when using a zero-value Route.
	ErrRouteIsNotConstructed = errors.New("Route must be created via Initialize or Restore")
)

// Route is the ordered journey of a shipment: origin, two intermediate hubs,
// destination.
//
// Route is a value type backed by a fixed-size array, so copies never share
// waypoints. All transitions return a new Route.
//
// Invariants (checked by Restore, preserved by Initialize and AdvanceTo):
//   - exactly Length waypoints
//   - statuses read Completed*, Current, Upcoming* with exactly one Current
//   - Completed and Current waypoints carry a timestamp, Upcoming ones do not
//
// Example usage:
//
//	r, err := route.Initialize(points, time.Now())
//	if err != nil {
//	    return err
//	}
//	r, err = r.AdvanceTo(2, time.Now()) // [completed, completed, current, upcoming]
type Route struct {
	stops [Length]Waypoint
	guard guard.ConstructorGuard
}

// Initialize builds the route of a freshly created shipment.
//
// The first point becomes Current and is stamped with now; the other three are
// Upcoming with no timestamp.
//
// Returns:
//   - ErrInvalidRouteLength (wrapped) if len(points) != Length
//   - a joined validation error if any point has invalid coordinates or address
func Initialize(points []Point, now time.Time) (Route, error) {
	if len(points) != Length {
		return Route{}, fmt.Errorf("%w: got %d", ErrInvalidRouteLength, len(points))
	}

	var err error
	for i, p := range points {
		if pErr := p.Validate(); pErr != nil {
			err = errors.Join(err, fmt.Errorf("waypoint %d: %w", i, pErr))
		}
	}
	if err != nil {
		return Route{}, err
	}

	r := Route{guard: guard.NewConstructorGuard()}
	for i, p := range points {
		w := Waypoint{point: p, status: Upcoming}
		if i == 0 {
			w = w.reached(Current, now)
		}
		r.stops[i] = w
	}
	return r, nil
}

// Restore rebuilds a Route read back from storage and re-checks every invariant,
// so a corrupted row can never surface as a valid route.
func Restore(waypoints []Waypoint) (Route, error) {
	if len(waypoints) != Length {
		return Route{}, fmt.Errorf("%w: got %d", ErrInvalidRouteLength, len(waypoints))
	}

	r := Route{guard: guard.NewConstructorGuard()}
	copy(r.stops[:], waypoints)

	if err := r.checkSequence(); err != nil {
		return Route{}, err
	}
	return r, nil
}

// AdvanceTo designates the waypoint at index as current and recomputes every status.
//
// Business rules:
//   - waypoints before index become Completed; a stamped waypoint keeps its
//     timestamp, an unstamped one (skipped over) is stamped with now
//   - the waypoint at index becomes Current, stamped with now unless it already has a timestamp
//   - waypoints after index become Upcoming and lose their timestamp
//
// Moving backwards is allowed. Calling AdvanceTo twice with the same index
// yields the same route; existing timestamps are never overwritten.
//
// Returns ErrIndexOutOfRange (wrapped) when index is outside [0, Length-1].
func (r Route) AdvanceTo(index int, now time.Time) (Route, error) {
	if err := r.Validate(); err != nil {
		return Route{}, err
	}
	if index < 0 || index >= Length {
		return Route{}, fmt.Errorf("%w: %w", ErrIndexOutOfRange,
			errs.NewValueIsOutOfRangeError("index", index, 0, Length-1))
	}

	next := Route{guard: r.guard}
	for i, w := range r.stops {
		switch {
		case i < index:
			next.stops[i] = w.reached(Completed, now)
		case i == index:
			next.stops[i] = w.reached(Current, now)
		default:
			next.stops[i] = w.pending()
		}
	}
	return next, nil
}

func (r Route) Validate() error {
	return r.guard.Validate(ErrRouteIsNotConstructed)
}

// CurrentIndex returns the position of the current waypoint, or -1 for a zero-value Route.
func (r Route) CurrentIndex() int {
	for i, w := range r.stops {
		if w.status == Current {
			return i
		}
	}
	return -1
}

// Current returns the waypoint the parcel is at.
func (r Route) Current() Waypoint {
	if i := r.CurrentIndex(); i >= 0 {
		return r.stops[i]
	}
	return Waypoint{}
}

func (r Route) Origin() Waypoint {
	return r.stops[0]
}

func (r Route) Destination() Waypoint {
	return r.stops[Length-1]
}

// IsDelivered reports whether the destination is the current stop.
func (r Route) IsDelivered() bool {
	return r.CurrentIndex() == Length-1
}

// Waypoints returns a copy of the waypoints in journey order.
func (r Route) Waypoints() []Waypoint {
	out := make([]Waypoint, Length)
	copy(out, r.stops[:])
	return out
}

// Statuses lists the status of every waypoint in journey order.
func (r Route) Statuses() []Status {
	out := make([]Status, Length)
	for i, w := range r.stops {
		out[i] = w.status
	}
	return out
}

func (r Route) checkSequence() error {
	current := -1
	for i, w := range r.stops {
		if err := w.status.Validate(); err != nil {
			return fmt.Errorf("waypoint %d: %w", i, err)
		}
		if _, ok := w.Timestamp(); ok && w.timestamp.IsZero() {
			return fmt.Errorf("waypoint %d: %w", i, errs.NewValueIsRequiredError("timestamp"))
		}

		switch w.status {
		case Current:
			if current != -1 {
				return errs.NewValueIsInvalidErrorWithCause("route",
					fmt.Errorf("waypoints %d and %d are both current", current, i))
			}
			current = i
		case Completed:
			if current != -1 {
				return errs.NewValueIsInvalidErrorWithCause("route",
					fmt.Errorf("waypoint %d is completed after current waypoint %d", i, current))
			}
		case Upcoming:
			if current == -1 {
				return errs.NewValueIsInvalidErrorWithCause("route",
					fmt.Errorf("waypoint %d is upcoming before any current waypoint", i))
			}
		case Unknown:
		}
	}

	if current == -1 {
		return errs.NewValueIsInvalidErrorWithCause("route", errors.New("no current waypoint"))
	}
	return nil
}
