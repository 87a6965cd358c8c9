package route

import (
	"fmt"
	"strings"

	"shipping/internal/pkg/errs"
)

// Status is the position of a waypoint relative to the current stop.
//
// Along a valid route statuses only ever appear in this order:
//
//	Completed* ──> Current ──> Upcoming*
type Status int

const (
	// Unknown is the zero value and is never valid.
	Unknown Status = iota

	// Completed stops have been passed; they always carry a timestamp.
	Completed

	// Current is the stop the parcel is at right now; exactly one per route.
	Current

	// Upcoming stops have not been reached yet and carry no timestamp.
	Upcoming
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Completed: "completed",
		Current:   "current",
		Upcoming:  "upcoming",
	}
}

// ParseStatus converts the persisted or wire representation back into a Status.
// Matching is case-insensitive.
func ParseStatus(s string) (Status, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != Unknown && str == needle {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and any value outside the declared constants.
func (s Status) Validate() error {
	if s != Completed && s != Current && s != Upcoming {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// HasTimestamp reports whether waypoints in this status must carry a timestamp.
func (s Status) HasTimestamp() bool {
	return s == Completed || s == Current
}
