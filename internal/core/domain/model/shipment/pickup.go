package shipment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// Window is the part of the day the courier collects the parcel.
type Window string

const (
	Morning   Window = "morning"
	Afternoon Window = "afternoon"
	Evening   Window = "evening"
)

var (
	ErrPickupIsNotConstructed = errors.New("Pickup must be created via NewPickup")
	ErrPickupDateInPast       = errs.NewValueIsInvalidError("pickup date is in the past")
)

func ParseWindow(s string) (Window, error) {
	w := Window(strings.ToLower(strings.TrimSpace(s)))
	if err := w.Validate(); err != nil {
		return "", err
	}
	return w, nil
}

func (w Window) Validate() error {
	switch w {
	case Morning, Afternoon, Evening:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("pickup window", fmt.Errorf("%q is not a pickup window", string(w)))
}

// Pickup is a calendar day plus a window. The day is kept as midnight UTC.
type Pickup struct {
	date   time.Time
	window Window
	guard  guard.ConstructorGuard
}

func NewPickup(date time.Time, window Window) (Pickup, error) {
	if date.IsZero() {
		return Pickup{}, errs.NewValueIsRequiredError("pickup date")
	}
	if err := window.Validate(); err != nil {
		return Pickup{}, err
	}
	return Pickup{date: calendarDay(date), window: window, guard: guard.NewConstructorGuard()}, nil
}

func (p Pickup) Validate() error {
	return p.guard.Validate(ErrPickupIsNotConstructed)
}

func (p Pickup) Date() time.Time { return p.date }
func (p Pickup) Window() Window  { return p.window }

func (p Pickup) IsEqual(other Pickup) bool {
	return p.date.Equal(other.date) && p.window == other.window
}

// CheckNotPast rejects pickups scheduled before the calendar day of now.
func (p Pickup) CheckNotPast(now time.Time) error {
	if p.date.Before(calendarDay(now)) {
		return fmt.Errorf("%w: %s", ErrPickupDateInPast, p.date.Format(time.DateOnly))
	}
	return nil
}

func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
