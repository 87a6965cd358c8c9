package shipment

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// Kind is the packaging of the parcel.
type Kind string

const (
	Box      Kind = "box"
	Envelope Kind = "envelope"
	Other    Kind = "other"
)

// minMeasure applies to the weight and to each dimension.
const minMeasure = 1.0

var ErrParcelIsNotConstructed = errors.New("Parcel must be created via NewParcel")

func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if err := k.Validate(); err != nil {
		return "", err
	}
	return k, nil
}

func (k Kind) Validate() error {
	switch k {
	case Box, Envelope, Other:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("package type", fmt.Errorf("%q is not a package type", string(k)))
}

// Dimensions are length, width and height in the unit the user entered.
type Dimensions struct {
	Length float64
	Width  float64
	Height float64
}

// Parcel describes what is being shipped.
type Parcel struct {
	kind       Kind
	weight     float64
	dimensions Dimensions
	// imageRef points at a photo stored outside the service; empty when none was uploaded.
	imageRef string
	guard    guard.ConstructorGuard
}

func NewParcel(kind Kind, weight float64, dimensions Dimensions, imageRef string) (Parcel, error) {
	p := Parcel{guard: guard.NewConstructorGuard(), imageRef: strings.TrimSpace(imageRef)}
	if err := errors.Join(
		kind.Validate(),
		checkMeasure("weight", weight),
		checkMeasure("length", dimensions.Length),
		checkMeasure("width", dimensions.Width),
		checkMeasure("height", dimensions.Height),
	); err != nil {
		return Parcel{}, err
	}
	p.kind = kind
	p.weight = weight
	p.dimensions = dimensions
	return p, nil
}

func (p Parcel) Validate() error {
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

func (p Parcel) Kind() Kind             { return p.kind }
func (p Parcel) Weight() float64        { return p.weight }
func (p Parcel) Dimensions() Dimensions { return p.dimensions }
func (p Parcel) ImageRef() string       { return p.imageRef }

func checkMeasure(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errs.NewValueIsInvalidErrorWithCause(name, errors.New("must be a finite number"))
	}
	if v < minMeasure {
		return errs.NewValueIsOutOfRangeError(name, v, minMeasure, "unbounded")
	}
	return nil
}
