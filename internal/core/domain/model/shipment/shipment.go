package shipment

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/route"
	"shipping/internal/core/domain/model/tracking"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

// InitialVersion is the version of a shipment that has never been updated.
const InitialVersion = 1

var (
	ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment")
	// ErrNotOwner is returned when a user acts on a shipment created by someone else.
	ErrNotOwner = errors.New("shipment belongs to another user")
)

// Details are the user-editable attributes of a shipment.
type Details struct {
	Language  Language
	Sender    Contact
	Recipient Contact
	Parcel    Parcel
	Pickup    Pickup
}

func (d Details) Validate() error {
	return errors.Join(
		d.Language.Validate(),
		d.Sender.Validate(),
		d.Recipient.Validate(),
		d.Parcel.Validate(),
		d.Pickup.Validate(),
	)
}

// Shipment is the aggregate root tying a tracking code to its owner, its
// parties, the parcel and the route it travels.
//
// Invariants:
//   - the code is valid and never changes, so neither does the service class
//   - the route always satisfies the route package invariants
//   - only AdvanceRoute touches the route; only UpdateDetails touches the details
//
// version is the optimistic concurrency counter of the stored row. It is not
// changed in memory; repositories compare it on update and bump the stored value.
type Shipment struct {
	code      tracking.Code
	owner     kernel.UUID
	details   Details
	route     route.Route
	version   int
	createdAt time.Time
	updatedAt time.Time
	guard     guard.ConstructorGuard
}

// NewShipment builds a shipment that is about to be stored for the first time.
// The pickup date must not lie before the calendar day of now.
func NewShipment(
	code tracking.Code,
	owner kernel.UUID,
	details Details,
	r route.Route,
	now time.Time,
) (*Shipment, error) {
	s := &Shipment{
		guard:     guard.NewConstructorGuard(),
		version:   InitialVersion,
		createdAt: now,
		updatedAt: now,
	}
	if err := errors.Join(
		s.setCode(code),
		s.setOwner(owner),
		s.setDetails(details),
		s.setRoute(r),
	); err != nil {
		return nil, err
	}
	if err := details.Pickup.CheckNotPast(now); err != nil {
		return nil, err
	}
	return s, nil
}

// RestoreShipment rebuilds a stored shipment. Past pickup dates are accepted.
func RestoreShipment(
	code tracking.Code,
	owner kernel.UUID,
	details Details,
	r route.Route,
	version int,
	createdAt, updatedAt time.Time,
) (*Shipment, error) {
	s := &Shipment{
		guard:     guard.NewConstructorGuard(),
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
	if err := errors.Join(
		s.setCode(code),
		s.setOwner(owner),
		s.setDetails(details),
		s.setRoute(r),
		s.setVersion(version),
	); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

func (s *Shipment) Code() tracking.Code            { return s.code }
func (s *Shipment) Service() tracking.ServiceClass { return s.code.Service() }
func (s *Shipment) Owner() kernel.UUID             { return s.owner }
func (s *Shipment) Details() Details               { return s.details }
func (s *Shipment) Language() Language             { return s.details.Language }
func (s *Shipment) Sender() Contact                { return s.details.Sender }
func (s *Shipment) Recipient() Contact             { return s.details.Recipient }
func (s *Shipment) Parcel() Parcel                 { return s.details.Parcel }
func (s *Shipment) Pickup() Pickup                 { return s.details.Pickup }
func (s *Shipment) Route() route.Route             { return s.route }
func (s *Shipment) Version() int                   { return s.version }
func (s *Shipment) CreatedAt() time.Time           { return s.createdAt }
func (s *Shipment) UpdatedAt() time.Time           { return s.updatedAt }

// CheckOwner returns ErrNotOwner unless owner created the shipment.
func (s *Shipment) CheckOwner(owner kernel.UUID) error {
	if !s.owner.IsEqual(owner) {
		return ErrNotOwner
	}
	return nil
}

// AdvanceRoute designates the stop at index as current. Nothing but the route
// and the update time changes.
func (s *Shipment) AdvanceRoute(index int, now time.Time) error {
	next, err := s.route.AdvanceTo(index, now)
	if err != nil {
		return err
	}
	s.route = next
	s.updatedAt = now
	return nil
}

// UpdateDetails replaces the editable attributes. An unchanged pickup may stay
// in the past; a rescheduled one may not.
func (s *Shipment) UpdateDetails(details Details, now time.Time) error {
	if err := details.Validate(); err != nil {
		return err
	}
	if !details.Pickup.IsEqual(s.details.Pickup) {
		if err := details.Pickup.CheckNotPast(now); err != nil {
			return err
		}
	}
	s.details = details
	s.updatedAt = now
	return nil
}

func (s *Shipment) setCode(code tracking.Code) error {
	if err := code.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("code", err)
	}
	s.code = code
	return nil
}

func (s *Shipment) setOwner(owner kernel.UUID) error {
	if err := owner.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("owner", err)
	}
	s.owner = owner
	return nil
}

func (s *Shipment) setDetails(details Details) error {
	if err := details.Validate(); err != nil {
		return err
	}
	s.details = details
	return nil
}

func (s *Shipment) setRoute(r route.Route) error {
	if err := r.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("route", err)
	}
	s.route = r
	return nil
}

func (s *Shipment) setVersion(version int) error {
	if version < InitialVersion {
		return errs.NewValueIsOutOfRangeError("version", version, InitialVersion, "unbounded")
	}
	s.version = version
	return nil
}
