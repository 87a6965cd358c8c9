// Package shipmentrepo persists shipment aggregates with GORM. A shipment is one
// row in "shipments"; its four route stops are rows in "shipment_stops" keyed by
// the tracking code and their position in the journey.
package shipmentrepo

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/route"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/tracking"

	"github.com/google/uuid"
)

// ShipmentDTO is the row of the shipments table. current_stop and
// current_reached_at duplicate the route so listings and the progress job
// can filter without joining the stops.
type ShipmentDTO struct {
	Code             string     `gorm:"type:varchar(15);primaryKey"`
	Service          string     `gorm:"type:varchar(16);not null"`
	OwnerID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	Language         string     `gorm:"type:varchar(8);not null"`
	Sender           ContactDTO `gorm:"embedded;embeddedPrefix:sender_"`
	Recipient        ContactDTO `gorm:"embedded;embeddedPrefix:recipient_"`
	Parcel           ParcelDTO  `gorm:"embedded;embeddedPrefix:parcel_"`
	PickupDate       time.Time  `gorm:"type:date;not null"`
	PickupWindow     string     `gorm:"type:varchar(16);not null"`
	CurrentStop      int        `gorm:"type:smallint;not null"`
	CurrentReachedAt *time.Time `gorm:"index"`
	Version          int        `gorm:"not null"`
	CreatedAt        time.Time  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt        time.Time  `gorm:"not null;index;autoUpdateTime:false"`
	Stops            []StopDTO  `gorm:"foreignKey:ShipmentCode;references:Code;constraint:OnDelete:CASCADE"`
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

type ContactDTO struct {
	Name    string `gorm:"type:varchar(255);not null"`
	Email   string `gorm:"type:varchar(320);not null"`
	Phone   string `gorm:"type:varchar(32);not null"`
	Address string `gorm:"type:varchar(1000);not null"`
}

type ParcelDTO struct {
	Kind     string  `gorm:"type:varchar(16);not null"`
	Weight   float64 `gorm:"not null"`
	Length   float64 `gorm:"not null"`
	Width    float64 `gorm:"not null"`
	Height   float64 `gorm:"not null"`
	ImageRef string  `gorm:"type:varchar(1024)"`
}

// StopDTO is one waypoint of a shipment route.
type StopDTO struct {
	ShipmentCode string     `gorm:"type:varchar(15);primaryKey"`
	Position     int        `gorm:"type:smallint;primaryKey;autoIncrement:false"`
	Lat          float64    `gorm:"not null"`
	Lng          float64    `gorm:"not null"`
	Country      string     `gorm:"type:varchar(255);not null"`
	CountryCode  string     `gorm:"type:varchar(2);not null"`
	ISORegion    string     `gorm:"column:iso_region;type:varchar(16);not null"`
	City         string     `gorm:"type:varchar(255)"`
	Town         string     `gorm:"type:varchar(255)"`
	Village      string     `gorm:"type:varchar(255)"`
	Hamlet       string     `gorm:"type:varchar(255)"`
	Suburb       string     `gorm:"type:varchar(255)"`
	County       string     `gorm:"type:varchar(255)"`
	State        string     `gorm:"type:varchar(255)"`
	Postcode     string     `gorm:"type:varchar(32)"`
	Status       string     `gorm:"type:varchar(16);not null"`
	ReachedAt    *time.Time
}

func (StopDTO) TableName() string {
	return "shipment_stops"
}

func fromDomain(s *shipment.Shipment) ShipmentDTO {
	code := s.Code().String()
	r := s.Route()

	stops := make([]StopDTO, 0, route.Length)
	for i, w := range r.Waypoints() {
		stops = append(stops, stopFromDomain(code, i, w))
	}

	dims := s.Parcel().Dimensions()
	dto := ShipmentDTO{
		Code:      code,
		Service:   s.Service().String(),
		OwnerID:   s.Owner().Bytes(),
		Language:  s.Language().String(),
		Sender:    contactFromDomain(s.Sender()),
		Recipient: contactFromDomain(s.Recipient()),
		Parcel: ParcelDTO{
			Kind:     string(s.Parcel().Kind()),
			Weight:   s.Parcel().Weight(),
			Length:   dims.Length,
			Width:    dims.Width,
			Height:   dims.Height,
			ImageRef: s.Parcel().ImageRef(),
		},
		PickupDate:   s.Pickup().Date(),
		PickupWindow: string(s.Pickup().Window()),
		CurrentStop:  r.CurrentIndex(),
		Version:      s.Version(),
		CreatedAt:    s.CreatedAt(),
		UpdatedAt:    s.UpdatedAt(),
		Stops:        stops,
	}
	if ts, ok := r.Current().Timestamp(); ok {
		dto.CurrentReachedAt = &ts
	}
	return dto
}

func contactFromDomain(c shipment.Contact) ContactDTO {
	return ContactDTO{Name: c.Name(), Email: c.Email(), Phone: c.Phone(), Address: c.Address()}
}

func stopFromDomain(code string, position int, w route.Waypoint) StopDTO {
	a := w.Address()
	dto := StopDTO{
		ShipmentCode: code,
		Position:     position,
		Lat:          w.Coordinates().Lat(),
		Lng:          w.Coordinates().Lng(),
		Country:      a.Country,
		CountryCode:  a.CountryCode,
		ISORegion:    a.ISORegion,
		City:         a.City,
		Town:         a.Town,
		Village:      a.Village,
		Hamlet:       a.Hamlet,
		Suburb:       a.Suburb,
		County:       a.County,
		State:        a.State,
		Postcode:     a.Postcode,
		Status:       w.Status().String(),
	}
	if ts, ok := w.Timestamp(); ok {
		dto.ReachedAt = &ts
	}
	return dto
}

// toDomain rebuilds the aggregate. Stops must be ordered by position.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	service, err := tracking.ParseServiceClass(dto.Service)
	if err != nil {
		return nil, err
	}
	code, err := tracking.NewCode(dto.Code, service)
	if err != nil {
		return nil, err
	}
	owner, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	details, err := detailsToDomain(dto)
	if err != nil {
		return nil, err
	}

	waypoints := make([]route.Waypoint, 0, len(dto.Stops))
	for _, stop := range dto.Stops {
		w, stopErr := stopToDomain(stop)
		if stopErr != nil {
			return nil, stopErr
		}
		waypoints = append(waypoints, w)
	}
	r, err := route.Restore(waypoints)
	if err != nil {
		return nil, err
	}

	return shipment.RestoreShipment(code, owner, details, r, dto.Version, dto.CreatedAt, dto.UpdatedAt)
}

func detailsToDomain(dto ShipmentDTO) (shipment.Details, error) {
	lang, langErr := shipment.ParseLanguage(dto.Language)
	sender, senderErr := contactToDomain(dto.Sender)
	recipient, recipientErr := contactToDomain(dto.Recipient)
	parcel, parcelErr := shipment.NewParcel(
		shipment.Kind(dto.Parcel.Kind),
		dto.Parcel.Weight,
		shipment.Dimensions{Length: dto.Parcel.Length, Width: dto.Parcel.Width, Height: dto.Parcel.Height},
		dto.Parcel.ImageRef,
	)
	pickup, pickupErr := shipment.NewPickup(dto.PickupDate, shipment.Window(dto.PickupWindow))

	if err := errors.Join(langErr, senderErr, recipientErr, parcelErr, pickupErr); err != nil {
		return shipment.Details{}, err
	}
	return shipment.Details{
		Language:  lang,
		Sender:    sender,
		Recipient: recipient,
		Parcel:    parcel,
		Pickup:    pickup,
	}, nil
}

func contactToDomain(dto ContactDTO) (shipment.Contact, error) {
	return shipment.NewContact(dto.Name, dto.Email, dto.Phone, dto.Address)
}

func stopToDomain(dto StopDTO) (route.Waypoint, error) {
	coordinates, err := kernel.NewLatLng(dto.Lat, dto.Lng)
	if err != nil {
		return route.Waypoint{}, err
	}
	status, err := route.ParseStatus(dto.Status)
	if err != nil {
		return route.Waypoint{}, err
	}
	point := route.Point{
		Coordinates: coordinates,
		Address: route.Address{
			Country:     dto.Country,
			CountryCode: dto.CountryCode,
			ISORegion:   dto.ISORegion,
			City:        dto.City,
			Town:        dto.Town,
			Village:     dto.Village,
			Hamlet:      dto.Hamlet,
			Suburb:      dto.Suburb,
			County:      dto.County,
			State:       dto.State,
			Postcode:    dto.Postcode,
		},
	}
	return route.RestoreWaypoint(point, status, dto.ReachedAt)
}
