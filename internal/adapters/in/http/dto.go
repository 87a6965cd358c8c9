package http

import (
	"errors"
	"fmt"
	"time"

	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/route"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"
)

// DateLayout is the wire format of pickup dates.
const DateLayout = "2006-01-02"

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Contact struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type Parcel struct {
	Kind     string  `json:"kind"`
	Weight   float64 `json:"weight"`
	Length   float64 `json:"length"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	ImageRef string  `json:"imageRef,omitempty"`
}

type Pickup struct {
	Date   string `json:"date"`
	Window string `json:"window"`
}

// Address is a reverse-geocoded address as produced by the map picker.
type Address struct {
	Country     string `json:"country"`
	CountryCode string `json:"countryCode"`
	ISORegion   string `json:"isoRegion"`
	City        string `json:"city,omitempty"`
	Town        string `json:"town,omitempty"`
	Village     string `json:"village,omitempty"`
	Hamlet      string `json:"hamlet,omitempty"`
	Suburb      string `json:"suburb,omitempty"`
	County      string `json:"county,omitempty"`
	State       string `json:"state,omitempty"`
	Postcode    string `json:"postcode,omitempty"`
}

type Point struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address Address `json:"address"`
}

// ShipmentForm carries the editable fields shared by create and update.
type ShipmentForm struct {
	Service   string  `json:"service"`
	Language  string  `json:"language"`
	Sender    Contact `json:"sender"`
	Recipient Contact `json:"recipient"`
	Parcel    Parcel  `json:"parcel"`
	Pickup    Pickup  `json:"pickup"`
}

type NewShipment struct {
	ShipmentForm
	Route []Point `json:"route"`
}

type ShipmentUpdate struct {
	ShipmentForm
	Version int `json:"version"`
}

type RouteUpdate struct {
	CurrentIndex *int `json:"currentIndex"`
	Version      int  `json:"version"`
}

type CreatedShipment struct {
	Code          string `json:"code"`
	FormattedCode string `json:"formattedCode"`
}

type Stop struct {
	Index       int        `json:"index"`
	Label       string     `json:"label"`
	FullLabel   string     `json:"fullLabel"`
	CountryCode string     `json:"countryCode"`
	ISORegion   string     `json:"isoRegion"`
	FlagURL     string     `json:"flagUrl"`
	Coordinates [2]float64 `json:"coordinates"`
	Status      string     `json:"status"`
	ReachedAt   *time.Time `json:"reachedAt,omitempty"`
}

type Shipment struct {
	Code          string    `json:"code"`
	FormattedCode string    `json:"formattedCode"`
	DashedCode    string    `json:"dashedCode"`
	Service       string    `json:"service"`
	Language      string    `json:"language"`
	Sender        Contact   `json:"sender"`
	Recipient     Contact   `json:"recipient"`
	Parcel        Parcel    `json:"parcel"`
	Pickup        Pickup    `json:"pickup"`
	CurrentIndex  int       `json:"currentIndex"`
	Delivered     bool      `json:"delivered"`
	Stops         []Stop    `json:"stops"`
	Version       int       `json:"version"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type ShipmentSummary struct {
	Code          string    `json:"code"`
	FormattedCode string    `json:"formattedCode"`
	Service       string    `json:"service"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	CurrentIndex  int       `json:"currentIndex"`
	CurrentStop   string    `json:"currentStop"`
	Delivered     bool      `json:"delivered"`
	Version       int       `json:"version"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// details converts the form into domain details. An empty language falls
// back to the one negotiated from Accept-Language.
func (f ShipmentForm) details(fallback shipment.Language) (shipment.Details, error) {
	lang := fallback
	var langErr error
	if f.Language != "" {
		lang, langErr = shipment.ParseLanguage(f.Language)
	}

	sender, senderErr := contactToDomain(f.Sender)
	if senderErr != nil {
		senderErr = fmt.Errorf("sender: %w", senderErr)
	}
	recipient, recipientErr := contactToDomain(f.Recipient)
	if recipientErr != nil {
		recipientErr = fmt.Errorf("recipient: %w", recipientErr)
	}
	parcel, parcelErr := parcelToDomain(f.Parcel)
	pickup, pickupErr := pickupToDomain(f.Pickup)

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

func contactToDomain(c Contact) (shipment.Contact, error) {
	return shipment.NewContact(c.Name, c.Email, c.Phone, c.Address)
}

func parcelToDomain(p Parcel) (shipment.Parcel, error) {
	kind, err := shipment.ParseKind(p.Kind)
	if err != nil {
		return shipment.Parcel{}, err
	}
	return shipment.NewParcel(kind, p.Weight, shipment.Dimensions{
		Length: p.Length,
		Width:  p.Width,
		Height: p.Height,
	}, p.ImageRef)
}

func pickupToDomain(p Pickup) (shipment.Pickup, error) {
	if p.Date == "" {
		return shipment.Pickup{}, errs.NewValueIsRequiredError("pickup date")
	}
	date, err := time.Parse(DateLayout, p.Date)
	if err != nil {
		return shipment.Pickup{}, errs.NewValueIsInvalidErrorWithCause("pickup date", err)
	}
	window, err := shipment.ParseWindow(p.Window)
	if err != nil {
		return shipment.Pickup{}, err
	}
	return shipment.NewPickup(date, window)
}

// pointsToDomain converts every point and reports all failures at once. The
// count itself is checked when the route is initialized.
func pointsToDomain(points []Point) ([]route.Point, error) {
	result := make([]route.Point, 0, len(points))
	var err error
	for i, p := range points {
		coords, cErr := kernel.NewLatLng(p.Lat, p.Lng)
		if cErr != nil {
			err = errors.Join(err, fmt.Errorf("route point %d: %w", i, cErr))
			continue
		}
		result = append(result, route.Point{
			Coordinates: coords,
			Address: route.Address{
				Country:     p.Address.Country,
				CountryCode: p.Address.CountryCode,
				ISORegion:   p.Address.ISORegion,
				City:        p.Address.City,
				Town:        p.Address.Town,
				Village:     p.Address.Village,
				Hamlet:      p.Address.Hamlet,
				Suburb:      p.Address.Suburb,
				County:      p.Address.County,
				State:       p.Address.State,
				Postcode:    p.Address.Postcode,
			},
		})
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func shipmentFromQuery(v *queries.GetShipmentQueryResponse) Shipment {
	stops := make([]Stop, len(v.Stops))
	for i, s := range v.Stops {
		stops[i] = Stop{
			Index:       s.Index,
			Label:       s.Label,
			FullLabel:   s.FullLabel,
			CountryCode: s.CountryCode,
			ISORegion:   s.ISORegion,
			FlagURL:     s.FlagURL,
			Coordinates: s.Coordinates,
			Status:      s.Status.String(),
			ReachedAt:   s.Timestamp,
		}
	}
	contact := func(c queries.ContactView) Contact {
		return Contact{Name: c.Name, Email: c.Email, Phone: c.Phone, Address: c.Address}
	}
	return Shipment{
		Code:          v.Code,
		FormattedCode: v.FormattedCode,
		DashedCode:    v.DashedCode,
		Service:       string(v.Service),
		Language:      v.Language,
		Sender:        contact(v.Sender),
		Recipient:     contact(v.Recipient),
		Parcel: Parcel{
			Kind:     v.Parcel.Kind,
			Weight:   v.Parcel.Weight,
			Length:   v.Parcel.Length,
			Width:    v.Parcel.Width,
			Height:   v.Parcel.Height,
			ImageRef: v.Parcel.ImageRef,
		},
		Pickup:       Pickup{Date: v.PickupDate.Format(DateLayout), Window: v.PickupWindow},
		CurrentIndex: v.CurrentIndex,
		Delivered:    v.Delivered,
		Stops:        stops,
		Version:      v.Version,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func summariesFromQuery(rows []queries.ShipmentSummary) []ShipmentSummary {
	result := make([]ShipmentSummary, len(rows))
	for i, r := range rows {
		result[i] = ShipmentSummary{
			Code:          r.Code,
			FormattedCode: r.FormattedCode,
			Service:       string(r.Service),
			Origin:        r.Origin,
			Destination:   r.Destination,
			CurrentIndex:  r.CurrentIndex,
			CurrentStop:   r.CurrentStop,
			Delivered:     r.Delivered,
			Version:       r.Version,
			UpdatedAt:     r.UpdatedAt,
		}
	}
	return result
}
