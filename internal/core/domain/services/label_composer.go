package services

import (
	"time"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/tracking"
)

// LabelComposer builds label records for shipments. Rendering them into images
// is left to whoever receives the record.
type LabelComposer struct {
	generator *tracking.Generator
	baseURL   string
}

// NewLabelComposer links labels to baseURL. A nil generator falls back to crypto/rand.
func NewLabelComposer(generator *tracking.Generator, baseURL string) LabelComposer {
	if generator == nil {
		generator = tracking.NewGenerator(nil)
	}
	return LabelComposer{generator: generator, baseURL: baseURL}
}

// Compose fills the label from the shipment: zone between origin and
// destination, the origin ISO region, the owner as account and the parcel weight.
func (c LabelComposer) Compose(s *shipment.Shipment, shipDate time.Time) (tracking.Label, error) {
	if err := s.Validate(); err != nil {
		return tracking.Label{}, err
	}

	r := s.Route()
	return c.generator.NewLabel(tracking.LabelInput{
		Code:         s.Code(),
		ShipDate:     shipDate,
		OriginRegion: r.Origin().Address().ISORegion,
		AccountID:    s.Owner().String(),
		Weight:       s.Parcel().Weight(),
		Origin:       r.Origin().Coordinates(),
		Destination:  r.Destination().Coordinates(),
		Sender:       tracking.LabelParty{Name: s.Sender().Name(), Address: s.Sender().Address()},
		Recipient:    tracking.LabelParty{Name: s.Recipient().Name(), Address: s.Recipient().Address()},
		BaseURL:      c.baseURL,
	})
}
