package shipment_test

import (
	"testing"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/route"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/tracking"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 5, 20, 14, 0, 0, 0, time.UTC)

func testRoute(t *testing.T) route.Route {
	t.Helper()
	addr := func(city, cc, region string) route.Address {
		return route.Address{City: city, Country: city + " Country", CountryCode: cc, ISORegion: region}
	}
	r, err := route.Initialize([]route.Point{
		{Coordinates: kernel.MustLatLng(45.5017, -73.5673), Address: addr("Montreal", "ca", "CA-QC")},
		{Coordinates: kernel.MustLatLng(43.6532, -79.3832), Address: addr("Toronto", "ca", "CA-ON")},
		{Coordinates: kernel.MustLatLng(41.8781, -87.6298), Address: addr("Chicago", "us", "US-IL")},
		{Coordinates: kernel.MustLatLng(39.7392, -104.9903), Address: addr("Denver", "us", "US-CO")},
	}, now)
	require.NoError(t, err)
	return r
}

func testCode(t *testing.T) tracking.Code {
	t.Helper()
	code, err := tracking.NewCode("612345678901234", tracking.Standard)
	require.NoError(t, err)
	return code
}

func testDetails(t *testing.T) shipment.Details {
	t.Helper()
	sender, err := shipment.NewContact("Marie Curie", "marie@example.com", "+33123456789", "11 Rue Pierre et Marie Curie\nParis")
	require.NoError(t, err)
	recipient, err := shipment.NewContact("Niels Bohr", "niels@example.dk", "+4512345678", "Blegdamsvej 17, Copenhagen")
	require.NoError(t, err)
	parcel, err := shipment.NewParcel(shipment.Box, 3.5, shipment.Dimensions{Length: 30, Width: 20, Height: 10}, "")
	require.NoError(t, err)
	pickup, err := shipment.NewPickup(now.AddDate(0, 0, 1), shipment.Morning)
	require.NoError(t, err)

	return shipment.Details{
		Language:  shipment.French,
		Sender:    sender,
		Recipient: recipient,
		Parcel:    parcel,
		Pickup:    pickup,
	}
}

func testShipment(t *testing.T) *shipment.Shipment {
	t.Helper()
	s, err := shipment.NewShipment(testCode(t), kernel.NewUUID(), testDetails(t), testRoute(t), now)
	require.NoError(t, err)
	return s
}
