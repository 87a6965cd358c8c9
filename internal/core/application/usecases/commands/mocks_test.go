package commands_test

import (
	"context"
	"testing"
	"time"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/route"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/tracking"
	"shipping/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, code tracking.Code) (*shipment.Shipment, error) {
	args := m.Called(ctx, code)
	if s, ok := args.Get(0).(*shipment.Shipment); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockShipmentRepository) Delete(ctx context.Context, code tracking.Code) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockShipmentRepository) ListDueForProgress(
	ctx context.Context, reachedBefore time.Time, limit int,
) ([]tracking.Code, error) {
	args := m.Called(ctx, reachedBefore, limit)
	if codes, ok := args.Get(0).([]tracking.Code); ok {
		return codes, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockShipmentUoW struct{ mock.Mock }

func (m *MockShipmentUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) NotifyShipmentCreated(ctx context.Context, notice ports.ShipmentNotice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}

type MockTrackingCache struct{ mock.Mock }

func (m *MockTrackingCache) Get(ctx context.Context, code string) ([]byte, error) {
	args := m.Called(ctx, code)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func (m *MockTrackingCache) Set(ctx context.Context, code string, view []byte, ttl time.Duration) error {
	args := m.Called(ctx, code, view, ttl)
	return args.Error(0)
}

func (m *MockTrackingCache) Invalidate(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func testPoints() []route.Point {
	addr := func(city, cc, region string) route.Address {
		return route.Address{City: city, Country: "Country " + cc, CountryCode: cc, ISORegion: region}
	}
	return []route.Point{
		{Coordinates: kernel.MustLatLng(19.4326, -99.1332), Address: addr("Mexico City", "mx", "MX-CMX")},
		{Coordinates: kernel.MustLatLng(29.4241, -98.4936), Address: addr("San Antonio", "us", "US-TX")},
		{Coordinates: kernel.MustLatLng(32.7767, -96.7970), Address: addr("Dallas", "us", "US-TX")},
		{Coordinates: kernel.MustLatLng(35.4676, -97.5164), Address: addr("Oklahoma City", "us", "US-OK")},
	}
}

func testDetails(t *testing.T) shipment.Details {
	t.Helper()
	sender, err := shipment.NewContact("Frida Kahlo", "frida@example.mx", "+525512345678", "Londres 247, Coyoacan")
	require.NoError(t, err)
	recipient, err := shipment.NewContact("Georgia O'Keeffe", "georgia@example.com", "+15055550100", "21120 US-84, Abiquiu")
	require.NoError(t, err)
	parcel, err := shipment.NewParcel(shipment.Box, 4, shipment.Dimensions{Length: 60, Width: 40, Height: 5}, "photos/parcel.jpg")
	require.NoError(t, err)
	pickup, err := shipment.NewPickup(time.Now().AddDate(0, 0, 2), shipment.Morning)
	require.NoError(t, err)
	return shipment.Details{Language: shipment.Spanish, Sender: sender, Recipient: recipient, Parcel: parcel, Pickup: pickup}
}

func testShipment(t *testing.T, owner kernel.UUID) *shipment.Shipment {
	t.Helper()
	code, err := tracking.Generate(tracking.Express)
	require.NoError(t, err)
	r, err := route.Initialize(testPoints(), time.Now().Add(-time.Hour))
	require.NoError(t, err)
	s, err := shipment.RestoreShipment(code, owner, testDetails(t), r, 3, time.Now().Add(-time.Hour), time.Now().Add(-time.Hour))
	require.NoError(t, err)
	return s
}
