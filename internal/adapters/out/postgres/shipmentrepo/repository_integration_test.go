package shipmentrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"shipping/internal/adapters/out/postgres/shipmentrepo"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/route"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/tracking"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ShipmentRepositoryIntegrationTestSuite runs the repository against a real
// PostgreSQL started in a container.
type ShipmentRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *shipmentrepo.GormShipmentRepository
}

func (suite *ShipmentRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&shipmentrepo.ShipmentDTO{}, &shipmentrepo.StopDTO{}))
}

func (suite *ShipmentRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE shipments, shipment_stops").Error)
	suite.repository = shipmentrepo.NewGormShipmentRepository(suite.db)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestAdd_ThenGet_RestoresAggregate() {
	ctx := context.Background()
	created := suite.newShipment(tracking.Express, time.Now().UTC().Add(-time.Hour))

	suite.Require().NoError(suite.repository.Add(ctx, created))

	loaded, err := suite.repository.Get(ctx, created.Code())
	suite.Require().NoError(err)

	suite.True(loaded.Code().IsEqual(created.Code()))
	suite.Equal(tracking.Express, loaded.Service())
	suite.True(loaded.Owner().IsEqual(created.Owner()))
	suite.Equal(shipment.InitialVersion, loaded.Version())
	suite.Equal(shipment.French, loaded.Language())
	suite.True(loaded.Sender().IsEqual(created.Sender()))
	suite.True(loaded.Recipient().IsEqual(created.Recipient()))
	suite.Equal(created.Parcel().Dimensions(), loaded.Parcel().Dimensions())
	suite.True(loaded.Pickup().IsEqual(created.Pickup()))
	suite.Equal(created.Route().Statuses(), loaded.Route().Statuses())

	for i, w := range loaded.Route().Waypoints() {
		want := created.Route().Waypoints()[i]
		suite.Equal(want.Address(), w.Address())
		suite.True(want.Coordinates().IsEqual(w.Coordinates()))
	}

	ts, ok := loaded.Route().Origin().Timestamp()
	suite.Require().True(ok)
	want, _ := created.Route().Origin().Timestamp()
	suite.WithinDuration(want, ts, time.Millisecond)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestAdd_DuplicateCode() {
	ctx := context.Background()
	first := suite.newShipment(tracking.Standard, time.Now().UTC())
	suite.Require().NoError(suite.repository.Add(ctx, first))

	second, err := shipment.NewShipment(first.Code(), kernel.NewUUID(), first.Details(), first.Route(), time.Now().UTC())
	suite.Require().NoError(err)

	err = suite.repository.Add(ctx, second)
	suite.Require().ErrorIs(err, ports.ErrDuplicateCode)
	suite.assertShipmentCount(1)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestAdd_InvalidAggregate() {
	err := suite.repository.Add(context.Background(), &shipment.Shipment{})
	suite.Require().ErrorIs(err, shipment.ErrShipmentIsNotConstructed)
	suite.assertShipmentCount(0)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestGet_Missing() {
	code, err := tracking.Generate(tracking.SameDay)
	suite.Require().NoError(err)

	_, err = suite.repository.Get(context.Background(), code)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdate_AdvancesRouteAndBumpsVersion() {
	ctx := context.Background()
	s := suite.newShipment(tracking.Express, time.Now().UTC().Add(-2*time.Hour))
	suite.Require().NoError(suite.repository.Add(ctx, s))

	suite.Require().NoError(s.AdvanceRoute(2, time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, s))

	loaded, err := suite.repository.Get(ctx, s.Code())
	suite.Require().NoError(err)
	suite.Equal(shipment.InitialVersion+1, loaded.Version())
	suite.Equal(2, loaded.Route().CurrentIndex())
	suite.Equal(
		[]route.Status{route.Completed, route.Completed, route.Current, route.Upcoming},
		loaded.Route().Statuses())

	suite.Require().NoError(loaded.AdvanceRoute(0, time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	rewound, err := suite.repository.Get(ctx, s.Code())
	suite.Require().NoError(err)
	suite.Equal(shipment.InitialVersion+2, rewound.Version())
	suite.Equal(
		[]route.Status{route.Current, route.Upcoming, route.Upcoming, route.Upcoming},
		rewound.Route().Statuses())
	_, stamped := rewound.Route().Waypoints()[2].Timestamp()
	suite.False(stamped, "upcoming stops lose their timestamp")
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdate_StaleVersion() {
	ctx := context.Background()
	s := suite.newShipment(tracking.Express, time.Now().UTC())
	suite.Require().NoError(suite.repository.Add(ctx, s))

	first, err := suite.repository.Get(ctx, s.Code())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, s.Code())
	suite.Require().NoError(err)

	suite.Require().NoError(first.AdvanceRoute(1, time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	suite.Require().NoError(second.AdvanceRoute(3, time.Now().UTC()))
	err = suite.repository.Update(ctx, second)
	suite.Require().ErrorIs(err, ports.ErrConcurrentUpdate)

	loaded, err := suite.repository.Get(ctx, s.Code())
	suite.Require().NoError(err)
	suite.Equal(1, loaded.Route().CurrentIndex())
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdate_ConcurrentWritersOnlyOneWins() {
	ctx := context.Background()
	s := suite.newShipment(tracking.Standard, time.Now().UTC())
	suite.Require().NoError(suite.repository.Add(ctx, s))

	const writers = 4
	results := make([]error, writers)
	var wg sync.WaitGroup
	for i := range writers {
		loaded, err := suite.repository.Get(ctx, s.Code())
		suite.Require().NoError(err)
		suite.Require().NoError(loaded.AdvanceRoute(1+i%3, time.Now().UTC()))

		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = suite.repository.Update(ctx, loaded)
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		suite.ErrorIs(err, ports.ErrConcurrentUpdate)
	}
	suite.Equal(1, succeeded)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestUpdate_Missing() {
	s := suite.newShipment(tracking.Express, time.Now().UTC())
	err := suite.repository.Update(context.Background(), s)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestDelete_RemovesStops() {
	ctx := context.Background()
	s := suite.newShipment(tracking.SameDay, time.Now().UTC())
	suite.Require().NoError(suite.repository.Add(ctx, s))

	suite.Require().NoError(suite.repository.Delete(ctx, s.Code()))
	suite.assertShipmentCount(0)

	var stops int64
	suite.Require().NoError(suite.db.Model(&shipmentrepo.StopDTO{}).Count(&stops).Error)
	suite.Zero(stops)

	suite.Require().ErrorIs(suite.repository.Delete(ctx, s.Code()), errs.ErrObjectNotFound)
}

func (suite *ShipmentRepositoryIntegrationTestSuite) TestListDueForProgress() {
	ctx := context.Background()
	now := time.Now().UTC()

	older := suite.newShipment(tracking.Express, now.Add(-5*time.Hour))
	old := suite.newShipment(tracking.Express, now.Add(-3*time.Hour))
	fresh := suite.newShipment(tracking.Express, now.Add(-10*time.Minute))
	delivered := suite.newShipment(tracking.Express, now.Add(-6*time.Hour))
	suite.Require().NoError(delivered.AdvanceRoute(3, now.Add(-6*time.Hour)))

	for _, s := range []*shipment.Shipment{older, old, fresh, delivered} {
		suite.Require().NoError(suite.repository.Add(ctx, s))
	}

	due, err := suite.repository.ListDueForProgress(ctx, now.Add(-time.Hour), 10)
	suite.Require().NoError(err)
	suite.Require().Len(due, 2)
	suite.True(due[0].IsEqual(older.Code()))
	suite.True(due[1].IsEqual(old.Code()))

	limited, err := suite.repository.ListDueForProgress(ctx, now.Add(-time.Hour), 1)
	suite.Require().NoError(err)
	suite.Require().Len(limited, 1)
	suite.True(limited[0].IsEqual(older.Code()))
}

func (suite *ShipmentRepositoryIntegrationTestSuite) newShipment(
	service tracking.ServiceClass, createdAt time.Time,
) *shipment.Shipment {
	code, err := tracking.Generate(service)
	suite.Require().NoError(err)

	addr := func(city, state, cc, region string) route.Address {
		return route.Address{City: city, State: state, Country: "Canada", CountryCode: cc, ISORegion: region}
	}
	r, err := route.Initialize([]route.Point{
		{Coordinates: kernel.MustLatLng(45.5019, -73.5674), Address: addr("Montreal", "Quebec", "ca", "CA-QC")},
		{Coordinates: kernel.MustLatLng(45.4215, -75.6972), Address: addr("Ottawa", "Ontario", "ca", "CA-ON")},
		{Coordinates: kernel.MustLatLng(43.6532, -79.3832), Address: addr("Toronto", "Ontario", "ca", "CA-ON")},
		{Coordinates: kernel.MustLatLng(49.2827, -123.1207), Address: addr("Vancouver", "British Columbia", "ca", "CA-BC")},
	}, createdAt)
	suite.Require().NoError(err)

	sender, err := shipment.NewContact("Jeanne Mance", "jeanne@example.ca", "+15145550101", "1 Rue Notre-Dame, Montreal")
	suite.Require().NoError(err)
	recipient, err := shipment.NewContact("Emily Carr", "emily@example.ca", "+16045550199", "750 Hornby St, Vancouver")
	suite.Require().NoError(err)
	parcel, err := shipment.NewParcel(shipment.Envelope, 1.5, shipment.Dimensions{Length: 30, Width: 20, Height: 1}, "")
	suite.Require().NoError(err)
	pickup, err := shipment.NewPickup(createdAt.AddDate(0, 0, 1), shipment.Afternoon)
	suite.Require().NoError(err)

	s, err := shipment.NewShipment(code, kernel.NewUUID(), shipment.Details{
		Language:  shipment.French,
		Sender:    sender,
		Recipient: recipient,
		Parcel:    parcel,
		Pickup:    pickup,
	}, r, createdAt)
	suite.Require().NoError(err)
	return s
}

func (suite *ShipmentRepositoryIntegrationTestSuite) assertShipmentCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&shipmentrepo.ShipmentDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func TestShipmentRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ShipmentRepositoryIntegrationTestSuite))
}
