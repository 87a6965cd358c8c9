package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "shipping/internal/adapters/out/postgres"
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
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE shipments, shipment_stops").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.ShipmentRepository())
	suite.NotNil(uow2.ShipmentRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitPersists() {
	ctx := context.Background()
	s := newTestShipment(suite)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ShipmentRepository().Add(ctx, s))
	suite.Require().NoError(uow.Commit(ctx))
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction, "Rollback after commit is a no-op")

	loaded, err := suite.factory.Create().ShipmentRepository().Get(ctx, s.Code())
	suite.Require().NoError(err)
	suite.True(loaded.Code().IsEqual(s.Code()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscards() {
	ctx := context.Background()
	s := newTestShipment(suite)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ShipmentRepository().Add(ctx, s))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().ShipmentRepository().Get(ctx, s.Code())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_UncommittedChangesAreIsolated() {
	ctx := context.Background()
	s := newTestShipment(suite)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	defer func() {
		_ = uow.Rollback(ctx)
	}()
	suite.Require().NoError(uow.ShipmentRepository().Add(ctx, s))

	_, err := suite.factory.Create().ShipmentRepository().Get(ctx, s.Code())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, err = uow.ShipmentRepository().Get(ctx, s.Code())
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_DuplicateAbortsOnlyItsTransaction() {
	ctx := context.Background()
	s := newTestShipment(suite)

	first := suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	suite.Require().NoError(first.ShipmentRepository().Add(ctx, s))
	suite.Require().NoError(first.Commit(ctx))

	dup, err := shipment.NewShipment(s.Code(), kernel.NewUUID(), s.Details(), s.Route(), time.Now().UTC())
	suite.Require().NoError(err)

	second := suite.factory.Create()
	suite.Require().NoError(second.Begin(ctx))
	suite.Require().ErrorIs(second.ShipmentRepository().Add(ctx, dup), ports.ErrDuplicateCode)
	suite.Require().NoError(second.Rollback(ctx))

	other := newTestShipment(suite)
	third := suite.factory.Create()
	suite.Require().NoError(third.Begin(ctx))
	suite.Require().NoError(third.ShipmentRepository().Add(ctx, other))
	suite.Require().NoError(third.Commit(ctx))
}

func newTestShipment(suite *UnitOfWorkIntegrationTestSuite) *shipment.Shipment {
	now := time.Now().UTC()
	code, err := tracking.Generate(tracking.Standard)
	suite.Require().NoError(err)

	addr := func(city, cc, region string) route.Address {
		return route.Address{City: city, Country: "Japan", CountryCode: cc, ISORegion: region}
	}
	r, err := route.Initialize([]route.Point{
		{Coordinates: kernel.MustLatLng(35.6762, 139.6503), Address: addr("Tokyo", "jp", "JP-13")},
		{Coordinates: kernel.MustLatLng(35.1815, 136.9066), Address: addr("Nagoya", "jp", "JP-23")},
		{Coordinates: kernel.MustLatLng(34.6937, 135.5023), Address: addr("Osaka", "jp", "JP-27")},
		{Coordinates: kernel.MustLatLng(33.5904, 130.4017), Address: addr("Fukuoka", "jp", "JP-40")},
	}, now)
	suite.Require().NoError(err)

	sender, err := shipment.NewContact("Haruki Sato", "haruki@example.jp", "+81312345678", "1-1 Chiyoda, Tokyo")
	suite.Require().NoError(err)
	recipient, err := shipment.NewContact("Yui Tanaka", "yui@example.jp", "+81921234567", "2-2 Hakata, Fukuoka")
	suite.Require().NoError(err)
	parcel, err := shipment.NewParcel(shipment.Box, 3, shipment.Dimensions{Length: 40, Width: 30, Height: 20}, "")
	suite.Require().NoError(err)
	pickup, err := shipment.NewPickup(now, shipment.Morning)
	suite.Require().NoError(err)

	s, err := shipment.NewShipment(code, kernel.NewUUID(), shipment.Details{
		Language:  shipment.English,
		Sender:    sender,
		Recipient: recipient,
		Parcel:    parcel,
		Pickup:    pickup,
	}, r, now)
	suite.Require().NoError(err)
	return s
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
