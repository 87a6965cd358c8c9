package cmd

import (
	"context"
	"fmt"
	"log/slog"

	httpin "shipping/internal/adapters/in/http"
	"shipping/internal/adapters/out/notify"
	"shipping/internal/adapters/out/postgres"
	"shipping/internal/adapters/out/redis"
	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/tracking"
	"shipping/internal/core/domain/services"
	"shipping/internal/core/ports"
	"shipping/internal/jobs"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	cache      ports.TrackingCache
	notifier   ports.Notifier
	generator  *tracking.Generator
	logger     *slog.Logger
}

// NewCompositionRoot wires the adapters. cache may be nil, which disables
// tracking view caching.
func NewCompositionRoot(config Config, gormDB *gorm.DB, cache *redis.TrackingCache, logger *slog.Logger) (CompositionRoot, error) {
	notifier, err := notify.NewNotifier(notify.NewLogTransport(logger), logger)
	if err != nil {
		return CompositionRoot{}, err
	}

	root := CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier:   notifier,
		generator:  tracking.NewGenerator(nil),
		logger:     logger,
	}
	if cache != nil {
		root.cache = cache
	}
	return root, nil
}

func (c *CompositionRoot) shipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	return commands.NewCreateShipmentCommandHandler(
		c.shipmentUoWFactory(),
		services.NewShipmentAssembler(c.generator),
		services.NewLabelComposer(c.generator, c.config.BaseURL),
		c.notifier,
		c.config.MaxMintAttempts,
		c.logger,
	)
}

func (c *CompositionRoot) CreateAdvanceRouteCommandHandler() commands.AdvanceRouteCommandHandler {
	return commands.NewAdvanceRouteCommandHandler(c.shipmentUoWFactory(), c.cache, c.logger)
}

func (c *CompositionRoot) CreateUpdateShipmentCommandHandler() commands.UpdateShipmentCommandHandler {
	return commands.NewUpdateShipmentCommandHandler(c.shipmentUoWFactory(), c.cache, c.logger)
}

func (c *CompositionRoot) CreateDeleteShipmentCommandHandler() commands.DeleteShipmentCommandHandler {
	return commands.NewDeleteShipmentCommandHandler(c.shipmentUoWFactory(), c.cache, c.logger)
}

func (c *CompositionRoot) CreateProgressRoutesCommandHandler() commands.ProgressRoutesCommandHandler {
	return commands.NewProgressRoutesCommandHandler(c.shipmentUoWFactory(), c.cache, c.logger)
}

func (c *CompositionRoot) CreateGetShipmentQueryHandler() queries.GetShipmentQueryHandler {
	return queries.NewGetShipmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOwnerShipmentsQueryHandler() queries.ListOwnerShipmentsQueryHandler {
	return queries.NewListOwnerShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateTrackShipmentQueryHandler() queries.TrackShipmentQueryHandler {
	return queries.NewTrackShipmentQueryHandler(c.gormDB, c.cache, c.config.TrackingTTL, c.logger)
}

// CreateWebServer builds the echo instance serving the API.
func (c *CompositionRoot) CreateWebServer() (*echo.Echo, error) {
	create := c.CreateCreateShipmentCommandHandler()
	update := c.CreateUpdateShipmentCommandHandler()
	advance := c.CreateAdvanceRouteCommandHandler()
	remove := c.CreateDeleteShipmentCommandHandler()

	server := httpin.NewServer(httpin.Handlers{
		CreateShipment:     &create,
		UpdateShipment:     &update,
		AdvanceRoute:       &advance,
		DeleteShipment:     &remove,
		GetShipment:        c.CreateGetShipmentQueryHandler(),
		ListOwnerShipments: c.CreateListOwnerShipmentsQueryHandler(),
		TrackShipment:      c.CreateTrackShipmentQueryHandler(),
	}, c.logger)

	return httpin.NewRouter(server, c.healthChecks())
}

// CreateJobManager registers the background jobs enabled in the config.
func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	manager := jobs.NewJobManager(c.logger)
	if !c.config.ProgressEnabled {
		return manager, nil
	}

	progress := c.CreateProgressRoutesCommandHandler()
	job, err := jobs.NewRouteProgressJob(
		&progress,
		c.config.ProgressSchedule,
		c.config.ProgressDwell,
		c.config.ProgressBatch,
		c.logger,
	)
	if err != nil {
		return nil, fmt.Errorf("invalid route progress job settings: %w", err)
	}
	manager.Register("route progress", job)
	return manager, nil
}

func (c *CompositionRoot) healthChecks() map[string]httpin.HealthCheck {
	checks := map[string]httpin.HealthCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := c.gormDB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if pinger, ok := c.cache.(interface{ Ping(context.Context) error }); ok {
		checks["cache"] = pinger.Ping
	}
	return checks
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}
