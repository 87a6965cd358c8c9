package jobs

import (
	"context"
	"log/slog"
	"time"

	"shipping/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultProgressSchedule runs the simulation every five minutes.
const DefaultProgressSchedule = "0 */5 * * * *"

// RouteProgressor is satisfied by commands.ProgressRoutesCommandHandler.
type RouteProgressor interface {
	Handle(ctx context.Context, cmd commands.ProgressRoutesCommand) (int, error)
}

// RouteProgressJob moves parcels along their routes on a cron schedule, one
// stop per run for every shipment that has dwelled long enough.
type RouteProgressJob struct {
	handler  RouteProgressor
	cmd      commands.ProgressRoutesCommand
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewRouteProgressJob creates the job. schedule is a six-field cron expression
// (with seconds); an empty one means DefaultProgressSchedule.
func NewRouteProgressJob(
	handler RouteProgressor,
	schedule string,
	dwell time.Duration,
	batchSize int,
	logger *slog.Logger,
) (*RouteProgressJob, error) {
	cmd, err := commands.NewProgressRoutesCommand(dwell, batchSize)
	if err != nil {
		return nil, err
	}
	if schedule == "" {
		schedule = DefaultProgressSchedule
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RouteProgressJob{
		handler:  handler,
		cmd:      cmd,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "route_progress_job"),
	}, nil
}

// Start registers the job with its schedule and starts the scheduler.
func (j *RouteProgressJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Route progress job started",
		"schedule", j.schedule,
		"dwell", j.cmd.Dwell().String(),
		"batch_size", j.cmd.BatchSize(),
	)
	return nil
}

// Run performs one tick and returns how many shipments moved.
func (j *RouteProgressJob) Run(ctx context.Context) int {
	advanced, err := j.handler.Handle(ctx, j.cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Route progress job failed", "error", err)
		return 0
	}
	if advanced > 0 {
		j.logger.InfoContext(ctx, "Shipments advanced", "count", advanced)
	}
	return advanced
}

// Stop stops the scheduler and waits for a running tick to finish.
func (j *RouteProgressJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Route progress job stopped")
}
