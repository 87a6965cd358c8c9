// Package jobs provides scheduled background tasks for the shipping service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// RouteProgressJob - advances every shipment that has dwelled at its current
// stop for longer than the configured dwell by one stop, never past the
// destination. It simulates parcels travelling for demo environments and is
// disabled by default.
//
// # Usage
//
//	progress, err := jobs.NewRouteProgressJob(&handler, "0 */5 * * * *", 6*time.Hour, 100, logger)
//	if err != nil {
//		return err
//	}
//
//	jobManager := jobs.NewJobManager(logger)
//	jobManager.Register("route progress", progress)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - A failed run is logged and retried on the next tick
// - Shipments changed concurrently are skipped by the command handler
// - Failed job starts stop any already running jobs
package jobs
