package jobs

import (
	"context"
	"log/slog"

	"transit/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// RouteRepairJob periodically re-plans routes of active orders against the
// current hub line, so orders stranded on a deactivated hub keep moving.
type RouteRepairJob struct {
	handler commands.RepairRoutesCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewRouteRepairJob creates a job running the route repair sweep.
func NewRouteRepairJob(handler commands.RepairRoutesCommandHandler, logger *slog.Logger) *RouteRepairJob {
	return &RouteRepairJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "route_repair_job"),
	}
}

// Start schedules the repair sweep every five minutes.
func (j *RouteRepairJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewRepairRoutesCommand()

		repaired, err := j.handler.Handle(ctx, cmd)
		if err != nil {
			j.logger.ErrorContext(ctx, "Route repair job failed", "error", err)
			return
		}
		if repaired > 0 {
			j.logger.InfoContext(ctx, "Route repair job re-routed orders", "repaired", repaired)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Route repair job started (running every five minutes)")
	return nil
}

// Stop stops the route repair job.
func (j *RouteRepairJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Route repair job stopped")
}
