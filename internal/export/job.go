// Package export drives the periodic CSV snapshot of the license-plate
// table. The job runs once at startup and then on a fixed interval; runs
// are single-flight: a tick that arrives while a run is still in progress
// is skipped, not queued.
package export

import (
	"context"
	"sync"
	"time"

	"github.com/jasonlvhit/gocron"
	"github.com/plategate/apiserver/internal/services"
	"github.com/rs/zerolog"
)

// Job schedules export cycles. Failures are logged and never propagate to
// the HTTP layer or crash the process.
type Job struct {
	export   *services.ExportService
	interval time.Duration
	logger   zerolog.Logger

	mu      sync.Mutex
	stopped chan bool
}

func NewJob(export *services.ExportService, interval time.Duration, logger zerolog.Logger) *Job {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Job{
		export:   export,
		interval: interval,
		logger:   logger,
	}
}

// Start runs one export immediately and schedules the recurring job.
func (j *Job) Start(ctx context.Context) {
	j.Run(ctx)

	scheduler := gocron.NewScheduler()
	seconds := uint64(j.interval / time.Second)
	if seconds == 0 {
		seconds = 1
	}
	_ = scheduler.Every(seconds).Seconds().Do(func() {
		j.Run(context.Background())
	})
	j.stopped = scheduler.Start()
	j.logger.Info().Dur("interval", j.interval).Str("object", j.export.ObjectName()).Msg("export job scheduled")
}

// Stop halts the scheduler. An in-flight run finishes on its own.
func (j *Job) Stop() {
	if j.stopped != nil {
		close(j.stopped)
		j.stopped = nil
	}
}

// Run performs one single-flight export cycle. It reports whether the run
// executed; an overlapping call returns immediately.
func (j *Job) Run(ctx context.Context) bool {
	if !j.mu.TryLock() {
		j.logger.Warn().Msg("export run still in progress, skipping")
		return false
	}
	defer j.mu.Unlock()

	started := time.Now()
	if err := j.export.Run(ctx); err != nil {
		j.logger.Error().Err(err).Msg("export run failed")
		return true
	}
	j.logger.Info().Dur("took", time.Since(started)).Msg("export uploaded")
	return true
}
