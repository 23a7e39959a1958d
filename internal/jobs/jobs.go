// Package jobs wires the recurring background work of the service.
package jobs

//go:generate go run go.uber.org/mock/mockgen -source=./jobs.go -destination=./mocks/jobs_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/scheduler"
	bookingService "hotel/internal/domains/booking/service"
	"hotel/shared/constant"

	"github.com/rs/zerolog/log"
)

const releaseElapsedJob = "release-elapsed-bookings"

type Jobs interface {
	Start() error
	Stop() error
}

type jobsImpl struct {
	cfg       *config.Config
	booking   bookingService.Booking
	scheduler scheduler.Scheduler
	otel      otel.Otel
}

func New(cfg *config.Config, booking bookingService.Booking, scheduler scheduler.Scheduler, otel otel.Otel) Jobs {
	return &jobsImpl{
		cfg:       cfg,
		booking:   booking,
		scheduler: scheduler,
		otel:      otel,
	}
}

// Start schedules every job and starts the scheduler.
func (j *jobsImpl) Start() error {
	interval := time.Duration(j.cfg.Booking.ReleaseIntervalSeconds) * time.Second

	if err := j.scheduler.Every(releaseElapsedJob, interval, j.cfg.Booking.ReleaseOnStart, j.releaseElapsed); err != nil {
		return fmt.Errorf("failed to register %s: %w", releaseElapsedJob, err)
	}

	j.scheduler.Start()

	return nil
}

func (j *jobsImpl) Stop() error {
	return j.scheduler.Shutdown() //nolint:wrapcheck
}

func (j *jobsImpl) releaseElapsed(ctx context.Context) {
	ctx, scope := j.otel.NewScope(ctx, constant.OtelJobScopeName, constant.OtelJobScopeName+".ReleaseElapsed")
	defer scope.End()

	released, err := j.booking.ReleaseElapsed(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("job", releaseElapsedJob).Msg("job failed")

		return
	}

	scope.SetAttribute("released", released)
	log.Debug().Str("job", releaseElapsedJob).Int("released", released).Msg("job finished")
}
