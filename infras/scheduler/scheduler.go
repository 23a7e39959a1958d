package scheduler

//go:generate go run go.uber.org/mock/mockgen -source=./scheduler.go -destination=./mocks/scheduler_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/shared/timezone"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

// Scheduler runs recurring background jobs. A job never overlaps with itself.
type Scheduler interface {
	Every(name string, interval time.Duration, runOnStart bool, task func(ctx context.Context)) error
	Start()
	Shutdown() error
}

type schedulerImpl struct {
	scheduler gocron.Scheduler
	ctx       context.Context
	cancel    context.CancelFunc
}

func New() Scheduler {
	sched, err := gocron.NewScheduler(gocron.WithLocation(timezone.GetLocation()))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create scheduler")
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &schedulerImpl{
		scheduler: sched,
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (s *schedulerImpl) Every(name string, interval time.Duration, runOnStart bool, task func(ctx context.Context)) error {
	if interval <= 0 {
		return fmt.Errorf("job %s: interval must be positive, got %s", name, interval)
	}

	options := []gocron.JobOption{
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	}

	if runOnStart {
		options = append(options, gocron.WithStartAt(gocron.WithStartImmediately()))
	}

	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			task(s.ctx)
		}),
		options...,
	)
	if err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", name, err)
	}

	log.Info().Str("job", name).Str("id", job.ID().String()).Dur("interval", interval).Msg("Job scheduled")

	return nil
}

func (s *schedulerImpl) Start() {
	s.scheduler.Start()

	log.Info().Int("jobs", len(s.scheduler.Jobs())).Msg("Scheduler started")
}

func (s *schedulerImpl) Shutdown() error {
	s.cancel()

	if err := s.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("failed to shut down scheduler: %w", err)
	}

	log.Info().Msg("Scheduler stopped")

	return nil
}
