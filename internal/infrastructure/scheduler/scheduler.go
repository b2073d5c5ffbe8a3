package scheduler

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/saradorri/tournamenthub/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Scheduler runs deferred and periodic background jobs
type Scheduler struct {
	s      gocron.Scheduler
	clock  clockwork.Clock
	logger *logger.Logger
}

// New creates a scheduler on clock. Jobs start running after Start.
func New(clock clockwork.Clock, log *logger.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler(
		gocron.WithClock(clock),
		gocron.WithLogger(log.Named("scheduler").Leveled()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	return &Scheduler{s: s, clock: clock, logger: log}, nil
}

// After runs fn once, delay from now. It is never retried.
func (s *Scheduler) After(name string, delay time.Duration, fn func()) error {
	_, err := s.s.NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(s.clock.Now().Add(delay))),
		gocron.NewTask(fn),
		gocron.WithName(name),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", name, err)
	}
	s.logger.Debug("Deferred job scheduled", zap.String("job", name), zap.Duration("delay", delay))
	return nil
}

// Every runs fn on a fixed interval without overlapping runs
func (s *Scheduler) Every(name string, interval time.Duration, fn func()) error {
	_, err := s.s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(fn),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", name, err)
	}
	return nil
}

// Start begins running jobs
func (s *Scheduler) Start() {
	s.s.Start()
	s.logger.Info("Scheduler started", zap.Int("jobs", len(s.s.Jobs())))
}

// Shutdown stops the scheduler and drops pending jobs
func (s *Scheduler) Shutdown() error {
	return s.s.Shutdown()
}
