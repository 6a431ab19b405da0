// Package scheduler runs background maintenance jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"
)

// JobFunc is the function signature for scheduled jobs.
type JobFunc func(ctx context.Context) error

// JobConfig describes one scheduled job.
type JobConfig struct {
	ID         string
	Name       string
	Cron       string // cron expression, e.g. "0 */6 * * *"
	Func       JobFunc
	RunOnStart bool // execute immediately on startup
}

type jobEntry struct {
	config  JobConfig
	job     gocron.Job
	lastRun *time.Time
	running bool
}

// Scheduler manages background scheduled jobs.
type Scheduler struct {
	gocron gocron.Scheduler
	logger zerolog.Logger
	jobs   map[string]*jobEntry
	mu     sync.RWMutex
}

// New creates a new scheduler.
func New(logger zerolog.Logger) (*Scheduler, error) {
	gs, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	return &Scheduler{
		gocron: gs,
		logger: logger.With().Str("component", "scheduler").Logger(),
		jobs:   make(map[string]*jobEntry),
	}, nil
}

// Register registers a new scheduled job.
func (s *Scheduler) Register(config JobConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[config.ID]; exists {
		return fmt.Errorf("job with ID %q already registered", config.ID)
	}

	job, err := s.gocron.NewJob(
		gocron.CronJob(config.Cron, false),
		gocron.NewTask(func() { s.execute(config.ID) }),
		gocron.WithName(config.Name),
		gocron.WithTags(config.ID),
	)
	if err != nil {
		return fmt.Errorf("failed to create job %q: %w", config.ID, err)
	}

	s.jobs[config.ID] = &jobEntry{config: config, job: job}

	s.logger.Info().
		Str("id", config.ID).
		Str("cron", config.Cron).
		Bool("runOnStart", config.RunOnStart).
		Msg("Registered job")

	return nil
}

func (s *Scheduler) execute(id string) {
	s.mu.Lock()
	entry, exists := s.jobs[id]
	if !exists || entry.running {
		s.mu.Unlock()
		return
	}
	entry.running = true
	s.mu.Unlock()

	start := time.Now()
	err := entry.config.Func(context.Background())

	s.mu.Lock()
	entry.running = false
	entry.lastRun = &start
	s.mu.Unlock()

	if err != nil {
		s.logger.Error().Err(err).Str("id", id).Dur("duration", time.Since(start)).Msg("Job failed")
		return
	}
	s.logger.Info().Str("id", id).Dur("duration", time.Since(start)).Msg("Job completed")
}

// Start starts the scheduler and fires any RunOnStart jobs.
func (s *Scheduler) Start() {
	s.logger.Info().Msg("Starting scheduler")
	s.gocron.Start()

	s.mu.RLock()
	var startup []string
	for id, entry := range s.jobs {
		if entry.config.RunOnStart {
			startup = append(startup, id)
		}
	}
	s.mu.RUnlock()

	for _, id := range startup {
		go s.execute(id)
	}
}

// Stop stops the scheduler gracefully.
func (s *Scheduler) Stop() error {
	s.logger.Info().Msg("Stopping scheduler")
	return s.gocron.Shutdown()
}

// RunNow manually triggers a job.
func (s *Scheduler) RunNow(id string) error {
	s.mu.RLock()
	_, exists := s.jobs[id]
	s.mu.RUnlock()

	if !exists {
		return fmt.Errorf("job %q not found", id)
	}
	go s.execute(id)
	return nil
}
