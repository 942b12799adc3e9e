package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"youthorg-backend-trusted/internal/jobs"
	"youthorg-backend-trusted/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler creates a new scheduler with the provided job runner.
// A schedule that does not parse is a configuration error.
func NewScheduler(jobRunner *jobs.JobRunner) (*Scheduler, error) {
	// Create cron with UTC timezone and seconds precision
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	if err := s.registerJobs(); err != nil {
		return nil, err
	}
	return s, nil
}

// registerJobs registers all scheduled jobs with the cron scheduler
func (s *Scheduler) registerJobs() error {
	cfg := s.jobs.Config().Scheduler

	// Nightly invariant audit
	if _, err := s.cron.AddFunc(cfg.AuditLedger, s.jobs.AuditLedger); err != nil {
		logger.Error("Failed to register AuditLedger job", "schedule", cfg.AuditLedger, "error", err)
		return fmt.Errorf("register AuditLedger: %w", err)
	}

	// Fund balances
	if _, err := s.cron.AddFunc(cfg.FundSnapshot, s.jobs.FundSnapshot); err != nil {
		logger.Error("Failed to register FundSnapshot job", "schedule", cfg.FundSnapshot, "error", err)
		return fmt.Errorf("register FundSnapshot: %w", err)
	}

	logger.Info("All cron jobs registered successfully")
	return nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// Entries returns the number of registered jobs
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
