package jobs

import (
	"youthorg-backend-trusted/internal/config"
	"youthorg-backend-trusted/internal/logger"
	"youthorg-backend-trusted/internal/repository"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	members repository.MemberRepository
	ledger  repository.LedgerRepository
	config  *config.Config
}

// NewJobRunner creates a new job runner over the roster and ledger stores
func NewJobRunner(members repository.MemberRepository, ledger repository.LedgerRepository, cfg *config.Config) *JobRunner {
	return &JobRunner{
		members: members,
		ledger:  ledger,
		config:  cfg,
	}
}

// Config returns the configuration the runner was built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAll runs every job once (for manual execution)
func (jr *JobRunner) RunAll() {
	jr.AuditLedger()
	jr.FundSnapshot()
}
