package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"youthorg-backend-trusted/internal/config"
	"youthorg-backend-trusted/internal/jobs"
	"youthorg-backend-trusted/internal/logger"
	"youthorg-backend-trusted/internal/scheduler"
	"youthorg-backend-trusted/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit ('audit-ledger', 'fund-snapshot', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting cronjob runner...", "log_level", cfg.Log.Level, "store", cfg.Store.Type)

	// Initialize store
	backend, err := storage.Open(cfg)
	if err != nil {
		logger.Error("Failed to open store", "error", err)
		log.Fatalf("Failed to open store: %v", err)
	}
	defer backend.Close()

	// a private in-memory store is always empty here; the jobs need the server's database
	if !backend.Shared() {
		backend.Close()
		logger.Error("Cronjob requires a shared store", "store", cfg.Store.Type, "want", config.StorePostgres)
		log.Fatalf("Store type %q is private to one process; set store.type to %q", cfg.Store.Type, config.StorePostgres)
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(backend.Members, backend.Ledger, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		if !runJobOnce(jobRunner, *runOnce) {
			backend.Close()
			os.Exit(1)
		}
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler, err := scheduler.NewScheduler(jobRunner)
	if err != nil {
		log.Fatalf("Failed to schedule jobs: %v", err)
	}

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once; false means the name is unknown
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) bool {
	switch jobName {
	case "audit-ledger":
		jobRunner.AuditLedger()
	case "fund-snapshot":
		jobRunner.FundSnapshot()
	case "all":
		jobRunner.RunAll()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - audit-ledger\n")
		fmt.Printf("  - fund-snapshot\n")
		fmt.Printf("  - all\n")
		return false
	}
	return true
}
