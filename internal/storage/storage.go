// Package storage selects the backend holding the roster and the ledger.
package storage

import (
	"database/sql"
	"fmt"

	"youthorg-backend-trusted/internal/config"
	"youthorg-backend-trusted/internal/logger"
	"youthorg-backend-trusted/internal/repository"
	"youthorg-backend-trusted/internal/repository/memory"
	"youthorg-backend-trusted/internal/repository/postgres"

	_ "github.com/lib/pq"
)

// Backend is an opened store. Close releases the database connection, if any.
type Backend struct {
	Members repository.MemberRepository
	Ledger  repository.LedgerRepository
	db      *sql.DB
}

// Shared reports whether other processes see the same records. An in-memory
// backend lives and dies with its process.
func (b *Backend) Shared() bool {
	return b.db != nil
}

func (b *Backend) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Open builds the backend named by cfg.Store.Type.
func Open(cfg *config.Config) (*Backend, error) {
	switch cfg.Store.Type {
	case "", config.StoreMemory:
		logger.Info("Using in-memory store")
		store := memory.NewStore()
		return &Backend{Members: store.MemberRepository, Ledger: store.LedgerRepository}, nil
	case config.StorePostgres:
		logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
		db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, fmt.Errorf("ping database: %w", err)
		}
		logger.Info("Database connection established", "host", cfg.Database.Host, "database", cfg.Database.Database)
		return fromDB(db), nil
	default:
		return nil, fmt.Errorf("unsupported store type %q", cfg.Store.Type)
	}
}

func fromDB(db *sql.DB) *Backend {
	store := postgres.NewStore(db)
	return &Backend{Members: store.MemberRepository, Ledger: store.LedgerRepository, db: db}
}
