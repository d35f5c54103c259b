// Package postgres implements the storage.Backend interface on PostgreSQL
// with PostGIS, delegating queueing and batch writes to the GORM backend.
package postgres

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/touchline/footballer/internal/config"
	"github.com/touchline/footballer/internal/database"
	gormstorage "github.com/touchline/footballer/internal/storage/gorm"
)

// Backend is a GORM backend that owns its Postgres connection.
type Backend struct {
	*gormstorage.Backend
	cfg           config.DBConfig
	logger        *slog.Logger
	dbLog         zerolog.Logger
	flushInterval time.Duration
	db            *gorm.DB
}

// New creates a backend that connects on Init.
func New(cfg config.DBConfig, flushInterval time.Duration, logger *slog.Logger, dbLog zerolog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{
		Backend:       gormstorage.New(gormstorage.Dependencies{Logger: logger}),
		cfg:           cfg,
		logger:        logger,
		dbLog:         dbLog,
		flushInterval: flushInterval,
	}
}

// Init connects, migrates the schema and starts the GORM flusher.
func (b *Backend) Init() error {
	db, err := database.OpenPostgres(b.cfg, b.dbLog)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := database.Migrate(db, b.dbLog); err != nil {
		return fmt.Errorf("failed to setup DB: %w", err)
	}

	b.db = db
	b.Backend = gormstorage.New(gormstorage.Dependencies{
		DB:            db,
		Logger:        b.logger,
		FlushInterval: b.flushInterval,
	})
	return b.Backend.Init()
}

// Close flushes and closes the connection pool.
func (b *Backend) Close() error {
	if err := b.Backend.Close(); err != nil {
		return err
	}
	if b.db == nil {
		return nil
	}
	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
