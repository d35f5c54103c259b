// Package sqlitestorage implements the storage.Backend interface on an
// in-memory SQLite database that is dumped to disk with VACUUM INTO.
// Recording itself is delegated to the GORM backend.
package sqlitestorage

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/touchline/footballer/internal/database"
	gormstorage "github.com/touchline/footballer/internal/storage/gorm"
	"github.com/touchline/footballer/pkg/core"
)

// Config holds configuration for the SQLite storage backend.
type Config struct {
	DSN           string        // empty for the shared in-memory database
	DumpInterval  time.Duration // 0 disables periodic dumps
	DumpPath      string        // target of VACUUM INTO
	FlushInterval time.Duration
}

// Backend wraps the GORM backend for SQLite-specific behavior.
type Backend struct {
	*gormstorage.Backend
	db       *gorm.DB
	cfg      Config
	log      *slog.Logger
	stopChan chan struct{}
	done     chan struct{}
}

// New opens and migrates the SQLite database.
func New(cfg Config, logger *slog.Logger, dbLog zerolog.Logger) (*Backend, error) {
	db, err := database.OpenSQLite(cfg.DSN, dbLog)
	if err != nil {
		return nil, fmt.Errorf("failed to create SQLite DB: %w", err)
	}
	if err := database.Migrate(db, dbLog); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Backend{
		Backend: gormstorage.New(gormstorage.Dependencies{
			DB:            db,
			Logger:        logger,
			FlushInterval: cfg.FlushInterval,
		}),
		db:  db,
		cfg: cfg,
		log: logger.With("component", "sqlite"),
	}, nil
}

// Init initializes the embedded GORM backend and starts the dump goroutine.
func (b *Backend) Init() error {
	if err := b.Backend.Init(); err != nil {
		return err
	}

	if b.cfg.DumpPath != "" && b.cfg.DumpInterval > 0 {
		b.stopChan = make(chan struct{})
		b.done = make(chan struct{})
		go b.dumpLoop()
	}
	return nil
}

// EndMatch closes the match and writes a final dump.
func (b *Backend) EndMatch(m *core.Match) error {
	if err := b.Backend.EndMatch(m); err != nil {
		return err
	}
	return b.Dump()
}

// Close stops dumping, flushes the queues, writes a last dump and closes the DB.
func (b *Backend) Close() error {
	if b.stopChan != nil {
		close(b.stopChan)
		<-b.done
		b.stopChan = nil
	}

	if err := b.Backend.Close(); err != nil {
		return err
	}
	if err := b.Dump(); err != nil {
		return err
	}

	sqlDB, err := b.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Dump writes the database to the configured path. It is a no-op
// without a dump path.
func (b *Backend) Dump() error {
	if b.cfg.DumpPath == "" {
		return nil
	}
	start := time.Now()
	if err := database.DumpToDisk(b.db, b.cfg.DumpPath); err != nil {
		return err
	}
	b.log.Debug("Dumped to disk", "path", b.cfg.DumpPath, "took", time.Since(start))
	return nil
}

// ExportedFilePath returns the dump target.
func (b *Backend) ExportedFilePath() string {
	return b.cfg.DumpPath
}

// dumpLoop periodically dumps the database to disk. VACUUM INTO takes a
// point-in-time snapshot so recording does not pause.
func (b *Backend) dumpLoop() {
	defer close(b.done)
	ticker := time.NewTicker(b.cfg.DumpInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stopChan:
			return
		case <-ticker.C:
			if err := b.Dump(); err != nil {
				b.log.Error("Error dumping to disk", "error", err)
			}
		}
	}
}
