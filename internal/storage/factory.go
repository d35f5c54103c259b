package storage

import (
	"fmt"
	"log/slog"

	"github.com/rs/zerolog"

	"github.com/touchline/footballer/internal/config"
	"github.com/touchline/footballer/internal/geo"
	"github.com/touchline/footballer/internal/storage/memory"
	"github.com/touchline/footballer/internal/storage/postgres"
	sqlitestorage "github.com/touchline/footballer/internal/storage/sqlite"
)

// Options carries what the backends need besides their own config section.
type Options struct {
	Logger *slog.Logger
	DBLog  zerolog.Logger
	DB     config.DBConfig
	Anchor geo.Anchor
}

// NewBackend creates a storage backend based on configuration.
// The backend is not initialized.
func NewBackend(cfg config.StorageConfig, opts Options) (Backend, error) {
	switch cfg.Type {
	case "postgres":
		return postgres.New(opts.DB, cfg.FlushInterval, opts.Logger, opts.DBLog), nil
	case "sqlite":
		b, err := sqlitestorage.New(sqlitestorage.Config{
			DumpInterval:  cfg.SQLite.DumpInterval,
			DumpPath:      cfg.SQLite.DumpPath,
			FlushInterval: cfg.FlushInterval,
		}, opts.Logger, opts.DBLog)
		if err != nil {
			return nil, err
		}
		return b, nil
	case "memory", "":
		return memory.New(cfg.Memory, opts.Anchor), nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}
