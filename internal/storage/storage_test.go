package storage_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/touchline/footballer/internal/config"
	"github.com/touchline/footballer/internal/storage"
	gormstorage "github.com/touchline/footballer/internal/storage/gorm"
	"github.com/touchline/footballer/internal/storage/memory"
	"github.com/touchline/footballer/internal/storage/postgres"
	sqlitestorage "github.com/touchline/footballer/internal/storage/sqlite"
)

var (
	_ storage.Backend  = (*memory.Backend)(nil)
	_ storage.Backend  = (*gormstorage.Backend)(nil)
	_ storage.Backend  = (*sqlitestorage.Backend)(nil)
	_ storage.Backend  = (*postgres.Backend)(nil)
	_ storage.Exporter = (*memory.Backend)(nil)
	_ storage.Exporter = (*sqlitestorage.Backend)(nil)
)

func TestNewBackend(t *testing.T) {
	opts := storage.Options{DBLog: zerolog.Nop()}

	b, err := storage.NewBackend(config.StorageConfig{Type: "memory"}, opts)
	require.NoError(t, err)
	assert.IsType(t, &memory.Backend{}, b)

	b, err = storage.NewBackend(config.StorageConfig{}, opts)
	require.NoError(t, err)
	assert.IsType(t, &memory.Backend{}, b, "memory is the default")

	b, err = storage.NewBackend(config.StorageConfig{Type: "postgres"}, opts)
	require.NoError(t, err)
	assert.IsType(t, &postgres.Backend{}, b)

	b, err = storage.NewBackend(config.StorageConfig{Type: "sqlite"}, opts)
	require.NoError(t, err)
	assert.IsType(t, &sqlitestorage.Backend{}, b)
	require.NoError(t, b.Init())
	require.NoError(t, b.Close())

	_, err = storage.NewBackend(config.StorageConfig{Type: "redis"}, opts)
	assert.EqualError(t, err, "unknown storage type: redis")
}
