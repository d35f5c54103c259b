package database

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/touchline/footballer/internal/config"
	"github.com/touchline/footballer/internal/model"
)

// memoryDSN gives each test its own named in-memory database.
func memoryDSN(t *testing.T) string {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	return "file:" + name + "?mode=memory&cache=shared"
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := OpenSQLite(memoryDSN(t), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestPostgresDSN(t *testing.T) {
	cfg := config.DBConfig{
		Host:     "db.internal",
		Port:     "5433",
		Username: "coach",
		Password: "pw",
		Database: "footballer",
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=coach password=pw dbname=footballer sslmode=disable",
		PostgresDSN(cfg))

	cfg.SSLMode = "require"
	assert.Contains(t, PostgresDSN(cfg), "sslmode=require")
	assert.Contains(t, redactedDSN(cfg), "password=***")
}

func TestMigrate_SQLite(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db, zerolog.Nop()))

	for _, m := range model.DatabaseModels {
		assert.True(t, db.Migrator().HasTable(m), "missing table for %T", m)
	}

	var info model.RecorderInfo
	require.NoError(t, db.First(&info).Error)
	assert.Equal(t, "Touchline", info.ClubName)

	require.NoError(t, Migrate(db, zerolog.Nop()), "migrate is repeatable")
	var count int64
	require.NoError(t, db.Model(&model.RecorderInfo{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDumpToDisk(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db, zerolog.Nop()))
	require.NoError(t, db.Create(&model.Match{SessionID: "s-1", Name: "Friendly", StartTime: time.Now()}).Error)

	path := filepath.Join(t.TempDir(), "dumps", "match.db")
	require.NoError(t, DumpToDisk(db, path))
	_, err := os.Stat(path)
	require.NoError(t, err)

	// dumping again replaces the file
	require.NoError(t, DumpToDisk(db, path))

	disk, err := OpenSQLite(path, zerolog.Nop())
	require.NoError(t, err)
	if sqlDB, err := disk.DB(); err == nil {
		defer sqlDB.Close()
	}
	var m model.Match
	require.NoError(t, disk.First(&m).Error)
	assert.Equal(t, "Friendly", m.Name)
}

func TestDumpToDisk_NoPath(t *testing.T) {
	assert.ErrorIs(t, DumpToDisk(nil, ""), ErrNoDumpPath)
}

func TestBackupPaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.db", "b.db", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "old.db"), 0o755))

	paths, err := BackupPaths(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.db"), filepath.Join(dir, "b.db")}, paths)

	_, err = BackupPaths(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestDumpFileName(t *testing.T) {
	at := time.Date(2026, 5, 1, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "match_20260501_150405_abc.db", DumpFileName("abc", at))
}
