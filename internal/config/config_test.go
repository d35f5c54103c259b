package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0644))
	return dir
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{
		"logLevel": "debug",
		"player": { "defaultSpeed": 7 },
		"db": { "host": "10.0.0.1", "port": "5433" }
	}`)

	err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", viper.GetString("logLevel"))
	assert.Equal(t, 7, viper.GetInt("player.defaultSpeed"))
	assert.Equal(t, "10.0.0.1", viper.GetString("db.host"))
	assert.Equal(t, "5433", viper.GetString("db.port"))
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(writeConfig(t, `{}`)))

	assert.Equal(t, "info", viper.GetString("logLevel"))
	assert.Equal(t, "./logs", viper.GetString("logsDir"))
	assert.Equal(t, 5, viper.GetInt("player.defaultSpeed"))
	assert.Equal(t, 1.0, viper.GetFloat64("player.contactRadius"))
	assert.Equal(t, "localhost", viper.GetString("db.host"))
	assert.Equal(t, "5432", viper.GetString("db.port"))
	assert.Equal(t, "postgres", viper.GetString("db.username"))
	assert.Equal(t, "footballer", viper.GetString("db.database"))
	assert.Equal(t, false, viper.GetBool("influx.enabled"))
	assert.Equal(t, "player_states", viper.GetString("influx.bucket"))
	assert.Equal(t, false, viper.GetBool("graylog.enabled"))
	assert.Equal(t, "localhost:12201", viper.GetString("graylog.address"))
	assert.Equal(t, "memory", viper.GetString("storage.type"))
	assert.Equal(t, "./recordings", viper.GetString("storage.memory.outputDir"))
	assert.Equal(t, true, viper.GetBool("storage.memory.compressOutput"))
	assert.Equal(t, "3m", viper.GetString("storage.sqlite.dumpInterval"))
	assert.Equal(t, false, viper.GetBool("otel.enabled"))
	assert.Equal(t, "footballer", viper.GetString("otel.serviceName"))
}

func TestLoad_MissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load("/nonexistent/path")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoadDefaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	LoadDefaults()

	assert.Equal(t, "memory", GetStorageConfig().Type)
	assert.Equal(t, 5, GetPlayerConfig().DefaultSpeed)
}

func TestGetters(t *testing.T) {
	t.Cleanup(viper.Reset)
	viper.Set("testKey", "testValue")
	viper.Set("testInt", 42)
	viper.Set("testBool", true)

	assert.Equal(t, "testValue", GetString("testKey"))
	assert.Equal(t, 42, GetInt("testInt"))
	assert.Equal(t, true, GetBool("testBool"))
}

func TestGetStorageConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(writeConfig(t, `{
		"storage": {
			"type": "sqlite",
			"memory": { "outputDir": "/tmp/out", "compressOutput": false },
			"sqlite": { "dumpInterval": "10m", "dumpPath": "/tmp/match.db" }
		}
	}`)))

	sc := GetStorageConfig()
	assert.Equal(t, "sqlite", sc.Type)
	assert.Equal(t, "/tmp/out", sc.Memory.OutputDir)
	assert.Equal(t, false, sc.Memory.CompressOutput)
	assert.Equal(t, 10*time.Minute, sc.SQLite.DumpInterval)
	assert.Equal(t, "/tmp/match.db", sc.SQLite.DumpPath)
	assert.Equal(t, "./recordings", sc.SQLite.DumpDir)
}

func TestGetOTelConfig_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(writeConfig(t, `{}`)))

	cfg := GetOTelConfig()
	assert.Equal(t, false, cfg.Enabled)
	assert.Equal(t, "footballer", cfg.ServiceName)
	assert.Equal(t, 5*time.Second, cfg.BatchTimeout)
	assert.Equal(t, "", cfg.Endpoint)
	assert.Equal(t, true, cfg.Insecure)
}

func TestGetPlayerAndPitchConfig_Override(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(writeConfig(t, `{
		"player": { "defaultSpeed": 3, "contactRadius": 0.75 },
		"pitch": { "anchorLon": -2.2913, "anchorLat": 53.4631 }
	}`)))

	pc := GetPlayerConfig()
	assert.Equal(t, 3, pc.DefaultSpeed)
	assert.Equal(t, 0.75, pc.ContactRadius)

	pitch := GetPitchConfig()
	assert.Equal(t, -2.2913, pitch.AnchorLongitude)
	assert.Equal(t, 53.4631, pitch.AnchorLatitude)
}

func TestGetDBInfluxGraylogConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(writeConfig(t, `{
		"db": { "host": "db.internal", "sslMode": "require" },
		"influx": { "enabled": true, "token": "secret", "bucket": "states" },
		"graylog": { "enabled": true, "address": "gelf:12201" }
	}`)))

	db := GetDBConfig()
	assert.Equal(t, "db.internal", db.Host)
	assert.Equal(t, "5432", db.Port)
	assert.Equal(t, "require", db.SSLMode)
	assert.Equal(t, "footballer", db.Database)

	influx := GetInfluxConfig()
	assert.True(t, influx.Enabled)
	assert.Equal(t, "secret", influx.Token)
	assert.Equal(t, "states", influx.Bucket)
	assert.Equal(t, "http", influx.Protocol)
	assert.Equal(t, "./logs/influx_backup.lp.gz", influx.BackupPath)

	gl := GetGraylogConfig()
	assert.True(t, gl.Enabled)
	assert.Equal(t, "gelf:12201", gl.Address)

	assert.Equal(t, 2*time.Second, GetStorageConfig().FlushInterval)
}
