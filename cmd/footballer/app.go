package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/touchline/footballer/internal/config"
	"github.com/touchline/footballer/internal/database"
	"github.com/touchline/footballer/internal/dispatcher"
	"github.com/touchline/footballer/internal/geo"
	"github.com/touchline/footballer/internal/handlers"
	"github.com/touchline/footballer/internal/influx"
	"github.com/touchline/footballer/internal/logging"
	intOtel "github.com/touchline/footballer/internal/otel"
	"github.com/touchline/footballer/internal/parser"
	"github.com/touchline/footballer/internal/roster"
	"github.com/touchline/footballer/internal/storage"
)

const appName = "footballer"

// app holds everything a replay session wires together.
type app struct {
	start time.Time

	logFile     *os.File
	slogManager *logging.SlogManager
	logger      *slog.Logger
	zl          zerolog.Logger
	zlCloser    io.Closer
	otel        *intOtel.Provider

	backend storage.Backend
	influx  *influx.Manager
	disp    *dispatcher.Dispatcher
	service *handlers.Service
	parser  *parser.Parser
}

// newApp builds the session from the loaded viper configuration.
// On error everything opened so far is released.
func newApp(ctx context.Context, console io.Writer) (*app, error) {
	a := &app{start: time.Now()}
	ready := false
	defer func() {
		if !ready {
			_ = a.shutdown(context.Background())
		}
	}()

	var err error

	logsDir := viper.GetString("logsDir")
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating logs dir: %w", err)
	}
	logPath := logging.LogFilePath(logsDir, appName, a.start)
	if a.logFile, err = os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644); err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	otelCfg := config.GetOTelConfig()
	if a.otel, err = intOtel.New(ctx, intOtel.Config{
		Enabled:      otelCfg.Enabled,
		ServiceName:  otelCfg.ServiceName,
		BatchTimeout: otelCfg.BatchTimeout,
		LogWriter:    a.logFile,
		Endpoint:     otelCfg.Endpoint,
		Insecure:     otelCfg.Insecure,
	}); err != nil {
		return nil, fmt.Errorf("initializing otel: %w", err)
	}

	level := viper.GetString("logLevel")
	a.slogManager = logging.NewSlogManager()
	a.slogManager.Setup(a.logFile, level, a.otel.LoggerProvider())
	a.logger = a.slogManager.Logger()
	a.logger.Info("Logging to file", "path", logPath, "version", BuildVersion)

	graylog := config.GetGraylogConfig()
	zlCfg := logging.ZerologConfig{Level: level, Console: console, File: a.logFile, Facility: appName}
	if graylog.Enabled {
		zlCfg.GraylogAddress = graylog.Address
	}
	if a.zl, a.zlCloser, err = logging.NewZerolog(zlCfg); err != nil {
		return nil, err
	}

	storageCfg := config.GetStorageConfig()
	if storageCfg.Type == "sqlite" && storageCfg.SQLite.DumpPath == "" {
		storageCfg.SQLite.DumpPath = filepath.Join(storageCfg.SQLite.DumpDir,
			database.DumpFileName(uuid.NewString()[:8], a.start))
	}
	pitch := config.GetPitchConfig()
	backend, err := storage.NewBackend(storageCfg, storage.Options{
		Logger: a.logger,
		DBLog:  a.zl,
		DB:     config.GetDBConfig(),
		Anchor: geo.Anchor{Longitude: pitch.AnchorLongitude, Latitude: pitch.AnchorLatitude},
	})
	if err != nil {
		return nil, err
	}
	a.backend = backend
	if err := a.backend.Init(); err != nil {
		return nil, fmt.Errorf("initializing %s storage: %w", storageCfg.Type, err)
	}
	a.logger.Info("Storage backend initialized", "type", storageCfg.Type)

	if influxCfg := config.GetInfluxConfig(); influxCfg.Enabled {
		mgr := influx.NewManager(influxCfg, a.zl)
		if err := mgr.Connect(ctx); err != nil {
			a.logger.Warn("InfluxDB unavailable, telemetry disabled", "error", err)
			mgr.Close()
		} else {
			a.influx = mgr
		}
	}

	if a.disp, err = dispatcher.New(logging.NewDispatcherLogger(a.zl)); err != nil {
		return nil, err
	}

	playerCfg := config.GetPlayerConfig()
	a.parser = parser.NewParser(a.logger, playerCfg.DefaultSpeed)
	a.service = handlers.NewService(handlers.Dependencies{
		Roster:        roster.New(),
		Parser:        a.parser,
		Backend:       a.backend,
		Influx:        a.influx,
		Logger:        a.logger,
		ContactRadius: playerCfg.ContactRadius,
	}, handlers.NewMatchContext())
	a.service.RegisterHandlers(a.disp)

	ready = true
	return a, nil
}

// shutdown drains the dispatcher, closes the sinks concurrently and then
// flushes logging.
func (a *app) shutdown(ctx context.Context) error {
	var errs []error

	if a.disp != nil {
		errs = append(errs, a.disp.Close(ctx))
	}

	var g errgroup.Group
	if a.backend != nil {
		g.Go(a.backend.Close)
	}
	if a.influx != nil {
		g.Go(a.influx.Close)
	}
	errs = append(errs, g.Wait())

	if a.logger != nil {
		a.logger.Info("Shutdown complete", "uptime", time.Since(a.start))
	}
	if a.otel != nil {
		errs = append(errs, a.otel.Shutdown(ctx))
	}
	if a.zlCloser != nil {
		errs = append(errs, a.zlCloser.Close())
	}
	if a.logFile != nil {
		errs = append(errs, a.logFile.Close())
	}
	return errors.Join(errs...)
}
