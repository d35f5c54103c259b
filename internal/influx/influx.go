// Package influx ships player telemetry to InfluxDB, falling back to a
// gzipped line-protocol file when the server is unreachable.
package influx

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/influxdata/influxdb-client-go/v2/domain"
	"github.com/rs/zerolog"

	"github.com/touchline/footballer/internal/config"
	"github.com/touchline/footballer/pkg/core"
)

// Buckets written by the recorder.
const (
	BucketPlayerStates = "player_states"
	BucketMatchEvents  = "match_events"
)

// DefaultBucketNames are created on connect when missing.
var DefaultBucketNames = []string{BucketPlayerStates, BucketMatchEvents}

var (
	ErrDisabled      = errors.New("influx is disabled")
	ErrNotConnected  = errors.New("influx client not initialized and backup writer not available")
	ErrBadMetric     = errors.New("malformed metric")
	ErrUnknownBucket = errors.New("influx bucket not registered")
)

const retentionSeconds = 60 * 60 * 24 * 90

// Manager handles InfluxDB connections and writes.
type Manager struct {
	cfg         config.InfluxConfig
	log         zerolog.Logger
	client      influxdb2.Client
	writers     map[string]influxdb2_api.WriteAPI
	bucketNames []string
	online      bool

	mu           sync.Mutex
	backupFile   io.Closer
	backupWriter *gzip.Writer
}

// NewManager creates a new InfluxDB manager. Nothing is dialed until Connect.
func NewManager(cfg config.InfluxConfig, log zerolog.Logger) *Manager {
	return &Manager{
		cfg:         cfg,
		log:         log.With().Str("component", "influx").Logger(),
		writers:     make(map[string]influxdb2_api.WriteAPI),
		bucketNames: DefaultBucketNames,
	}
}

// URL is the server address built from the config.
func (m *Manager) URL() string {
	return fmt.Sprintf("%s://%s:%s", m.cfg.Protocol, m.cfg.Host, m.cfg.Port)
}

// Online reports whether points go to the server rather than the backup file.
func (m *Manager) Online() bool {
	return m.online
}

// Connect pings the server and prepares the org, buckets and writers.
// An unreachable server switches the manager to the backup file.
func (m *Manager) Connect(ctx context.Context) error {
	if !m.cfg.Enabled {
		return ErrDisabled
	}

	m.client = influxdb2.NewClientWithOptions(
		m.URL(),
		m.cfg.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(2500).
			SetFlushInterval(1000),
	)

	running, err := m.client.Ping(ctx)
	if err != nil || !running {
		m.log.Warn().Err(err).Str("backupPath", m.cfg.BackupPath).
			Msg("InfluxDB unreachable, writing to backup file")
		return m.OpenBackup()
	}

	if err := m.setupOrganizationAndBuckets(ctx); err != nil {
		return err
	}
	m.createWriters()
	m.online = true
	m.log.Info().Str("url", m.URL()).Msg("InfluxDB client initialized")
	return nil
}

// OpenBackup starts appending gzipped line protocol to the backup path.
func (m *Manager) OpenBackup() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.backupWriter != nil {
		return nil
	}
	if dir := filepath.Dir(m.cfg.BackupPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("error creating backup directory: %w", err)
		}
	}
	file, err := os.OpenFile(m.cfg.BackupPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("error creating backup file: %w", err)
	}
	m.backupFile = file
	m.backupWriter = gzip.NewWriter(file)
	return nil
}

func (m *Manager) setupOrganizationAndBuckets(ctx context.Context) error {
	orgs := m.client.OrganizationsAPI()

	org, err := orgs.FindOrganizationByName(ctx, m.cfg.Org)
	if err != nil {
		m.log.Info().Str("org", m.cfg.Org).Msg("Organization not found, creating")
		org, err = orgs.CreateOrganizationWithName(ctx, m.cfg.Org)
		if err != nil {
			return fmt.Errorf("creating organization %s: %w", m.cfg.Org, err)
		}
	}

	rule := domain.RetentionRuleTypeExpire
	for _, bucket := range m.bucketNames {
		if _, err := m.client.BucketsAPI().FindBucketByName(ctx, bucket); err == nil {
			continue
		}
		m.log.Info().Str("bucket", bucket).Msg("Bucket not found, creating")
		_, err = m.client.BucketsAPI().CreateBucketWithName(ctx, org, bucket, domain.RetentionRule{
			Type:         &rule,
			EverySeconds: retentionSeconds,
		})
		if err != nil {
			return fmt.Errorf("creating bucket %s: %w", bucket, err)
		}
	}
	return nil
}

func (m *Manager) createWriters() {
	for _, bucket := range m.bucketNames {
		w := m.client.WriteAPI(m.cfg.Org, bucket)
		m.writers[bucket] = w

		go func(bucket string, errs <-chan error) {
			for err := range errs {
				m.log.Error().Err(err).Str("bucket", bucket).Msg("Error sending data to InfluxDB")
			}
		}(bucket, w.Errors())
	}
	m.log.Debug().Strs("buckets", m.bucketNames).Msg("InfluxDB writers initialized")
}

// WritePoint writes a point to InfluxDB or the backup file.
func (m *Manager) WritePoint(bucket string, point *influxdb2_write.Point) error {
	if m.online {
		w, ok := m.writers[bucket]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownBucket, bucket)
		}
		w.WritePoint(point)
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.backupWriter == nil {
		return ErrNotConnected
	}
	line := influxdb2_write.PointToLineProtocol(point, time.Nanosecond)
	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}
	if _, err := m.backupWriter.Write([]byte(line)); err != nil {
		return fmt.Errorf("error writing to InfluxDB backup file: %w", err)
	}
	return nil
}

// WritePlayerState records a snapshot as a player_state point.
func (m *Manager) WritePlayerState(s core.PlayerState) error {
	return m.WritePoint(BucketPlayerStates, PlayerStatePoint(s))
}

// WriteContact records a contact as a contact point.
func (m *Manager) WriteContact(e core.ContactEvent) error {
	return m.WritePoint(BucketMatchEvents, ContactPoint(e))
}

// PlayerStatePoint maps a snapshot to a point tagged by player and team.
func PlayerStatePoint(s core.PlayerState) *influxdb2_write.Point {
	snap := s.Snapshot
	return influxdb2.NewPoint("player_state",
		map[string]string{
			"player":   strconv.Itoa(int(snap.Player)),
			"team":     strconv.Itoa(snap.Team),
			"movement": snap.Movement,
			"action":   snap.Action,
		},
		map[string]any{
			"x":      snap.Position.X,
			"y":      snap.Position.Y,
			"facing": snap.AngleFacing,
			"speed":  snap.Speed,
			"tick":   s.Tick,
		},
		s.Time)
}

// ContactPoint maps a contact to a point tagged by both players.
func ContactPoint(e core.ContactEvent) *influxdb2_write.Point {
	return influxdb2.NewPointWithMeasurement("contact").
		AddTag("tackler", strconv.Itoa(int(e.Tackler))).
		AddTag("target", strconv.Itoa(int(e.Target))).
		AddField("x", e.At.X).
		AddField("y", e.At.Y).
		AddField("distance", e.Distance).
		AddField("tick", e.Tick).
		SetTime(e.Time)
}

// ParseMetric builds a point from driver-supplied metric fields:
//
//	bucket, measurement, tag::name::value..., field::type::name::value...
//
// where type is string, int or float.
func ParseMetric(data []string) (bucket string, point *influxdb2_write.Point, err error) {
	if len(data) < 2 {
		return "", nil, fmt.Errorf("%w: need bucket and measurement", ErrBadMetric)
	}

	bucket = data[0]
	point = influxdb2.NewPointWithMeasurement(data[1])

	for _, item := range data[2:] {
		parts := strings.Split(item, "::")
		switch {
		case parts[0] == "tag" && len(parts) >= 3:
			point.AddTag(parts[1], parts[2])
		case parts[0] == "field" && len(parts) >= 4:
			name, value := parts[2], parts[3]
			switch parts[1] {
			case "string":
				point.AddField(name, value)
			case "int":
				v, err := strconv.Atoi(value)
				if err != nil {
					return "", nil, fmt.Errorf("%w: field %s: %w", ErrBadMetric, name, err)
				}
				point.AddField(name, v)
			case "float":
				v, err := strconv.ParseFloat(value, 64)
				if err != nil {
					return "", nil, fmt.Errorf("%w: field %s: %w", ErrBadMetric, name, err)
				}
				point.AddField(name, v)
			default:
				return "", nil, fmt.Errorf("%w: field type %q", ErrBadMetric, parts[1])
			}
		default:
			return "", nil, fmt.Errorf("%w: %q", ErrBadMetric, item)
		}
	}
	return bucket, point, nil
}

// Close flushes pending writes and releases the client and backup file.
func (m *Manager) Close() error {
	for _, w := range m.writers {
		w.Flush()
	}
	if m.client != nil {
		m.client.Close()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.backupWriter == nil {
		return nil
	}
	err := errors.Join(m.backupWriter.Close(), m.backupFile.Close())
	m.backupWriter = nil
	m.backupFile = nil
	return err
}
