// Package gormstorage implements the storage.Backend interface on GORM.
// Records are converted on arrival, buffered in per-table queues and
// written in batches by a background flusher.
package gormstorage

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/touchline/footballer/internal/model"
	"github.com/touchline/footballer/internal/model/convert"
	"github.com/touchline/footballer/internal/queue"
	"github.com/touchline/footballer/pkg/core"
)

const (
	defaultFlushInterval = 2 * time.Second
	defaultBatchSize     = 2000
)

var (
	ErrNoDB      = errors.New("gorm backend has no database")
	ErrNoMatch   = errors.New("no match in progress")
	ErrQueueFull = errors.New("write queue full")
)

// Dependencies holds all dependencies for the GORM storage backend.
// DB must already be migrated.
type Dependencies struct {
	DB            *gorm.DB
	Logger        *slog.Logger
	FlushInterval time.Duration
	BatchSize     int
	QueueLimit    int // per table, 0 = unbounded
}

// queues holds all the write queues for batch DB insertion.
type queues struct {
	Players       *queue.Queue[model.Player]
	PlayerStates  *queue.Queue[model.PlayerState]
	PassIntents   *queue.Queue[model.PassIntent]
	MovementSwaps *queue.Queue[model.MovementSwap]
	Lunges        *queue.Queue[model.Lunge]
	Contacts      *queue.Queue[model.Contact]
}

func newQueues(limit int) *queues {
	return &queues{
		Players:       queue.New[model.Player](limit),
		PlayerStates:  queue.New[model.PlayerState](limit),
		PassIntents:   queue.New[model.PassIntent](limit),
		MovementSwaps: queue.New[model.MovementSwap](limit),
		Lunges:        queue.New[model.Lunge](limit),
		Contacts:      queue.New[model.Contact](limit),
	}
}

// Backend implements storage.Backend using GORM with queue-based batch writes.
type Backend struct {
	deps    Dependencies
	log     *slog.Logger
	queues  *queues
	matchID atomic.Uint64

	flushMu  sync.Mutex
	stopChan chan struct{}
	done     chan struct{}
}

// New creates a new GORM storage backend.
func New(deps Dependencies) *Backend {
	if deps.FlushInterval <= 0 {
		deps.FlushInterval = defaultFlushInterval
	}
	if deps.BatchSize <= 0 {
		deps.BatchSize = defaultBatchSize
	}
	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Backend{
		deps:   deps,
		log:    log.With("component", "gormstorage"),
		queues: newQueues(deps.QueueLimit),
	}
}

// Init starts the background flusher.
func (b *Backend) Init() error {
	if b.deps.DB == nil {
		return ErrNoDB
	}
	b.stopChan = make(chan struct{})
	b.done = make(chan struct{})
	go b.flushLoop()
	return nil
}

// Close stops the flusher and writes whatever is still queued.
func (b *Backend) Close() error {
	if b.stopChan != nil {
		close(b.stopChan)
		<-b.done
		b.stopChan = nil
	}
	if b.deps.DB == nil {
		return nil
	}
	return b.Flush()
}

// DB exposes the underlying connection.
func (b *Backend) DB() *gorm.DB {
	return b.deps.DB
}

// StartMatch inserts the match synchronously so its ID can stamp every
// queued row.
func (b *Backend) StartMatch(m *core.Match) error {
	if b.deps.DB == nil {
		return ErrNoDB
	}

	gm := convert.CoreToMatch(*m)
	if err := b.deps.DB.Create(&gm).Error; err != nil {
		return fmt.Errorf("failed to insert new match: %w", err)
	}

	m.ID = gm.ID
	b.matchID.Store(uint64(gm.ID))
	b.log.Info("Match started", "match", gm.ID, "session", gm.SessionID)
	return nil
}

// EndMatch flushes pending rows and stamps the end time.
func (b *Backend) EndMatch(m *core.Match) error {
	id := uint(b.matchID.Load())
	if id == 0 {
		return ErrNoMatch
	}

	flushErr := b.Flush()

	if err := b.deps.DB.Model(&model.Match{}).
		Where("id = ?", id).
		Update("end_time", m.EndTime).Error; err != nil {
		return errors.Join(flushErr, fmt.Errorf("failed to close match %d: %w", id, err))
	}

	b.matchID.Store(0)
	return flushErr
}

func (b *Backend) currentMatch() (uint, error) {
	id := uint(b.matchID.Load())
	if id == 0 {
		return 0, ErrNoMatch
	}
	return id, nil
}

func push[T any](q *queue.Queue[T], item T) error {
	if q.Push(item) == 0 {
		return ErrQueueFull
	}
	return nil
}

// AddPlayer converts a player and pushes it to the write queue.
func (b *Backend) AddPlayer(p *core.PlayerInfo) error {
	matchID, err := b.currentMatch()
	if err != nil {
		return err
	}
	p.MatchID = matchID
	return push(b.queues.Players, convert.CoreToPlayer(*p))
}

// RecordPlayerState converts and queues a player state.
func (b *Backend) RecordPlayerState(s *core.PlayerState) error {
	matchID, err := b.currentMatch()
	if err != nil {
		return err
	}
	s.MatchID = matchID
	return push(b.queues.PlayerStates, convert.CoreToPlayerState(*s))
}

// RecordPassIntent converts and queues a pass intent.
func (b *Backend) RecordPassIntent(e *core.PassIntent) error {
	matchID, err := b.currentMatch()
	if err != nil {
		return err
	}
	row := convert.CoreToPassIntent(*e)
	row.MatchID = matchID
	return push(b.queues.PassIntents, row)
}

// RecordMovementSwap converts and queues a movement swap.
func (b *Backend) RecordMovementSwap(e *core.MovementSwap) error {
	matchID, err := b.currentMatch()
	if err != nil {
		return err
	}
	row := convert.CoreToMovementSwap(*e)
	row.MatchID = matchID
	return push(b.queues.MovementSwaps, row)
}

// RecordLunge converts and queues a lunge.
func (b *Backend) RecordLunge(e *core.LungeEvent) error {
	matchID, err := b.currentMatch()
	if err != nil {
		return err
	}
	row := convert.CoreToLunge(*e)
	row.MatchID = matchID
	return push(b.queues.Lunges, row)
}

// RecordContact converts and queues a contact.
func (b *Backend) RecordContact(e *core.ContactEvent) error {
	matchID, err := b.currentMatch()
	if err != nil {
		return err
	}
	row := convert.CoreToContact(*e)
	row.MatchID = matchID
	return push(b.queues.Contacts, row)
}

// Pending returns the number of rows waiting to be written.
func (b *Backend) Pending() int {
	q := b.queues
	return q.Players.Len() + q.PlayerStates.Len() + q.PassIntents.Len() +
		q.MovementSwaps.Len() + q.Lunges.Len() + q.Contacts.Len()
}

// Flush writes every queue to the database. Failed batches are requeued.
func (b *Backend) Flush() error {
	b.flushMu.Lock()
	defer b.flushMu.Unlock()

	db := b.deps.DB
	size := b.deps.BatchSize
	q := b.queues

	// players first so states never outrun their owner
	return errors.Join(
		writeQueue(db, q.Players, "players", size),
		writeQueue(db, q.PlayerStates, "player states", size),
		writeQueue(db, q.PassIntents, "pass intents", size),
		writeQueue(db, q.MovementSwaps, "movement swaps", size),
		writeQueue(db, q.Lunges, "lunges", size),
		writeQueue(db, q.Contacts, "contacts", size),
	)
}

// writeQueue drains q in batches, each written in its own transaction.
// A failed batch goes back to the head of the queue and stops the drain.
// Rows that already exist are skipped so a replayed batch cannot wedge the queue.
func writeQueue[T any](db *gorm.DB, q *queue.Queue[T], name string, batchSize int) error {
	for {
		items := q.Drain(batchSize)
		if len(items) == 0 {
			return nil
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&items).Error
		})
		if err != nil {
			q.Requeue(items...)
			return fmt.Errorf("writing %d %s: %w", len(items), name, err)
		}
	}
}

// flushLoop periodically drains queues into the DB until Close.
func (b *Backend) flushLoop() {
	defer close(b.done)

	ticker := time.NewTicker(b.deps.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stopChan:
			return
		case <-ticker.C:
			if err := b.Flush(); err != nil {
				b.log.Error("Flush failed", "error", err, "pending", b.Pending())
			}
		}
	}
}

// PlayerStates reads back the states recorded for a match, ordered by tick.
func (b *Backend) PlayerStates(matchID uint) ([]core.PlayerState, error) {
	var rows []model.PlayerState
	if err := b.deps.DB.Where("match_id = ?", matchID).Order("tick, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("reading player states: %w", err)
	}
	out := make([]core.PlayerState, len(rows))
	for i, r := range rows {
		out[i] = convert.PlayerStateToCore(r)
	}
	return out, nil
}

// Contacts reads back the contacts recorded for a match, ordered by tick.
func (b *Backend) Contacts(matchID uint) ([]core.ContactEvent, error) {
	var rows []model.Contact
	if err := b.deps.DB.Where("match_id = ?", matchID).Order("tick, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("reading contacts: %w", err)
	}
	out := make([]core.ContactEvent, len(rows))
	for i, r := range rows {
		out[i] = convert.ContactToCore(r)
	}
	return out, nil
}

// Match reads back a match row.
func (b *Backend) Match(id uint) (core.Match, error) {
	var m model.Match
	if err := b.deps.DB.First(&m, id).Error; err != nil {
		return core.Match{}, fmt.Errorf("reading match %d: %w", id, err)
	}
	return convert.MatchToCore(m), nil
}
