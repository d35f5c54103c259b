package gormstorage

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/touchline/footballer/internal/database"
	"github.com/touchline/footballer/internal/model"
	"github.com/touchline/footballer/pkg/core"
)

var kickoff = time.Date(2026, 5, 1, 15, 0, 0, 0, time.UTC)

// newTestBackend creates a Backend over a private in-memory SQLite database.
// The flusher is effectively idle; tests call Flush themselves.
func newTestBackend(t *testing.T) *Backend {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.OpenSQLite("file:"+name+"?mode=memory&cache=shared", zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, zerolog.Nop()))

	b := New(Dependencies{DB: db, FlushInterval: time.Hour})
	require.NoError(t, b.Init())
	t.Cleanup(func() {
		b.Close()
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return b
}

func startMatch(t *testing.T, b *Backend) *core.Match {
	t.Helper()
	m := &core.Match{SessionID: "session-" + t.Name(), Name: "Cup Final", StartTime: kickoff}
	require.NoError(t, b.StartMatch(m))
	return m
}

func TestNew_Defaults(t *testing.T) {
	b := New(Dependencies{})
	assert.Equal(t, defaultFlushInterval, b.deps.FlushInterval)
	assert.Equal(t, defaultBatchSize, b.deps.BatchSize)
	assert.NotNil(t, b.log)
}

func TestInit_NoDB(t *testing.T) {
	b := New(Dependencies{})
	assert.ErrorIs(t, b.Init(), ErrNoDB)
	assert.ErrorIs(t, b.StartMatch(&core.Match{}), ErrNoDB)
	assert.NoError(t, b.Close())
}

func TestRecording_RequiresMatch(t *testing.T) {
	b := newTestBackend(t)

	assert.ErrorIs(t, b.AddPlayer(&core.PlayerInfo{PlayerID: 1}), ErrNoMatch)
	assert.ErrorIs(t, b.RecordPlayerState(&core.PlayerState{}), ErrNoMatch)
	assert.ErrorIs(t, b.RecordPassIntent(&core.PassIntent{}), ErrNoMatch)
	assert.ErrorIs(t, b.RecordMovementSwap(&core.MovementSwap{}), ErrNoMatch)
	assert.ErrorIs(t, b.RecordLunge(&core.LungeEvent{}), ErrNoMatch)
	assert.ErrorIs(t, b.RecordContact(&core.ContactEvent{}), ErrNoMatch)
	assert.ErrorIs(t, b.EndMatch(&core.Match{}), ErrNoMatch)
}

func TestStartMatch_AssignsID(t *testing.T) {
	b := newTestBackend(t)

	m := startMatch(t, b)
	assert.NotZero(t, m.ID)

	stored, err := b.Match(m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cup Final", stored.Name)
	assert.True(t, stored.EndTime.IsZero())
}

func TestRecord_QueuesUntilFlush(t *testing.T) {
	b := newTestBackend(t)
	m := startMatch(t, b)

	p := &core.PlayerInfo{PlayerID: 7, Name: "Ada", Team: 1, JoinTime: kickoff}
	require.NoError(t, b.AddPlayer(p))
	assert.Equal(t, m.ID, p.MatchID)

	s := &core.PlayerState{Tick: 1, Time: kickoff, Snapshot: core.Snapshot{Player: 7, Team: 1, Position: core.Position{X: 5, Y: -2}, AngleFacing: 90, Speed: 5, Movement: "run", Action: "pass"}}
	require.NoError(t, b.RecordPlayerState(s))
	require.NoError(t, b.RecordPassIntent(&core.PassIntent{Player: 7, Angle: 90}))
	require.NoError(t, b.RecordMovementSwap(&core.MovementSwap{Player: 7, From: "run", To: "tackle"}))
	require.NoError(t, b.RecordLunge(&core.LungeEvent{Player: 7, To: core.Position{X: 10}}))
	require.NoError(t, b.RecordContact(&core.ContactEvent{Tackler: 7, Target: 8, At: core.Position{X: 10}, Distance: 0.5, Tick: 2}))

	assert.Equal(t, 6, b.Pending())

	states, err := b.PlayerStates(m.ID)
	require.NoError(t, err)
	assert.Empty(t, states, "nothing is written before a flush")

	require.NoError(t, b.Flush())
	assert.Zero(t, b.Pending())

	states, err = b.PlayerStates(m.ID)
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.Equal(t, core.Position{X: 5, Y: -2}, states[0].Snapshot.Position)
	assert.Equal(t, "run", states[0].Snapshot.Movement)
	assert.Equal(t, m.ID, states[0].MatchID)

	contacts, err := b.Contacts(m.ID)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, core.PlayerID(8), contacts[0].Target)
	assert.Equal(t, core.Position{X: 10}, contacts[0].At)

	var passes []model.PassIntent
	require.NoError(t, b.DB().Find(&passes).Error)
	require.Len(t, passes, 1)
	assert.JSONEq(t, `{"player":7,"team":0,"angle":90,"from":{"x":0,"y":0},"time":"0001-01-01T00:00:00Z","tick":0}`, string(passes[0].Payload))
}

func TestAddPlayer_DuplicateIsSkipped(t *testing.T) {
	b := newTestBackend(t)
	m := startMatch(t, b)

	require.NoError(t, b.AddPlayer(&core.PlayerInfo{PlayerID: 7, Name: "Ada", JoinTime: kickoff}))
	require.NoError(t, b.Flush())
	require.NoError(t, b.AddPlayer(&core.PlayerInfo{PlayerID: 7, Name: "Ada again", JoinTime: kickoff}))
	require.NoError(t, b.Flush())

	var players []model.Player
	require.NoError(t, b.DB().Where("match_id = ?", m.ID).Find(&players).Error)
	require.Len(t, players, 1)
	assert.Equal(t, "Ada", players[0].Name)
}

func TestFlush_Batches(t *testing.T) {
	b := newTestBackend(t)
	b.deps.BatchSize = 3
	m := startMatch(t, b)

	for tick := uint(1); tick <= 10; tick++ {
		require.NoError(t, b.RecordPlayerState(&core.PlayerState{Tick: tick, Snapshot: core.Snapshot{Player: 1}}))
	}
	require.NoError(t, b.Flush())

	states, err := b.PlayerStates(m.ID)
	require.NoError(t, err)
	require.Len(t, states, 10)
	assert.Equal(t, uint(10), states[9].Tick)
}

func TestQueueLimit(t *testing.T) {
	b := newTestBackend(t)
	b.queues = newQueues(1)
	startMatch(t, b)

	require.NoError(t, b.RecordContact(&core.ContactEvent{Tackler: 1, Target: 2}))
	assert.ErrorIs(t, b.RecordContact(&core.ContactEvent{Tackler: 1, Target: 3}), ErrQueueFull)
}

func TestEndMatch_FlushesAndStampsEnd(t *testing.T) {
	b := newTestBackend(t)
	m := startMatch(t, b)

	require.NoError(t, b.RecordPlayerState(&core.PlayerState{Tick: 1, Snapshot: core.Snapshot{Player: 1}}))

	m.EndTime = kickoff.Add(90 * time.Minute)
	require.NoError(t, b.EndMatch(m))

	states, err := b.PlayerStates(m.ID)
	require.NoError(t, err)
	assert.Len(t, states, 1)

	stored, err := b.Match(m.ID)
	require.NoError(t, err)
	assert.True(t, m.EndTime.Equal(stored.EndTime))

	assert.ErrorIs(t, b.RecordPlayerState(&core.PlayerState{}), ErrNoMatch, "match is closed")
}

func TestFlushLoop_WritesInBackground(t *testing.T) {
	b := newTestBackend(t)
	b.Close()
	b.deps.FlushInterval = 10 * time.Millisecond
	require.NoError(t, b.Init())

	m := startMatch(t, b)
	require.NoError(t, b.RecordPlayerState(&core.PlayerState{Tick: 1, Snapshot: core.Snapshot{Player: 1}}))

	assert.Eventually(t, func() bool {
		states, err := b.PlayerStates(m.ID)
		return err == nil && len(states) == 1
	}, time.Second, 10*time.Millisecond)
}
