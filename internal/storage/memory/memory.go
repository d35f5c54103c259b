// Package memory records a match in memory and exports it as JSON when the match ends.
package memory

import (
	"errors"
	"sort"
	"sync"

	"github.com/touchline/footballer/internal/config"
	"github.com/touchline/footballer/internal/geo"
	"github.com/touchline/footballer/pkg/core"
)

// ErrNoMatch is returned when recording is attempted outside a match.
var ErrNoMatch = errors.New("no match in progress")

// PlayerRecord groups a player with everything recorded for it.
type PlayerRecord struct {
	Player core.PlayerInfo
	States []core.PlayerState
	Passes []core.PassIntent
	Swaps  []core.MovementSwap
	Lunges []core.LungeEvent
}

// Backend stores match data in memory and exports to JSON.
type Backend struct {
	cfg    config.MemoryConfig
	anchor geo.Anchor

	mu       sync.RWMutex
	match    *core.Match
	players  map[core.PlayerID]*PlayerRecord
	contacts []core.ContactEvent

	matchCounter   uint
	stateCounter   uint
	lastExportPath string
}

// New creates a new memory backend. anchor places the pitch on the globe
// for the lon/lat columns of the export.
func New(cfg config.MemoryConfig, anchor geo.Anchor) *Backend {
	return &Backend{
		cfg:     cfg,
		anchor:  anchor,
		players: make(map[core.PlayerID]*PlayerRecord),
	}
}

// Init initializes the backend
func (b *Backend) Init() error {
	return nil
}

// Close cleans up resources
func (b *Backend) Close() error {
	return nil
}

// StartMatch begins recording a new match and discards the previous one.
func (b *Backend) StartMatch(m *core.Match) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.matchCounter++
	m.ID = b.matchCounter
	b.match = m

	b.players = make(map[core.PlayerID]*PlayerRecord)
	b.contacts = nil
	b.stateCounter = 0
	b.lastExportPath = ""

	return nil
}

// EndMatch finalizes the match and exports it.
func (b *Backend) EndMatch(m *core.Match) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.match == nil {
		return ErrNoMatch
	}
	b.match.EndTime = m.EndTime
	return b.exportJSON()
}

// record returns the record for id, creating a bare one for players that
// were never added.
func (b *Backend) record(id core.PlayerID) *PlayerRecord {
	r, ok := b.players[id]
	if !ok {
		r = &PlayerRecord{Player: core.PlayerInfo{PlayerID: id}}
		if b.match != nil {
			r.Player.MatchID = b.match.ID
		}
		b.players[id] = r
	}
	return r
}

// AddPlayer registers a player. Adding an id twice replaces its identity
// and keeps what was already recorded.
func (b *Backend) AddPlayer(p *core.PlayerInfo) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.match == nil {
		return ErrNoMatch
	}
	p.MatchID = b.match.ID
	p.ID = uint(p.PlayerID)
	b.record(p.PlayerID).Player = *p
	return nil
}

// RecordPlayerState appends a state to the player's record.
func (b *Backend) RecordPlayerState(s *core.PlayerState) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.match == nil {
		return ErrNoMatch
	}
	b.stateCounter++
	s.ID = b.stateCounter
	s.MatchID = b.match.ID

	r := b.record(s.Snapshot.Player)
	r.States = append(r.States, *s)
	return nil
}

// RecordPassIntent appends a pass intent to the passer's record.
func (b *Backend) RecordPassIntent(e *core.PassIntent) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.match == nil {
		return ErrNoMatch
	}
	r := b.record(e.Player)
	r.Passes = append(r.Passes, *e)
	return nil
}

// RecordMovementSwap appends a swap to the player's record.
func (b *Backend) RecordMovementSwap(e *core.MovementSwap) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.match == nil {
		return ErrNoMatch
	}
	r := b.record(e.Player)
	r.Swaps = append(r.Swaps, *e)
	return nil
}

// RecordLunge appends a lunge to the tackler's record.
func (b *Backend) RecordLunge(e *core.LungeEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.match == nil {
		return ErrNoMatch
	}
	r := b.record(e.Player)
	r.Lunges = append(r.Lunges, *e)
	return nil
}

// RecordContact stores a contact between two players.
func (b *Backend) RecordContact(e *core.ContactEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.match == nil {
		return ErrNoMatch
	}
	b.contacts = append(b.contacts, *e)
	return nil
}

// ExportedFilePath returns the file written by the last EndMatch.
func (b *Backend) ExportedFilePath() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastExportPath
}

// Player returns a copy of the record for id.
func (b *Backend) Player(id core.PlayerID) (PlayerRecord, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	r, ok := b.players[id]
	if !ok {
		return PlayerRecord{}, false
	}
	out := *r
	out.States = append([]core.PlayerState(nil), r.States...)
	out.Passes = append([]core.PassIntent(nil), r.Passes...)
	out.Swaps = append([]core.MovementSwap(nil), r.Swaps...)
	out.Lunges = append([]core.LungeEvent(nil), r.Lunges...)
	return out, true
}

// Contacts returns a copy of the recorded contacts.
func (b *Backend) Contacts() []core.ContactEvent {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]core.ContactEvent(nil), b.contacts...)
}

// sortedPlayers returns the records ordered by player id. Caller holds the lock.
func (b *Backend) sortedPlayers() []*PlayerRecord {
	out := make([]*PlayerRecord, 0, len(b.players))
	for _, r := range b.players {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Player.PlayerID < out[j].Player.PlayerID
	})
	return out
}
