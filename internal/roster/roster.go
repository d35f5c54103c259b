// Package roster keeps the players taking part in a match, keyed by ID.
package roster

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/touchline/footballer/internal/player"
	"github.com/touchline/footballer/pkg/core"
)

var (
	// ErrDuplicatePlayer is returned when a player ID is already taken.
	ErrDuplicatePlayer = errors.New("player already on roster")
	// ErrNilPlayer is returned when adding a nil player.
	ErrNilPlayer = errors.New("nil player")
)

// Roster is a thread-safe index of players. The lock guards membership
// only; a player itself must still be driven from one goroutine at a time.
type Roster struct {
	mu      sync.RWMutex
	players map[core.PlayerID]*player.FootballPlayer
}

// New creates an empty roster.
func New() *Roster {
	return &Roster{
		players: make(map[core.PlayerID]*player.FootballPlayer),
	}
}

// Add registers p under its ID.
func (r *Roster) Add(p *player.FootballPlayer) error {
	if p == nil {
		return ErrNilPlayer
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.players[p.ID()]; ok {
		return fmt.Errorf("player %d: %w", p.ID(), ErrDuplicatePlayer)
	}
	r.players[p.ID()] = p
	return nil
}

// Get looks up a player by ID.
func (r *Roster) Get(id core.PlayerID) (*player.FootballPlayer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.players[id]
	return p, ok
}

// Remove drops a player. Removing an unknown ID is a no-op.
func (r *Roster) Remove(id core.PlayerID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.players, id)
}

// Reset empties the roster.
func (r *Roster) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players = make(map[core.PlayerID]*player.FootballPlayer)
}

// Len returns the number of players.
func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}

// Players returns all players ordered by ID.
func (r *Roster) Players() []*player.FootballPlayer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*player.FootballPlayer, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Snapshots returns the state of every player ordered by ID.
func (r *Roster) Snapshots() []core.Snapshot {
	players := r.Players()
	out := make([]core.Snapshot, len(players))
	for i, p := range players {
		out[i] = p.Snapshot()
	}
	return out
}
