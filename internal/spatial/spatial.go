// Package spatial answers the position queries players delegate to an
// outside collaborator: who is the nearest opponent, and who is within
// touching distance after a tackle lunge.
package spatial

import (
	"math"

	"github.com/touchline/footballer/internal/geo"
	"github.com/touchline/footballer/pkg/core"
)

// DefaultContactRadius is the distance within which two players touch.
const DefaultContactRadius = 1.0

// Source provides the current state of every player on the pitch.
// roster.Roster satisfies it.
type Source interface {
	Snapshots() []core.Snapshot
}

// ContactFunc receives contacts detected after a lunge.
type ContactFunc func(core.ContactEvent)

// Index is a brute-force spatial query over a Source.
// It implements player.OpponentLocator and player.ContactObserver.
type Index struct {
	source    Source
	radius    float64
	onContact ContactFunc
}

// New creates an Index. A radius <= 0 falls back to DefaultContactRadius.
// onContact may be nil.
func New(source Source, radius float64, onContact ContactFunc) *Index {
	if radius <= 0 {
		radius = DefaultContactRadius
	}
	return &Index{
		source:    source,
		radius:    radius,
		onContact: onContact,
	}
}

// Radius returns the contact radius.
func (i *Index) Radius() float64 {
	return i.radius
}

// NearestOpponent returns the position of the closest player on another team.
// Ties go to the lowest player ID.
func (i *Index) NearestOpponent(self core.Snapshot) (core.Position, bool) {
	best := math.Inf(1)
	var found core.Position
	ok := false

	for _, other := range i.source.Snapshots() {
		if other.Player == self.Player || other.Team == self.Team {
			continue
		}
		d := geo.Distance(self.Position, other.Position)
		if d < best {
			best = d
			found = other.Position
			ok = true
		}
	}
	return found, ok
}

// Overlapping lists every player other than id within radius of at.
func (i *Index) Overlapping(id core.PlayerID, at core.Position, radius float64) []core.Snapshot {
	var out []core.Snapshot
	for _, other := range i.source.Snapshots() {
		if other.Player == id {
			continue
		}
		if geo.Distance(at, other.Position) <= radius {
			out = append(out, other)
		}
	}
	return out
}

// ObserveLunge checks where a lunge landed and reports one ContactEvent per
// player touched.
func (i *Index) ObserveLunge(e core.LungeEvent) {
	if i.onContact == nil {
		return
	}
	for _, other := range i.Overlapping(e.Player, e.To, i.radius) {
		i.onContact(core.ContactEvent{
			Tackler:  e.Player,
			Target:   other.Player,
			At:       e.To,
			Distance: geo.Distance(e.To, other.Position),
			Time:     e.Time,
			Tick:     e.Tick,
		})
	}
}
