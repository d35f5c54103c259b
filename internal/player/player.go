// Package player implements a football player whose movement and actions
// are strategy objects held by the player and swappable at runtime.
package player

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/touchline/footballer/internal/geo"
	"github.com/touchline/footballer/pkg/core"
)

var (
	// ErrNilMovement is returned when a player would be left without a movement strategy.
	ErrNilMovement = errors.New("movement strategy is required")
	// ErrNilAction is returned when a player would be left without an action strategy.
	ErrNilAction = errors.New("action strategy is required")
)

// FootballPlayer owns exactly one Movement and one Action and delegates
// Move and Act to them. It is not safe for concurrent use; the driver
// must serialise calls on a single player.
type FootballPlayer struct {
	id            core.PlayerID
	name          string
	age           int
	team          int
	position      core.Position
	angleFacing   float64
	movementSpeed int

	movement Movement
	action   Action

	// heading of the last non-zero translation
	travelAngle float64
	travelled   bool

	ball     BallHandler
	locator  OpponentLocator
	contacts ContactObserver
	swaps    SwapObserver
}

// Option configures optional player state and collaborators.
type Option func(*FootballPlayer)

// WithPosition sets the starting position.
func WithPosition(pos core.Position) Option {
	return func(p *FootballPlayer) {
		p.position = pos
	}
}

// WithSpeed sets the movement speed in pitch units per step.
func WithSpeed(speed int) Option {
	return func(p *FootballPlayer) {
		p.movementSpeed = speed
	}
}

// WithBallHandler routes pass intents to h.
func WithBallHandler(h BallHandler) Option {
	return func(p *FootballPlayer) {
		p.ball = h
	}
}

// WithOpponentLocator sets the spatial query used by BlockMovement.
func WithOpponentLocator(l OpponentLocator) Option {
	return func(p *FootballPlayer) {
		p.locator = l
	}
}

// WithContactObserver sets the collaborator notified after a tackle lunge.
func WithContactObserver(o ContactObserver) Option {
	return func(p *FootballPlayer) {
		p.contacts = o
	}
}

// WithSwapObserver sets the collaborator notified when the held movement changes.
func WithSwapObserver(o SwapObserver) Option {
	return func(p *FootballPlayer) {
		p.swaps = o
	}
}

// New creates a player holding m and a. Both strategies are required.
// The player faces 0 degrees (right) until told otherwise.
func New(id core.PlayerID, name string, age, team int, m Movement, a Action, opts ...Option) (*FootballPlayer, error) {
	if isNil(m) {
		return nil, fmt.Errorf("new player %q: %w", name, ErrNilMovement)
	}
	if isNil(a) {
		return nil, fmt.Errorf("new player %q: %w", name, ErrNilAction)
	}

	p := &FootballPlayer{
		id:       id,
		name:     name,
		age:      age,
		team:     team,
		movement: m,
		action:   a,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// MustNew is like New but panics on error. Intended for fixtures.
func MustNew(id core.PlayerID, name string, age, team int, m Movement, a Action, opts ...Option) *FootballPlayer {
	p, err := New(id, name, age, team, m, a, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// Move advances the player one step using the held movement.
func (p *FootballPlayer) Move() {
	p.movement.Move(p)
}

// Act performs the held action.
func (p *FootballPlayer) Act() {
	p.action.Act(p)
}

// SetAngleFacing stores angle normalized into [0, 360).
func (p *FootballPlayer) SetAngleFacing(angle float64) {
	p.angleFacing = geo.NormalizeAngle(angle)
}

// AngleFacing returns the facing angle in degrees, always within [0, 360).
func (p *FootballPlayer) AngleFacing() float64 {
	return p.angleFacing
}

// SetMovement replaces the held movement. The previous instance is dropped.
// A SwapObserver is told when the variant actually changes.
func (p *FootballPlayer) SetMovement(m Movement) error {
	if isNil(m) {
		return ErrNilMovement
	}
	prev := p.movement
	p.movement = m

	if p.swaps != nil && prev.Name() != m.Name() {
		p.swaps.ObserveSwap(core.MovementSwap{
			Player: p.id,
			From:   prev.Name(),
			To:     m.Name(),
		})
	}
	return nil
}

// SetAction replaces the held action.
func (p *FootballPlayer) SetAction(a Action) error {
	if isNil(a) {
		return ErrNilAction
	}
	p.action = a
	return nil
}

// Movement returns the held movement strategy.
func (p *FootballPlayer) Movement() Movement { return p.movement }

// Action returns the held action strategy.
func (p *FootballPlayer) Action() Action { return p.action }

// ID returns the player's identifier.
func (p *FootballPlayer) ID() core.PlayerID { return p.id }

// Name returns the player's display name.
func (p *FootballPlayer) Name() string { return p.name }

// Age returns the player's age in years.
func (p *FootballPlayer) Age() int { return p.age }

// Team returns the team number the player belongs to.
func (p *FootballPlayer) Team() int { return p.team }

// Position returns the current pitch position.
func (p *FootballPlayer) Position() core.Position { return p.position }

// MovementSpeed returns the distance covered by one run step.
func (p *FootballPlayer) MovementSpeed() int { return p.movementSpeed }

// SetPosition places the player without recording any travel.
func (p *FootballPlayer) SetPosition(pos core.Position) {
	p.position = pos
}

// SetMovementSpeed changes the distance covered per step.
func (p *FootballPlayer) SetMovementSpeed(speed int) {
	p.movementSpeed = speed
}

// TravelAngle returns the heading of the last step that moved the player.
// ok is false until the player has moved at least once.
func (p *FootballPlayer) TravelAngle() (angle float64, ok bool) {
	return p.travelAngle, p.travelled
}

// Snapshot copies the player's current state.
func (p *FootballPlayer) Snapshot() core.Snapshot {
	return core.Snapshot{
		Player:      p.id,
		Team:        p.team,
		Position:    p.position,
		AngleFacing: p.angleFacing,
		Speed:       p.movementSpeed,
		Movement:    p.movement.Name(),
		Action:      p.action.Name(),
	}
}

// translate moves the player magnitude units along angle and remembers
// the heading if the step was not empty.
func (p *FootballPlayer) translate(angle float64, magnitude int) {
	dx, dy := geo.Step(angle, magnitude)
	if dx == 0 && dy == 0 {
		return
	}
	p.position = p.position.Add(dx, dy)
	p.travelAngle = geo.NormalizeAngle(angle)
	p.travelled = true
}

// isNil reports whether v is nil or an interface holding a nil pointer,
// which would panic on the first Move or Act.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
