package player

import (
	"github.com/touchline/footballer/internal/geo"
	"github.com/touchline/footballer/pkg/core"
)

// LungeFactor scales movement speed for the tackle lunge.
const LungeFactor = 2

// Movement changes a player's position and/or facing for one step.
type Movement interface {
	Move(p *FootballPlayer)
	Name() string
}

// Movement variant names.
const (
	MovementRun        = "run"
	MovementStationary = "stationary"
	MovementTackle     = "tackle"
	MovementBlock      = "block"
	MovementSlide      = "slide"
)

// Run moves along the facing angle at movement speed.
type Run struct{}

func (Run) Name() string { return MovementRun }

func (Run) Move(p *FootballPlayer) {
	p.translate(p.angleFacing, p.movementSpeed)
}

// Stationary keeps the player in place. Facing may still be changed by the driver.
type Stationary struct{}

func (Stationary) Name() string { return MovementStationary }

func (Stationary) Move(*FootballPlayer) {}

// TackleMovement lunges along the facing angle, LungeFactor times further
// than a run step, then reports the lunge to the contact observer.
type TackleMovement struct{}

func (TackleMovement) Name() string { return MovementTackle }

func (TackleMovement) Move(p *FootballPlayer) {
	from := p.position
	p.translate(p.angleFacing, p.movementSpeed*LungeFactor)

	if p.contacts != nil {
		p.contacts.ObserveLunge(core.LungeEvent{
			Player: p.id,
			Team:   p.team,
			From:   from,
			To:     p.position,
			Angle:  p.angleFacing,
		})
	}
}

// BlockMovement turns to face the nearest opponent and steps sideways,
// to the left of the previous direction of travel. Without a previous
// direction there is no step; without an opponent the facing is kept.
type BlockMovement struct{}

func (BlockMovement) Name() string { return MovementBlock }

func (BlockMovement) Move(p *FootballPlayer) {
	if p.locator != nil {
		if target, ok := p.locator.NearestOpponent(p.Snapshot()); ok {
			if angle, ok := geo.Bearing(p.position, target); ok {
				p.angleFacing = angle
			}
		}
	}

	if !p.travelled {
		return
	}
	p.translate(p.travelAngle+90, p.movementSpeed)
}

// SlideMovement continues along the previous direction of travel without
// turning. It does nothing before the player has moved.
type SlideMovement struct{}

func (SlideMovement) Name() string { return MovementSlide }

func (SlideMovement) Move(p *FootballPlayer) {
	if !p.travelled {
		return
	}
	p.translate(p.travelAngle, p.movementSpeed)
}
