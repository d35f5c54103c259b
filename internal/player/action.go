package player

import "github.com/touchline/footballer/pkg/core"

// Action is a discrete event the player triggers.
type Action interface {
	Act(p *FootballPlayer)
	Name() string
}

// Action variant names.
const (
	ActionPass   = "pass"
	ActionTackle = "tackle"
	ActionBlock  = "block"
	ActionSlide  = "slide"
)

// Pass emits a pass intent along the facing angle.
type Pass struct{}

func (Pass) Name() string { return ActionPass }

func (Pass) Act(p *FootballPlayer) {
	if p.ball == nil {
		return
	}
	p.ball.HandlePass(core.PassIntent{
		Player: p.id,
		Team:   p.team,
		Angle:  p.angleFacing,
		From:   p.position,
	})
}

// Tackle switches the player to TackleMovement and lunges once.
type Tackle struct{}

func (Tackle) Name() string { return ActionTackle }

func (Tackle) Act(p *FootballPlayer) {
	engage(p, TackleMovement{})
}

// Block switches the player to BlockMovement and steps once.
type Block struct{}

func (Block) Name() string { return ActionBlock }

func (Block) Act(p *FootballPlayer) {
	engage(p, BlockMovement{})
}

// Slide switches the player to SlideMovement and slides once.
type Slide struct{}

func (Slide) Name() string { return ActionSlide }

func (Slide) Act(p *FootballPlayer) {
	engage(p, SlideMovement{})
}

// engage installs m and performs one move with it. A rejected movement
// leaves the player untouched.
func engage(p *FootballPlayer, m Movement) {
	if err := p.SetMovement(m); err != nil {
		return
	}
	p.Move()
}
