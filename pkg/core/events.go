// pkg/core/events.go
package core

import (
	"time"
)

// PassIntent is emitted when a player performs a pass.
// Delivering the ball is up to whoever receives the intent.
type PassIntent struct {
	Player PlayerID  `json:"player"`
	Team   int       `json:"team"`
	Angle  float64   `json:"angle"`
	From   Position  `json:"from"`
	Time   time.Time `json:"time"`
	Tick   uint      `json:"tick"`
}

// MovementSwap records a change of the movement variant a player holds.
type MovementSwap struct {
	Player PlayerID  `json:"player"`
	From   string    `json:"from"`
	To     string    `json:"to"`
	Time   time.Time `json:"time"`
	Tick   uint      `json:"tick"`
}

// LungeEvent is reported after a tackle lunge so that a collision
// collaborator can check the landing position for contact.
type LungeEvent struct {
	Player PlayerID  `json:"player"`
	Team   int       `json:"team"`
	From   Position  `json:"from"`
	To     Position  `json:"to"`
	Angle  float64   `json:"angle"`
	Time   time.Time `json:"time"`
	Tick   uint      `json:"tick"`
}

// ContactEvent is produced by a collision collaborator when a lunge
// ends overlapping another player.
type ContactEvent struct {
	Tackler  PlayerID  `json:"tackler"`
	Target   PlayerID  `json:"target"`
	At       Position  `json:"at"`
	Distance float64   `json:"distance"`
	Time     time.Time `json:"time"`
	Tick     uint      `json:"tick"`
}
