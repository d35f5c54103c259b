// pkg/core/player.go
package core

import "time"

// PlayerID identifies a player for the lifetime of a match.
type PlayerID uint16

// PlayerInfo is the static identity of a player registered with a recorder.
type PlayerInfo struct {
	ID       uint
	MatchID  uint
	PlayerID PlayerID
	JoinTime time.Time
	JoinTick uint
	Name     string
	Age      int
	Team     int
}

// Snapshot is a read-only copy of a player's mutable state.
type Snapshot struct {
	Player      PlayerID `json:"player"`
	Team        int      `json:"team"`
	Position    Position `json:"position"`
	AngleFacing float64  `json:"angleFacing"`
	Speed       int      `json:"speed"`
	Movement    string   `json:"movement"`
	Action      string   `json:"action"`
}

// PlayerState is a snapshot captured at a given tick.
type PlayerState struct {
	ID       uint
	MatchID  uint
	Time     time.Time
	Tick     uint
	Snapshot Snapshot
}
