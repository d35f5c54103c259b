package parser

import (
	"github.com/touchline/footballer/internal/player"
	"github.com/touchline/footballer/pkg/core"
)

// MatchStart opens a recording session.
type MatchStart struct {
	Name string
}

// SpawnRequest carries everything needed to build a player.
// Movement and Action are fresh instances owned by the request.
type SpawnRequest struct {
	ID       core.PlayerID
	Name     string
	Age      int
	Team     int
	Movement player.Movement
	Action   player.Action
	Position core.Position
	Speed    int
}

// FaceRequest turns a player to an absolute angle in degrees.
type FaceRequest struct {
	ID    core.PlayerID
	Angle float64
}

// EquipRequest replaces the held action.
type EquipRequest struct {
	ID     core.PlayerID
	Action player.Action
}

// StanceRequest replaces the held movement.
type StanceRequest struct {
	ID       core.PlayerID
	Movement player.Movement
}
