// Package convert maps pkg/core values to GORM models and back.
package convert

import (
	"encoding/json"
	"math"

	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"

	"github.com/touchline/footballer/internal/geo"
	"github.com/touchline/footballer/internal/model"
	"github.com/touchline/footballer/pkg/core"
)

// CoreToMatch converts a core.Match to a GORM model.Match.
func CoreToMatch(m core.Match) model.Match {
	gm := model.Match{
		SessionID: m.SessionID,
		Name:      m.Name,
		StartTime: m.StartTime,
	}
	gm.ID = m.ID
	if !m.EndTime.IsZero() {
		gm.EndTime.Time = m.EndTime
		gm.EndTime.Valid = true
	}
	return gm
}

// CoreToPlayer converts a core.PlayerInfo to a GORM model.Player.
func CoreToPlayer(p core.PlayerInfo) model.Player {
	return model.Player{
		MatchID:  p.MatchID,
		PlayerID: uint16(p.PlayerID),
		JoinTime: p.JoinTime,
		JoinTick: p.JoinTick,
		Name:     p.Name,
		Age:      p.Age,
		Team:     p.Team,
	}
}

// CoreToPlayerState converts a core.PlayerState to a GORM model.PlayerState.
func CoreToPlayerState(s core.PlayerState) model.PlayerState {
	return model.PlayerState{
		ID:          s.ID,
		Time:        s.Time,
		MatchID:     s.MatchID,
		Tick:        s.Tick,
		PlayerID:    uint16(s.Snapshot.Player),
		Team:        s.Snapshot.Team,
		Position:    geo.Point(s.Snapshot.Position),
		AngleFacing: s.Snapshot.AngleFacing,
		Speed:       s.Snapshot.Speed,
		Movement:    s.Snapshot.Movement,
		Action:      s.Snapshot.Action,
	}
}

// CoreToPassIntent converts a core.PassIntent to a GORM model.PassIntent.
// The intent is also kept whole in Payload.
func CoreToPassIntent(e core.PassIntent) model.PassIntent {
	return model.PassIntent{
		Time:     e.Time,
		Tick:     e.Tick,
		PlayerID: uint16(e.Player),
		Team:     e.Team,
		Angle:    e.Angle,
		From:     geo.Point(e.From),
		Payload:  toJSON(e),
	}
}

// CoreToMovementSwap converts a core.MovementSwap to a GORM model.MovementSwap.
func CoreToMovementSwap(e core.MovementSwap) model.MovementSwap {
	return model.MovementSwap{
		Time:         e.Time,
		Tick:         e.Tick,
		PlayerID:     uint16(e.Player),
		FromMovement: e.From,
		ToMovement:   e.To,
	}
}

// CoreToLunge converts a core.LungeEvent to a GORM model.Lunge.
func CoreToLunge(e core.LungeEvent) model.Lunge {
	return model.Lunge{
		Time:     e.Time,
		Tick:     e.Tick,
		PlayerID: uint16(e.Player),
		Team:     e.Team,
		From:     geo.Point(e.From),
		To:       geo.Point(e.To),
		Angle:    e.Angle,
	}
}

// CoreToContact converts a core.ContactEvent to a GORM model.Contact.
func CoreToContact(e core.ContactEvent) model.Contact {
	return model.Contact{
		Time:      e.Time,
		Tick:      e.Tick,
		TacklerID: uint16(e.Tackler),
		TargetID:  uint16(e.Target),
		At:        geo.Point(e.At),
		Distance:  e.Distance,
	}
}

func toJSON(v any) datatypes.JSON {
	data, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("{}")
	}
	return datatypes.JSON(data)
}

// pointToPosition converts a geom.Point back to whole pitch units.
// An empty point maps to the origin.
func pointToPosition(p geom.Point) core.Position {
	coord, ok := p.Coordinates()
	if !ok {
		return core.Position{}
	}
	return core.Position{X: int(math.Round(coord.XY.X)), Y: int(math.Round(coord.XY.Y))}
}
