package convert

import (
	"github.com/touchline/footballer/internal/model"
	"github.com/touchline/footballer/pkg/core"
)

// MatchToCore converts a GORM Match to a core.Match.
func MatchToCore(m model.Match) core.Match {
	out := core.Match{
		ID:        m.ID,
		SessionID: m.SessionID,
		Name:      m.Name,
		StartTime: m.StartTime,
	}
	if m.EndTime.Valid {
		out.EndTime = m.EndTime.Time
	}
	return out
}

// PlayerToCore converts a GORM Player to a core.PlayerInfo.
func PlayerToCore(p model.Player) core.PlayerInfo {
	return core.PlayerInfo{
		MatchID:  p.MatchID,
		PlayerID: core.PlayerID(p.PlayerID),
		JoinTime: p.JoinTime,
		JoinTick: p.JoinTick,
		Name:     p.Name,
		Age:      p.Age,
		Team:     p.Team,
	}
}

// PlayerStateToCore converts a GORM PlayerState to a core.PlayerState.
func PlayerStateToCore(s model.PlayerState) core.PlayerState {
	return core.PlayerState{
		ID:      s.ID,
		MatchID: s.MatchID,
		Time:    s.Time,
		Tick:    s.Tick,
		Snapshot: core.Snapshot{
			Player:      core.PlayerID(s.PlayerID),
			Team:        s.Team,
			Position:    pointToPosition(s.Position),
			AngleFacing: s.AngleFacing,
			Speed:       s.Speed,
			Movement:    s.Movement,
			Action:      s.Action,
		},
	}
}

// ContactToCore converts a GORM Contact to a core.ContactEvent.
func ContactToCore(c model.Contact) core.ContactEvent {
	return core.ContactEvent{
		Tackler:  core.PlayerID(c.TacklerID),
		Target:   core.PlayerID(c.TargetID),
		At:       pointToPosition(c.At),
		Distance: c.Distance,
		Time:     c.Time,
		Tick:     c.Tick,
	}
}
