package parser

import (
	"fmt"

	"github.com/touchline/footballer/internal/player"
	"github.com/touchline/footballer/pkg/core"
)

// ParseMatchStart parses :MATCH:START: "name".
func (p *Parser) ParseMatchStart(args []string) (MatchStart, error) {
	if err := wantArgs(":MATCH:START:", args, 1); err != nil {
		return MatchStart{}, err
	}
	return MatchStart{Name: args[0]}, nil
}

// ParseSpawn parses :SPAWN: id "name" age team movement action [x y speed].
func (p *Parser) ParseSpawn(args []string) (SpawnRequest, error) {
	var req SpawnRequest
	if err := wantArgs(":SPAWN:", args, 6, 9); err != nil {
		return req, err
	}

	var err error
	if req.ID, err = parsePlayerID(args[0]); err != nil {
		return req, err
	}
	req.Name = args[1]
	if req.Age, err = parseInt("age", args[2]); err != nil {
		return req, err
	}
	if req.Team, err = parseInt("team", args[3]); err != nil {
		return req, err
	}
	if req.Movement, err = player.MovementByName(args[4]); err != nil {
		return req, err
	}
	if req.Action, err = player.ActionByName(args[5]); err != nil {
		return req, err
	}

	req.Speed = p.defaultSpeed
	if len(args) == 9 {
		x, err := parseInt("x", args[6])
		if err != nil {
			return req, err
		}
		y, err := parseInt("y", args[7])
		if err != nil {
			return req, err
		}
		if req.Speed, err = parseInt("speed", args[8]); err != nil {
			return req, err
		}
		req.Position = core.Position{X: x, Y: y}
	}

	p.logger.Debug("Parsed spawn",
		"player", req.ID,
		"movement", req.Movement.Name(),
		"action", req.Action.Name())

	return req, nil
}

// ParseFace parses :FACE: id angle.
func (p *Parser) ParseFace(args []string) (FaceRequest, error) {
	if err := wantArgs(":FACE:", args, 2); err != nil {
		return FaceRequest{}, err
	}
	id, err := parsePlayerID(args[0])
	if err != nil {
		return FaceRequest{}, err
	}
	angle, err := parseAngle(args[1])
	if err != nil {
		return FaceRequest{}, err
	}
	return FaceRequest{ID: id, Angle: angle}, nil
}

// ParsePlayerRef parses commands whose only argument is a player id (:MOVE:, :ACT:).
func (p *Parser) ParsePlayerRef(command string, args []string) (core.PlayerID, error) {
	if err := wantArgs(command, args, 1); err != nil {
		return 0, err
	}
	return parsePlayerID(args[0])
}

// ParseEquip parses :EQUIP: id action.
func (p *Parser) ParseEquip(args []string) (EquipRequest, error) {
	if err := wantArgs(":EQUIP:", args, 2); err != nil {
		return EquipRequest{}, err
	}
	id, err := parsePlayerID(args[0])
	if err != nil {
		return EquipRequest{}, err
	}
	a, err := player.ActionByName(args[1])
	if err != nil {
		return EquipRequest{}, fmt.Errorf("equip player %d: %w", id, err)
	}
	return EquipRequest{ID: id, Action: a}, nil
}

// ParseStance parses :STANCE: id movement.
func (p *Parser) ParseStance(args []string) (StanceRequest, error) {
	if err := wantArgs(":STANCE:", args, 2); err != nil {
		return StanceRequest{}, err
	}
	id, err := parsePlayerID(args[0])
	if err != nil {
		return StanceRequest{}, err
	}
	m, err := player.MovementByName(args[1])
	if err != nil {
		return StanceRequest{}, fmt.Errorf("stance player %d: %w", id, err)
	}
	return StanceRequest{ID: id, Movement: m}, nil
}
