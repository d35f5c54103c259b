package handlers

import (
	"fmt"

	"github.com/touchline/footballer/internal/dispatcher"
)

// RegisterHandlers registers every driver command with the dispatcher.
// Player commands run synchronously so a script replays in order.
func (s *Service) RegisterHandlers(d *dispatcher.Dispatcher) {
	d.Register(":MATCH:START:", s.handleMatchStart, dispatcher.Logged())
	d.Register(":MATCH:END:", s.handleMatchEnd, dispatcher.Logged())

	d.Register(":SPAWN:", s.handleSpawn, dispatcher.Logged())
	d.Register(":FACE:", s.handleFace, dispatcher.Logged())
	d.Register(":MOVE:", s.handleMove, dispatcher.Logged())
	d.Register(":ACT:", s.handleAct, dispatcher.Logged())
	d.Register(":EQUIP:", s.handleEquip, dispatcher.Logged())
	d.Register(":STANCE:", s.handleStance, dispatcher.Logged())

	// telemetry only, order does not matter
	d.Register(":METRIC:", s.handleMetric, dispatcher.Buffered(1000), dispatcher.Logged())
}

func (s *Service) handleMatchStart(e dispatcher.Event) (any, error) {
	req, err := s.deps.Parser.ParseMatchStart(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to start match: %w", err)
	}
	m, err := s.StartMatch(req)
	if err != nil {
		return nil, err
	}
	return m.SessionID, nil
}

func (s *Service) handleMatchEnd(e dispatcher.Event) (any, error) {
	if len(e.Args) != 0 {
		return nil, fmt.Errorf(":MATCH:END: takes no arguments, got %d", len(e.Args))
	}
	return s.EndMatch()
}

func (s *Service) handleSpawn(e dispatcher.Event) (any, error) {
	req, err := s.deps.Parser.ParseSpawn(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to spawn player: %w", err)
	}
	return s.Spawn(req)
}

func (s *Service) handleFace(e dispatcher.Event) (any, error) {
	req, err := s.deps.Parser.ParseFace(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to face player: %w", err)
	}
	return s.Face(req)
}

func (s *Service) handleMove(e dispatcher.Event) (any, error) {
	id, err := s.deps.Parser.ParsePlayerRef(e.Command, e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to move player: %w", err)
	}
	return s.Move(id)
}

func (s *Service) handleAct(e dispatcher.Event) (any, error) {
	id, err := s.deps.Parser.ParsePlayerRef(e.Command, e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to act: %w", err)
	}
	return s.Act(id)
}

func (s *Service) handleEquip(e dispatcher.Event) (any, error) {
	req, err := s.deps.Parser.ParseEquip(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to equip: %w", err)
	}
	return s.Equip(req)
}

func (s *Service) handleStance(e dispatcher.Event) (any, error) {
	req, err := s.deps.Parser.ParseStance(e.Args)
	if err != nil {
		return nil, fmt.Errorf("failed to change stance: %w", err)
	}
	return s.Stance(req)
}

func (s *Service) handleMetric(e dispatcher.Event) (any, error) {
	if err := s.Metric(e.Args); err != nil {
		return nil, fmt.Errorf("failed to write metric: %w", err)
	}
	return nil, nil
}
