// Package handlers turns driver commands into player operations and fans
// the events players emit out to the recorders.
package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/touchline/footballer/internal/influx"
	"github.com/touchline/footballer/internal/parser"
	"github.com/touchline/footballer/internal/player"
	"github.com/touchline/footballer/internal/roster"
	"github.com/touchline/footballer/internal/spatial"
	"github.com/touchline/footballer/internal/storage"
	"github.com/touchline/footballer/pkg/core"
)

// ErrUnknownPlayer is returned for commands naming a player not on the roster.
var ErrUnknownPlayer = errors.New("unknown player")

// Dependencies holds all dependencies needed by handlers.
type Dependencies struct {
	Roster        *roster.Roster
	Parser        *parser.Parser
	Backend       storage.Backend
	Influx        *influx.Manager // optional
	Logger        *slog.Logger
	ContactRadius float64
	Now           func() time.Time
	NewSessionID  func() string
}

// Service provides handler methods for driver commands. It is also the
// BallHandler, ContactObserver and SwapObserver of every player it spawns.
type Service struct {
	deps  Dependencies
	ctx   *MatchContext
	index *spatial.Index
	log   *slog.Logger
}

var (
	_ player.BallHandler     = (*Service)(nil)
	_ player.ContactObserver = (*Service)(nil)
	_ player.SwapObserver    = (*Service)(nil)
)

// NewService creates a new handler service.
func NewService(deps Dependencies, ctx *MatchContext) *Service {
	if deps.Roster == nil {
		deps.Roster = roster.New()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Parser == nil {
		deps.Parser = parser.NewParser(deps.Logger, 0)
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.NewSessionID == nil {
		deps.NewSessionID = uuid.NewString
	}
	if ctx == nil {
		ctx = NewMatchContext()
	}

	s := &Service{
		deps: deps,
		ctx:  ctx,
		log:  deps.Logger.With("component", "handlers"),
	}
	s.index = spatial.New(deps.Roster, deps.ContactRadius, s.recordContact)
	return s
}

// MatchContext returns the match context.
func (s *Service) MatchContext() *MatchContext {
	return s.ctx
}

// Roster returns the players in play.
func (s *Service) Roster() *roster.Roster {
	return s.deps.Roster
}

// StartMatch opens a recording session and clears the roster.
func (s *Service) StartMatch(req parser.MatchStart) (core.Match, error) {
	if _, ok := s.ctx.Current(); ok {
		return core.Match{}, ErrMatchInProgress
	}

	m := core.Match{
		SessionID: s.deps.NewSessionID(),
		Name:      req.Name,
		StartTime: s.deps.Now(),
	}
	if err := s.deps.Backend.StartMatch(&m); err != nil {
		return core.Match{}, fmt.Errorf("starting match: %w", err)
	}
	if err := s.ctx.Start(m); err != nil {
		return core.Match{}, err
	}
	s.deps.Roster.Reset()

	s.log.InfoContext(s.ctx.LogContext(), "Match started", "id", m.ID)
	return m, nil
}

// EndMatch closes the session. The returned path is the export file for
// backends that write one.
func (s *Service) EndMatch() (string, error) {
	m, ok := s.ctx.Current()
	if !ok {
		return "", ErrNoMatch
	}
	logCtx, ticks := s.ctx.LogContext(), s.ctx.Tick()

	m.EndTime = s.deps.Now()
	if err := s.deps.Backend.EndMatch(&m); err != nil {
		return "", fmt.Errorf("ending match: %w", err)
	}
	s.ctx.Clear()
	s.deps.Roster.Reset()

	var path string
	if exp, ok := s.deps.Backend.(storage.Exporter); ok {
		path = exp.ExportedFilePath()
	}
	s.log.InfoContext(logCtx, "Match ended", "duration", m.EndTime.Sub(m.StartTime), "ticks", ticks, "export", path)
	return path, nil
}

// Spawn builds a player from req, wires it to this service and registers it.
func (s *Service) Spawn(req parser.SpawnRequest) (core.Snapshot, error) {
	if _, ok := s.ctx.Current(); !ok {
		return core.Snapshot{}, ErrNoMatch
	}

	p, err := player.New(req.ID, req.Name, req.Age, req.Team, req.Movement, req.Action,
		player.WithPosition(req.Position),
		player.WithSpeed(req.Speed),
		player.WithBallHandler(s),
		player.WithOpponentLocator(s.index),
		player.WithContactObserver(s),
		player.WithSwapObserver(s),
	)
	if err != nil {
		return core.Snapshot{}, err
	}
	if err := s.deps.Roster.Add(p); err != nil {
		return core.Snapshot{}, err
	}

	info := core.PlayerInfo{
		PlayerID: p.ID(),
		JoinTime: s.deps.Now(),
		JoinTick: s.ctx.Tick(),
		Name:     p.Name(),
		Age:      p.Age(),
		Team:     p.Team(),
	}
	if err := s.deps.Backend.AddPlayer(&info); err != nil {
		// the spawn can be retried under the same id
		s.deps.Roster.Remove(p.ID())
		return core.Snapshot{}, fmt.Errorf("recording player %d: %w", p.ID(), err)
	}
	return s.recordState(p), nil
}

// Face turns a player to an absolute angle.
func (s *Service) Face(req parser.FaceRequest) (core.Snapshot, error) {
	p, err := s.player(req.ID)
	if err != nil {
		return core.Snapshot{}, err
	}
	p.SetAngleFacing(req.Angle)
	return s.recordState(p), nil
}

// Move runs the held movement for one tick.
func (s *Service) Move(id core.PlayerID) (core.Snapshot, error) {
	p, err := s.player(id)
	if err != nil {
		return core.Snapshot{}, err
	}
	s.ctx.Advance()
	p.Move()
	return s.recordState(p), nil
}

// Act runs the held action for one tick.
func (s *Service) Act(id core.PlayerID) (core.Snapshot, error) {
	p, err := s.player(id)
	if err != nil {
		return core.Snapshot{}, err
	}
	s.ctx.Advance()
	p.Act()
	return s.recordState(p), nil
}

// Equip replaces the held action.
func (s *Service) Equip(req parser.EquipRequest) (core.Snapshot, error) {
	p, err := s.player(req.ID)
	if err != nil {
		return core.Snapshot{}, err
	}
	if err := p.SetAction(req.Action); err != nil {
		return core.Snapshot{}, err
	}
	return s.recordState(p), nil
}

// Stance replaces the held movement.
func (s *Service) Stance(req parser.StanceRequest) (core.Snapshot, error) {
	p, err := s.player(req.ID)
	if err != nil {
		return core.Snapshot{}, err
	}
	if err := p.SetMovement(req.Movement); err != nil {
		return core.Snapshot{}, err
	}
	return s.recordState(p), nil
}

// Metric forwards a driver metric to InfluxDB. Without a manager it is dropped.
func (s *Service) Metric(args []string) error {
	if s.deps.Influx == nil {
		return nil
	}
	bucket, point, err := influx.ParseMetric(args)
	if err != nil {
		return err
	}
	return s.deps.Influx.WritePoint(bucket, point)
}

func (s *Service) player(id core.PlayerID) (*player.FootballPlayer, error) {
	if _, ok := s.ctx.Current(); !ok {
		return nil, ErrNoMatch
	}
	p, ok := s.deps.Roster.Get(id)
	if !ok {
		return nil, fmt.Errorf("player %d: %w", id, ErrUnknownPlayer)
	}
	return p, nil
}

// recordState stores the player's snapshot at the current tick.
func (s *Service) recordState(p *player.FootballPlayer) core.Snapshot {
	state := core.PlayerState{
		Time:     s.deps.Now(),
		Tick:     s.ctx.Tick(),
		Snapshot: p.Snapshot(),
	}
	if err := s.deps.Backend.RecordPlayerState(&state); err != nil {
		s.log.ErrorContext(s.ctx.LogContext(), "Failed to record player state", "player", p.ID(), "error", err)
	}
	if s.deps.Influx != nil {
		if err := s.deps.Influx.WritePlayerState(state); err != nil {
			s.log.WarnContext(s.ctx.LogContext(), "Failed to write player state to influx", "player", p.ID(), "error", err)
		}
	}
	return state.Snapshot
}

// HandlePass records the intent. Picking a receiver is left to the driver.
func (s *Service) HandlePass(intent core.PassIntent) {
	intent.Time, intent.Tick = s.deps.Now(), s.ctx.Tick()
	if err := s.deps.Backend.RecordPassIntent(&intent); err != nil {
		s.log.ErrorContext(s.ctx.LogContext(), "Failed to record pass", "player", intent.Player, "error", err)
		return
	}
	s.log.DebugContext(s.ctx.LogContext(), "Pass", "player", intent.Player, "angle", intent.Angle)
}

// ObserveSwap records a change of held movement.
func (s *Service) ObserveSwap(swap core.MovementSwap) {
	swap.Time, swap.Tick = s.deps.Now(), s.ctx.Tick()
	if err := s.deps.Backend.RecordMovementSwap(&swap); err != nil {
		s.log.ErrorContext(s.ctx.LogContext(), "Failed to record movement swap", "player", swap.Player, "error", err)
	}
}

// ObserveLunge records the lunge and checks the landing spot for contact.
func (s *Service) ObserveLunge(e core.LungeEvent) {
	e.Time, e.Tick = s.deps.Now(), s.ctx.Tick()
	if err := s.deps.Backend.RecordLunge(&e); err != nil {
		s.log.ErrorContext(s.ctx.LogContext(), "Failed to record lunge", "player", e.Player, "error", err)
	}
	s.index.ObserveLunge(e)
}

func (s *Service) recordContact(e core.ContactEvent) {
	if err := s.deps.Backend.RecordContact(&e); err != nil {
		s.log.ErrorContext(s.ctx.LogContext(), "Failed to record contact", "tackler", e.Tackler, "error", err)
	}
	if s.deps.Influx != nil {
		if err := s.deps.Influx.WriteContact(e); err != nil {
			s.log.WarnContext(s.ctx.LogContext(), "Failed to write contact to influx", "error", err)
		}
	}
	s.log.InfoContext(s.ctx.LogContext(), "Contact", "tackler", e.Tackler, "target", e.Target, "distance", e.Distance)
}
