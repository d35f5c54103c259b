package handlers

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/touchline/footballer/internal/logging"
	"github.com/touchline/footballer/pkg/core"
)

var (
	// ErrNoMatch is returned by commands that need a match in progress.
	ErrNoMatch = errors.New("no match in progress")
	// ErrMatchInProgress is returned when a match is started twice.
	ErrMatchInProgress = errors.New("match already in progress")
)

// MatchContext holds the current match and its tick counter.
type MatchContext struct {
	mu     sync.RWMutex
	match  *core.Match
	tick   uint
	logCtx context.Context
}

// NewMatchContext creates an idle MatchContext.
func NewMatchContext() *MatchContext {
	return &MatchContext{logCtx: context.Background()}
}

// Current returns a copy of the match in progress.
func (mc *MatchContext) Current() (core.Match, bool) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	if mc.match == nil {
		return core.Match{}, false
	}
	return *mc.match, true
}

// Start makes m the current match and resets the tick.
func (mc *MatchContext) Start(m core.Match) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	if mc.match != nil {
		return ErrMatchInProgress
	}
	mc.match = &m
	mc.tick = 0
	mc.logCtx = logging.WithAttrs(context.Background(),
		slog.String("session", m.SessionID),
		slog.String("match", m.Name))
	return nil
}

// Clear ends the current match.
func (mc *MatchContext) Clear() {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.match = nil
	mc.tick = 0
	mc.logCtx = context.Background()
}

// Advance moves to the next tick and returns it.
func (mc *MatchContext) Advance() uint {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.tick++
	return mc.tick
}

// Tick returns the current tick.
func (mc *MatchContext) Tick() uint {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.tick
}

// LogContext carries the match attributes for context-aware log handlers.
func (mc *MatchContext) LogContext() context.Context {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.logCtx
}
