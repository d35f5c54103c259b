// Package storage defines the recorder interface that telemetry sinks satisfy.
package storage

import "github.com/touchline/footballer/pkg/core"

// Backend records what the players emit during a match. Implementations
// must be safe for concurrent use.
type Backend interface {
	// Lifecycle
	Init() error
	Close() error

	// Match management. StartMatch assigns m.ID.
	StartMatch(m *core.Match) error
	EndMatch(m *core.Match) error

	// Player registration
	AddPlayer(p *core.PlayerInfo) error

	// State recording
	RecordPlayerState(s *core.PlayerState) error

	// Event recording
	RecordPassIntent(e *core.PassIntent) error
	RecordMovementSwap(e *core.MovementSwap) error
	RecordLunge(e *core.LungeEvent) error
	RecordContact(e *core.ContactEvent) error
}

// Exporter is implemented by backends that write a file per match.
type Exporter interface {
	ExportedFilePath() string
}
