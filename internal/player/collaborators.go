package player

//go:generate go tool mockgen -destination=mocks/mock_collaborators.go -package=mocks . BallHandler,OpponentLocator,ContactObserver,SwapObserver

import "github.com/touchline/footballer/pkg/core"

// BallHandler receives pass intents. Choosing the receiver and moving the
// ball belong to the handler; a pass with nobody in range is its concern.
type BallHandler interface {
	HandlePass(intent core.PassIntent)
}

// OpponentLocator answers the nearest-opponent query BlockMovement needs.
// ok is false when there is no opponent to face.
type OpponentLocator interface {
	NearestOpponent(self core.Snapshot) (pos core.Position, ok bool)
}

// ContactObserver is told where a tackle lunge started and landed.
// Detecting and resolving contact with other players is up to the observer.
type ContactObserver interface {
	ObserveLunge(event core.LungeEvent)
}

// SwapObserver is told when a player's held movement variant changes.
type SwapObserver interface {
	ObserveSwap(swap core.MovementSwap)
}
