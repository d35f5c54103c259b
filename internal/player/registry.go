package player

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownStrategy is returned for a strategy name with no registered variant.
var ErrUnknownStrategy = errors.New("unknown strategy")

var movements = map[string]func() Movement{
	MovementRun:        func() Movement { return Run{} },
	MovementStationary: func() Movement { return Stationary{} },
	MovementTackle:     func() Movement { return TackleMovement{} },
	MovementBlock:      func() Movement { return BlockMovement{} },
	MovementSlide:      func() Movement { return SlideMovement{} },
}

var actions = map[string]func() Action{
	ActionPass:   func() Action { return Pass{} },
	ActionTackle: func() Action { return Tackle{} },
	ActionBlock:  func() Action { return Block{} },
	ActionSlide:  func() Action { return Slide{} },
}

// MovementByName builds a fresh movement variant. Names are case-insensitive.
func MovementByName(name string) (Movement, error) {
	build, ok := movements[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("movement %q: %w", name, ErrUnknownStrategy)
	}
	return build(), nil
}

// ActionByName builds a fresh action variant. Names are case-insensitive.
func ActionByName(name string) (Action, error) {
	build, ok := actions[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("action %q: %w", name, ErrUnknownStrategy)
	}
	return build(), nil
}

// MovementNames lists the registered movement names in sorted order.
func MovementNames() []string {
	return sortedKeys(movements)
}

// ActionNames lists the registered action names in sorted order.
func ActionNames() []string {
	return sortedKeys(actions)
}

func sortedKeys[T any](m map[string]T) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
