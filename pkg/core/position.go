// pkg/core/position.go
package core

// Position is a point on the pitch in whole units.
// X grows to the right, Y grows upward; the zero value is the origin.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p translated by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}
