package player

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/touchline/footballer/pkg/core"
)

func TestEngage_RejectedMovementLeavesPlayerAlone(t *testing.T) {
	p, err := New(1, "Bo", 20, 0, Run{}, Tackle{}, WithPosition(core.Position{X: 2, Y: 2}))
	require.NoError(t, err)

	engage(p, (*TackleMovement)(nil))

	assert.Equal(t, MovementRun, p.Movement().Name())
	assert.Equal(t, core.Position{X: 2, Y: 2}, p.Position())
}

func TestEngage_SwapsThenMoves(t *testing.T) {
	p, err := New(1, "Bo", 20, 0, Stationary{}, Tackle{}, WithSpeed(3))
	require.NoError(t, err)

	engage(p, TackleMovement{})

	assert.Equal(t, MovementTackle, p.Movement().Name())
	assert.Equal(t, core.Position{X: 6, Y: 0}, p.Position())
}
