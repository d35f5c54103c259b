package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/touchline/footballer/internal/player"
	"github.com/touchline/footballer/pkg/core"
)

func TestParseMatchStart(t *testing.T) {
	p := newTestParser()

	got, err := p.ParseMatchStart([]string{"Cup Final"})
	require.NoError(t, err)
	assert.Equal(t, "Cup Final", got.Name)

	_, err = p.ParseMatchStart(nil)
	assert.ErrorIs(t, err, ErrArgCount)
}

func TestParseSpawn_Minimal(t *testing.T) {
	p := newTestParser()

	req, err := p.ParseSpawn([]string{"7", "Ada Lovelace", "36", "1", "run", "pass"})
	require.NoError(t, err)

	assert.Equal(t, core.PlayerID(7), req.ID)
	assert.Equal(t, "Ada Lovelace", req.Name)
	assert.Equal(t, 36, req.Age)
	assert.Equal(t, 1, req.Team)
	assert.IsType(t, player.Run{}, req.Movement)
	assert.IsType(t, player.Pass{}, req.Action)
	assert.Equal(t, core.Position{}, req.Position)
	assert.Equal(t, 5, req.Speed, "default speed applies")
}

func TestParseSpawn_WithPlacement(t *testing.T) {
	p := newTestParser()

	req, err := p.ParseSpawn([]string{"8", "Grace", "30", "2", "Stationary", "TACKLE", "-10", "4.0", "3"})
	require.NoError(t, err)

	assert.IsType(t, player.Stationary{}, req.Movement)
	assert.IsType(t, player.Tackle{}, req.Action)
	assert.Equal(t, core.Position{X: -10, Y: 4}, req.Position)
	assert.Equal(t, 3, req.Speed)
}

func TestParseSpawn_Errors(t *testing.T) {
	p := newTestParser()

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"too few", []string{"7", "Ada"}, ErrArgCount},
		{"partial placement", []string{"7", "Ada", "36", "1", "run", "pass", "1"}, ErrArgCount},
		{"bad id", []string{"x", "Ada", "36", "1", "run", "pass"}, ErrBadNumber},
		{"bad age", []string{"7", "Ada", "old", "1", "run", "pass"}, ErrBadNumber},
		{"bad team", []string{"7", "Ada", "36", "1.5", "run", "pass"}, ErrBadNumber},
		{"unknown movement", []string{"7", "Ada", "36", "1", "dribble", "pass"}, player.ErrUnknownStrategy},
		{"unknown action", []string{"7", "Ada", "36", "1", "run", "shoot"}, player.ErrUnknownStrategy},
		{"bad speed", []string{"7", "Ada", "36", "1", "run", "pass", "0", "0", "fast"}, ErrBadNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.ParseSpawn(tt.args)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseFace(t *testing.T) {
	p := newTestParser()

	req, err := p.ParseFace([]string{"3", "-90.5"})
	require.NoError(t, err)
	assert.Equal(t, FaceRequest{ID: 3, Angle: -90.5}, req)

	_, err = p.ParseFace([]string{"3", "north"})
	assert.ErrorIs(t, err, ErrBadNumber)

	_, err = p.ParseFace([]string{"3"})
	assert.ErrorIs(t, err, ErrArgCount)
}

func TestParsePlayerRef(t *testing.T) {
	p := newTestParser()

	id, err := p.ParsePlayerRef(":MOVE:", []string{"12"})
	require.NoError(t, err)
	assert.Equal(t, core.PlayerID(12), id)

	_, err = p.ParsePlayerRef(":ACT:", []string{"12", "13"})
	assert.ErrorIs(t, err, ErrArgCount)
}

func TestParseEquipAndStance(t *testing.T) {
	p := newTestParser()

	eq, err := p.ParseEquip([]string{"4", "slide"})
	require.NoError(t, err)
	assert.Equal(t, core.PlayerID(4), eq.ID)
	assert.IsType(t, player.Slide{}, eq.Action)

	st, err := p.ParseStance([]string{"4", "block"})
	require.NoError(t, err)
	assert.IsType(t, player.BlockMovement{}, st.Movement)

	_, err = p.ParseEquip([]string{"4", "juggle"})
	assert.ErrorIs(t, err, player.ErrUnknownStrategy)

	_, err = p.ParseStance([]string{"4"})
	assert.ErrorIs(t, err, ErrArgCount)
}
