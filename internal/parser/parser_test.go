package parser

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestParser() *Parser {
	return NewParser(slog.Default(), 5)
}

func TestNewParser(t *testing.T) {
	p := NewParser(nil, 3)
	require.NotNil(t, p)
	assert.NotNil(t, p.logger)
	assert.Equal(t, 3, p.defaultSpeed)
}

func TestParseUintFromFloat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    uint64
		wantErr bool
	}{
		{"integer", "32", 32, false},
		{"zero", "0", 0, false},
		{"float with decimals", "32.00", 32, false},
		{"large integer", "65535", 65535, false},
		{"fractional rejects", "10.99", 0, true},
		{"empty string", "", 0, true},
		{"non-numeric", "abc", 0, true},
		{"negative", "-1", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseUintFromFloat(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadNumber)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseIntFromFloat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"integer", "32", 32, false},
		{"negative integer", "-1", -1, false},
		{"negative float", "-1.00", -1, false},
		{"fractional rejects", "10.99", 0, true},
		{"empty string", "", 0, true},
		{"non-numeric", "abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIntFromFloat(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadNumber)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePlayerID_Range(t *testing.T) {
	id, err := parsePlayerID("65535")
	require.NoError(t, err)
	assert.EqualValues(t, 65535, id)

	_, err = parsePlayerID("65536")
	assert.ErrorIs(t, err, ErrBadNumber)
}

func TestParseLine(t *testing.T) {
	p := newTestParser()

	tests := []struct {
		name    string
		line    string
		command string
		args    []string
		ok      bool
	}{
		{"blank", "   ", "", nil, false},
		{"comment", "# warm-up", "", nil, false},
		{"move", ":MOVE: 7", ":MOVE:", []string{"7"}, true},
		{"lower case command", ":face: 7 90", ":FACE:", []string{"7", "90"}, true},
		{"match start", `:MATCH:START: "Cup Final"`, ":MATCH:START:", []string{"Cup Final"}, true},
		{"no args", ":MATCH:END:", ":MATCH:END:", []string{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args, ok, err := p.ParseLine(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.command, cmd)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestParseLine_Errors(t *testing.T) {
	p := newTestParser()

	_, _, _, err := p.ParseLine("MOVE 7")
	assert.ErrorIs(t, err, ErrNotCommand)

	_, _, _, err = p.ParseLine(`:SPAWN: 1 "unterminated`)
	assert.Error(t, err)
}
