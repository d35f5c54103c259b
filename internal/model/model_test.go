package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableNames(t *testing.T) {
	tests := []struct {
		name     string
		model    interface{ TableName() string }
		expected string
	}{
		{"RecorderInfo", &RecorderInfo{}, "recorder_infos"},
		{"Match", &Match{}, "matches"},
		{"Player", &Player{}, "players"},
		{"PlayerState", &PlayerState{}, "player_states"},
		{"PassIntent", &PassIntent{}, "pass_intents"},
		{"MovementSwap", &MovementSwap{}, "movement_swaps"},
		{"Lunge", &Lunge{}, "lunges"},
		{"Contact", &Contact{}, "contacts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.model.TableName())
		})
	}
}

func TestDatabaseModelsCoversEveryTable(t *testing.T) {
	assert.Len(t, DatabaseModels, 8)
	for _, m := range DatabaseModels {
		_, ok := m.(interface{ TableName() string })
		assert.True(t, ok, "%T has no TableName", m)
	}
}
