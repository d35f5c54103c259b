package roster

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/touchline/footballer/internal/player"
	"github.com/touchline/footballer/pkg/core"
)

func newPlayer(id core.PlayerID, team int) *player.FootballPlayer {
	return player.MustNew(id, "P", 20, team, player.Run{}, player.Pass{})
}

func TestRoster_New(t *testing.T) {
	r := New()

	require.NotNil(t, r)
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Players())
}

func TestRoster_AddAndGet(t *testing.T) {
	r := New()
	p := newPlayer(42, 1)

	require.NoError(t, r.Add(p))

	got, ok := r.Get(42)
	require.True(t, ok, "expected to find player 42")
	assert.Same(t, p, got)
}

func TestRoster_Get_NotFound(t *testing.T) {
	r := New()

	_, ok := r.Get(999)
	assert.False(t, ok)
}

func TestRoster_Add_Duplicate(t *testing.T) {
	r := New()
	require.NoError(t, r.Add(newPlayer(1, 0)))

	err := r.Add(newPlayer(1, 1))
	assert.ErrorIs(t, err, ErrDuplicatePlayer)
	assert.Equal(t, 1, r.Len())
}

func TestRoster_Add_Nil(t *testing.T) {
	r := New()
	assert.ErrorIs(t, r.Add(nil), ErrNilPlayer)
}

func TestRoster_RemoveAndReset(t *testing.T) {
	r := New()
	require.NoError(t, r.Add(newPlayer(1, 0)))
	require.NoError(t, r.Add(newPlayer(2, 0)))

	r.Remove(1)
	r.Remove(100)
	assert.Equal(t, 1, r.Len())

	r.Reset()
	assert.Equal(t, 0, r.Len())
}

func TestRoster_OrderedByID(t *testing.T) {
	r := New()
	for _, id := range []core.PlayerID{5, 2, 9, 1} {
		require.NoError(t, r.Add(newPlayer(id, 0)))
	}

	var ids []core.PlayerID
	for _, s := range r.Snapshots() {
		ids = append(ids, s.Player)
	}
	assert.Equal(t, []core.PlayerID{1, 2, 5, 9}, ids)
}

func TestRoster_ConcurrentAccess(t *testing.T) {
	r := New()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(id core.PlayerID) {
			defer wg.Done()
			_ = r.Add(newPlayer(id, int(id)%2))
		}(core.PlayerID(i))
		go func(id core.PlayerID) {
			defer wg.Done()
			r.Get(id)
			r.Len()
		}(core.PlayerID(i))
	}

	wg.Wait()
	assert.Equal(t, 50, r.Len())
}
