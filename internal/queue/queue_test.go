package queue

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// testItem is a simple struct for testing the generic queue
type testItem struct {
	ID   int
	Name string
}

func ids(items []testItem) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestQueue_New(t *testing.T) {
	q := New[testItem](0)
	assert.NotNil(t, q)
	assert.True(t, q.Empty())
	assert.Equal(t, 0, q.Len())
	assert.Nil(t, q.Drain(0))
}

func TestQueue_Push(t *testing.T) {
	q := New[testItem](0)

	assert.Equal(t, 1, q.Push(testItem{ID: 1, Name: "first"}))
	assert.Equal(t, 2, q.Push(testItem{ID: 2}, testItem{ID: 3}))
	assert.Equal(t, 3, q.Len())
	assert.Zero(t, q.Dropped())
}

func TestQueue_PushRespectsLimit(t *testing.T) {
	q := New[testItem](2)

	assert.Equal(t, 2, q.Push(testItem{ID: 1}, testItem{ID: 2}, testItem{ID: 3}))
	assert.Equal(t, 0, q.Push(testItem{ID: 4}))
	assert.Equal(t, 2, q.Len())
	assert.Equal(t, uint64(2), q.Dropped())

	q.Drain(1)
	assert.Equal(t, 1, q.Push(testItem{ID: 5}))
	assert.Equal(t, []int{2, 5}, ids(q.Drain(0)))
}

func TestQueue_DrainBatches(t *testing.T) {
	q := New[testItem](0)
	for i := 1; i <= 5; i++ {
		q.Push(testItem{ID: i})
	}

	assert.Equal(t, []int{1, 2}, ids(q.Drain(2)))
	assert.Equal(t, []int{3, 4, 5}, ids(q.Drain(10)))
	assert.True(t, q.Empty())
}

func TestQueue_DrainDoesNotAlias(t *testing.T) {
	q := New[testItem](0)
	q.Push(testItem{ID: 1}, testItem{ID: 2})

	batch := q.Drain(1)
	batch[0].Name = "changed"
	q.Push(testItem{ID: 3})

	assert.Equal(t, []testItem{{ID: 2}, {ID: 3}}, q.Drain(0))
}

func TestQueue_Requeue(t *testing.T) {
	q := New[testItem](1)
	q.Push(testItem{ID: 1})
	failed := q.Drain(0)
	q.Push(testItem{ID: 2})

	q.Requeue(failed...)
	q.Requeue()

	assert.Equal(t, []int{1, 2}, ids(q.Drain(0)), "requeued items keep their place and ignore the limit")
}

func TestQueue_Clear(t *testing.T) {
	q := New[testItem](0)
	q.Push(testItem{ID: 1}, testItem{ID: 2})

	q.Clear()

	assert.True(t, q.Empty())
}

func TestQueue_ConcurrentPushDrain(t *testing.T) {
	q := New[testItem](0)
	const writers, perWriter = 8, 250

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				q.Push(testItem{ID: w*perWriter + i})
			}
		}(w)
	}

	var mu sync.Mutex
	seen := 0
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			batch := q.Drain(64)
			mu.Lock()
			seen += len(batch)
			total := seen
			mu.Unlock()
			if total == writers*perWriter {
				return
			}
		}
	}()

	wg.Wait()
	<-done
	assert.Equal(t, writers*perWriter, seen)
}
