// Package queue provides the batching buffer the GORM recorders flush from.
package queue

import (
	"sync"
)

// Queue is a generic thread-safe FIFO drained in batches.
type Queue[T any] struct {
	mu      sync.Mutex
	items   []T
	dropped uint64
	limit   int
}

// New creates a new empty queue. A positive limit caps the number of
// buffered items; pushes beyond it are counted and discarded.
func New[T any](limit int) *Queue[T] {
	return &Queue[T]{limit: limit}
}

// Push appends items to the queue and reports how many were accepted.
func (q *Queue[T]) Push(items ...T) int {
	q.mu.Lock()
	defer q.mu.Unlock()

	accepted := len(items)
	if q.limit > 0 {
		if room := q.limit - len(q.items); room < accepted {
			accepted = max(room, 0)
		}
	}
	q.items = append(q.items, items[:accepted]...)
	q.dropped += uint64(len(items) - accepted)
	return accepted
}

// Requeue puts items back at the head of the queue, ahead of anything pushed
// since they were drained. The limit is not applied.
func (q *Queue[T]) Requeue(items ...T) {
	if len(items) == 0 {
		return
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(append(make([]T, 0, len(items)+len(q.items)), items...), q.items...)
}

// Drain removes and returns up to n items from the head; n <= 0 drains everything.
func (q *Queue[T]) Drain(n int) []T {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return nil
	}
	if n <= 0 || n > len(q.items) {
		n = len(q.items)
	}

	batch := make([]T, n)
	copy(batch, q.items[:n])
	rest := make([]T, len(q.items)-n)
	copy(rest, q.items[n:])
	q.items = rest
	return batch
}

// Empty returns true if the queue has no items.
func (q *Queue[T]) Empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) == 0
}

// Len returns the number of items in the queue.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Dropped returns how many pushes were discarded because the queue was full.
func (q *Queue[T]) Dropped() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}

// Clear removes all items from the queue.
func (q *Queue[T]) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = nil
}
