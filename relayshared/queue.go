package relayshared

import (
	"sync"
)

// defaultQueueCapacity fallback when constructed with a non-positive capacity
const defaultQueueCapacity = 50

// BoundedQueue fixed-capacity FIFO ring buffer. When full, Push evicts the oldest
// element before appending (freshness over completeness). Push and DrainAndClear on
// the same queue are mutually exclusive, distinct queues never contend.
type BoundedQueue[T any] struct {
	mu          sync.Mutex
	buf         []T
	head, count int
}

// NewBoundedQueue construct bounded queue with fixed capacity
func NewBoundedQueue[T any](capacity int) *BoundedQueue[T] {
	if capacity <= 0 {
		capacity = defaultQueueCapacity
	}
	return &BoundedQueue[T]{
		buf: make([]T, capacity),
	}
}

// Len returns the number of elements currently stored in the queue.
func (q *BoundedQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Cap returns the fixed capacity.
func (q *BoundedQueue[T]) Cap() int {
	return len(q.buf)
}

// Push puts an element on the end of the queue, reports whether the oldest
// element was evicted to make room.
func (q *BoundedQueue[T]) Push(elem T) (evicted bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count == len(q.buf) {
		// overwrite oldest slot, advance head
		q.buf[q.head] = elem
		q.head = (q.head + 1) % len(q.buf)
		return true
	}

	q.buf[(q.head+q.count)%len(q.buf)] = elem
	q.count++
	return false
}

// DrainAndClear removes and returns all queued elements in push order as a single
// observable step. A concurrent Push lands either in the returned batch or in the
// next one, never in both.
func (q *BoundedQueue[T]) DrainAndClear() []T {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count == 0 {
		return nil
	}

	out := make([]T, q.count)
	var zero T
	for i := 0; i < q.count; i++ {
		idx := (q.head + i) % len(q.buf)
		out[i] = q.buf[idx]
		q.buf[idx] = zero
	}
	q.head, q.count = 0, 0
	return out
}
