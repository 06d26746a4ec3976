package pipeline

// Queue is a bounded, thread-safe queue backed by a buffered channel.
// Pushes never block: when the queue is full the new item is dropped, which
// is the pipeline's backpressure policy (freshness over completeness).
type Queue[T any] struct {
	ch chan T
}

// NewQueue creates a Queue with the given capacity.
func NewQueue[T any](capacity int) *Queue[T] {
	return &Queue[T]{ch: make(chan T, capacity)}
}

// TryPush enqueues v without blocking. Returns false if the queue was full
// and the item was dropped; the caller owns a dropped item's resources.
func (q *Queue[T]) TryPush(v T) bool {
	select {
	case q.ch <- v:
		return true
	default:
		return false
	}
}

// TryPop dequeues without blocking. The second return value reports whether
// an item was available.
func (q *Queue[T]) TryPop() (T, bool) {
	select {
	case v := <-q.ch:
		return v, true
	default:
		var zero T
		return zero, false
	}
}

// Pop blocks until an item is available or stop is closed.
// Returns false when interrupted by stop.
func (q *Queue[T]) Pop(stop <-chan struct{}) (T, bool) {
	select {
	case v := <-q.ch:
		return v, true
	case <-stop:
		var zero T
		return zero, false
	}
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	return len(q.ch)
}
