package pipeline

import (
	"testing"
	"time"
)

func TestQueue_TryPush_DropOnFull(t *testing.T) {
	q := NewQueue[int](2)

	if !q.TryPush(1) {
		t.Error("TryPush #1 should succeed")
	}
	if !q.TryPush(2) {
		t.Error("TryPush #2 should succeed")
	}

	// Queue is at capacity: the push is a no-op, not a block.
	done := make(chan bool, 1)
	go func() {
		done <- q.TryPush(3)
	}()

	select {
	case pushed := <-done:
		if pushed {
			t.Error("TryPush on a full queue should report a drop")
		}
	case <-time.After(time.Second):
		t.Fatal("TryPush blocked on a full queue")
	}

	if q.Len() != 2 {
		t.Errorf("Len() = %d, want 2", q.Len())
	}

	// The dropped item never entered the queue.
	if v, ok := q.TryPop(); !ok || v != 1 {
		t.Errorf("TryPop() = %d, %v, want 1, true", v, ok)
	}
	if v, ok := q.TryPop(); !ok || v != 2 {
		t.Errorf("TryPop() = %d, %v, want 2, true", v, ok)
	}
}

func TestQueue_TryPop_Empty(t *testing.T) {
	q := NewQueue[string](2)

	if v, ok := q.TryPop(); ok {
		t.Errorf("TryPop() on empty queue = %q, true, want false", v)
	}
}

func TestQueue_Pop_BlocksUntilItem(t *testing.T) {
	q := NewQueue[int](2)
	stop := make(chan struct{})

	got := make(chan int, 1)
	go func() {
		if v, ok := q.Pop(stop); ok {
			got <- v
		}
	}()

	time.Sleep(10 * time.Millisecond)
	q.TryPush(7)

	select {
	case v := <-got:
		if v != 7 {
			t.Errorf("Pop() = %d, want 7", v)
		}
	case <-time.After(time.Second):
		t.Fatal("Pop() did not receive the pushed item")
	}
}

func TestQueue_Pop_StopInterrupts(t *testing.T) {
	q := NewQueue[int](2)
	stop := make(chan struct{})

	done := make(chan bool, 1)
	go func() {
		_, ok := q.Pop(stop)
		done <- ok
	}()

	close(stop)

	select {
	case ok := <-done:
		if ok {
			t.Error("Pop() interrupted by stop should return false")
		}
	case <-time.After(time.Second):
		t.Fatal("Pop() did not observe stop")
	}
}
