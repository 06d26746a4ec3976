package display

import (
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// MockWindow is a headless Window for tests. Key presses are injected with
// PushKey and returned by WaitKey in order.
type MockWindow struct {
	mu     sync.Mutex
	keys   []int
	shown  int
	closed int
}

// NewMockWindow creates a new MockWindow.
func NewMockWindow() *MockWindow {
	return &MockWindow{}
}

// PushKey queues a key code for a future WaitKey call.
func (w *MockWindow) PushKey(key int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.keys = append(w.keys, key)
}

func (w *MockWindow) Show(frame *gocv.Mat) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.shown++
}

// ShowCount returns how many frames have been displayed.
func (w *MockWindow) ShowCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.shown
}

// CloseCount returns how many times Close was called.
func (w *MockWindow) CloseCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// WaitKey pops the next queued key, or returns -1 after sleeping for the
// requested delay like the real HighGUI call does.
func (w *MockWindow) WaitKey(ms int) int {
	w.mu.Lock()
	if len(w.keys) > 0 {
		key := w.keys[0]
		w.keys = w.keys[1:]
		w.mu.Unlock()
		return key
	}
	w.mu.Unlock()

	if ms > 0 {
		time.Sleep(time.Duration(ms) * time.Millisecond)
	}
	return -1
}

func (w *MockWindow) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed++
	return nil
}
