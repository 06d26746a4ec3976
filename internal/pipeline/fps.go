package pipeline

import "time"

// DefaultFPSWindow is how many consumed results make up one FPS measurement.
const DefaultFPSWindow = 30

// Meter measures throughput over fixed-size windows of consumed results.
// A window opens when the meter is created and closes after windowSize ticks;
// the rate is windowSize divided by the wall time the window spanned. Each
// close resets the counter and reopens the window at the close time.
type Meter struct {
	windowSize int
	count      int
	windowOpen time.Time
	current    float64
}

// NewMeter creates a Meter over windows of the given size, with the first
// window opening at start. Non-positive sizes fall back to DefaultFPSWindow.
func NewMeter(windowSize int, start time.Time) *Meter {
	if windowSize <= 0 {
		windowSize = DefaultFPSWindow
	}
	return &Meter{windowSize: windowSize, windowOpen: start}
}

// Tick records one consumed result at the given time.
func (m *Meter) Tick(now time.Time) {
	m.count++
	if m.count < m.windowSize {
		return
	}

	elapsed := now.Sub(m.windowOpen).Seconds()
	if elapsed > 0 {
		m.current = float64(m.count) / elapsed
	}
	m.windowOpen = now
	m.count = 0
}

// Current returns the rate measured in the last completed window, or zero
// before the first window closes.
func (m *Meter) Current() float64 {
	return m.current
}
