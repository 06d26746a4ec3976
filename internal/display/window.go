// Package display shows annotated frames in a GoCV window and draws the
// status overlay. Window operations are main-thread affine; the control loop
// that owns the Window must run on the main goroutine.
package display

import (
	"gocv.io/x/gocv"
)

// Window defines the display surface used by the presentation stage.
type Window interface {
	// Show displays the frame.
	Show(frame *gocv.Mat)

	// WaitKey polls for a key press for at most the given milliseconds and
	// returns the key code, or a negative value if none was pressed.
	WaitKey(ms int) int

	// Close destroys the window.
	Close() error
}

// gocvWindow is the real display implementation backed by HighGUI.
type gocvWindow struct {
	win *gocv.Window
}

// NewWindow creates and opens a named display window.
func NewWindow(title string) Window {
	return &gocvWindow{win: gocv.NewWindow(title)}
}

func (w *gocvWindow) Show(frame *gocv.Mat) {
	w.win.IMShow(*frame)
}

func (w *gocvWindow) WaitKey(ms int) int {
	return w.win.WaitKey(ms)
}

func (w *gocvWindow) Close() error {
	return w.win.Close()
}
