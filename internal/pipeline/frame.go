package pipeline

import (
	"gocv.io/x/gocv"

	"github.com/ayusman/safegate/internal/access"
)

// Frame is a captured image with its capture-order sequence number.
// Ownership of the Mat transfers with the Frame: whoever pops it (or fails
// to push it) must close it.
type Frame struct {
	Mat *gocv.Mat
	Seq uint64
}

// Result is the annotated outcome of running detection on one Frame.
// It is immutable once produced.
type Result struct {
	Mat    *gocv.Mat
	Status access.Status
	Labels []string
	Seq    uint64
}
