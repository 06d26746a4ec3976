// Package detector provides object detection for safety equipment using an
// ONNX model run through the GoCV DNN module.
package detector

import (
	"image"

	"gocv.io/x/gocv"
)

// Detection is a single labeled detection in a frame.
type Detection struct {
	Label      string
	Confidence float32
	Box        image.Rectangle
}

// Detector defines the interface for object detection implementations.
// Detect is synchronous and may be slow; callers isolate it on a worker.
type Detector interface {
	// Detect analyzes a video frame and returns labeled detections.
	// Returns an empty slice if nothing is detected.
	Detect(frame *gocv.Mat) ([]Detection, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for object detection.
type Config struct {
	// ModelPath is the path to the ONNX model artifact.
	ModelPath string

	// ClassNamesPath optionally points to a newline-separated class list.
	// When empty, DefaultClassNames is used.
	ClassNamesPath string

	// ConfidenceThreshold is the minimum detection confidence (0.0-1.0).
	ConfidenceThreshold float32

	// NMSThreshold is the non-maximum-suppression overlap threshold.
	NMSThreshold float32

	// InputSize is the square side of the network input blob.
	InputSize int
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		ModelPath:           "models/safety.onnx",
		ConfidenceThreshold: 0.5,
		NMSThreshold:        0.45,
		InputSize:           640,
	}
}

// Labels extracts the label set from a list of detections.
func Labels(detections []Detection) []string {
	labels := make([]string, len(detections))
	for i, d := range detections {
		labels[i] = d.Label
	}
	return labels
}
