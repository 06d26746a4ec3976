package detector

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to control the detection results, and is safe to
// reconfigure while a pipeline is consuming it.
type MockDetector struct {
	mu         sync.Mutex
	detections []Detection
	err        error
	calls      int
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetDetections sets the detections that will be returned by Detect.
func (m *MockDetector) SetDetections(detections []Detection) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.detections = detections
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Calls returns how many times Detect has been invoked.
func (m *MockDetector) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Detect returns the pre-configured detections or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]Detection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.detections, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// SafetyEquipmentDetections returns a preset detection pair representing a
// worker wearing both required pieces of equipment.
func SafetyEquipmentDetections() []Detection {
	return []Detection{
		{
			Label:      "helmet",
			Confidence: 0.91,
			Box:        image.Rect(250, 40, 390, 160),
		},
		{
			Label:      "vest",
			Confidence: 0.87,
			Box:        image.Rect(220, 180, 420, 400),
		},
	}
}

// MissingVestDetections returns a preset detection set with a helmet but no
// vest, which must deny access.
func MissingVestDetections() []Detection {
	return []Detection{
		{
			Label:      "helmet",
			Confidence: 0.88,
			Box:        image.Rect(250, 40, 390, 160),
		},
		{
			Label:      "person",
			Confidence: 0.95,
			Box:        image.Rect(200, 30, 440, 470),
		},
	}
}
