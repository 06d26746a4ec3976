package pipeline

import (
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/safegate/internal/display"
	"github.com/ayusman/safegate/internal/hook"
)

// Snapshot is the pipeline's last published presentation state, consumed by
// the monitor server. JPEG is only populated when PublishFrames is enabled.
type Snapshot struct {
	Status  string    `json:"status"`
	Labels  []string  `json:"labels"`
	FPS     float64   `json:"fps"`
	Updated time.Time `json:"updated"`
	JPEG    []byte    `json:"-"`
}

// Snapshot returns a copy of the latest published state.
func (p *Pipeline) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snap
}

// publish stores the presentation state of a consumed result for readers
// outside the control loop.
func (p *Pipeline) publish(result Result, fps float64) {
	var jpeg []byte
	if p.cfg.PublishFrames {
		if buf, err := gocv.IMEncode(".jpg", *result.Mat); err == nil {
			jpeg = make([]byte, buf.Len())
			copy(jpeg, buf.GetBytes())
			buf.Close()
		}
	}

	labels := result.Labels
	if labels == nil {
		labels = []string{}
	}

	p.mu.Lock()
	p.snap = Snapshot{
		Status:  result.Status.String(),
		Labels:  labels,
		FPS:     fps,
		Updated: time.Now(),
		JPEG:    jpeg,
	}
	p.mu.Unlock()
}

func displayOverlay(result Result, fps float64) {
	display.Overlay(result.Mat, result.Status, fps, result.Labels)
}

func hookEvent(result Result) hook.Event {
	return hook.Event{
		Status:    result.Status.String(),
		Labels:    result.Labels,
		Timestamp: time.Now(),
	}
}
