// Package pipeline coordinates the three-stage capture, inference, and
// presentation pipeline of the SafeGate monitor.
//
// One capture worker and one inference worker run as goroutines, joined by
// two bounded capacity-2 queues; the presentation control loop runs on the
// caller's goroutine because the display window is main-thread affine. All
// queue pushes are non-blocking drop-on-full: a stale frame is always
// preferable to stalling the capture device.
package pipeline

import (
	"fmt"
	"log"
	"sync"

	"github.com/ayusman/safegate/internal/access"
	"github.com/ayusman/safegate/internal/capture"
	"github.com/ayusman/safegate/internal/detector"
	"github.com/ayusman/safegate/internal/display"
	"github.com/ayusman/safegate/internal/hook"
	"github.com/ayusman/safegate/internal/relay"
	"github.com/ayusman/safegate/internal/store"
)

// QueueCapacity bounds both stage queues.
const QueueCapacity = 2

// Config holds the pipeline's collaborators and tuning knobs.
type Config struct {
	Camera   capture.Camera
	Detector detector.Detector
	Reporter *relay.Reporter
	Window   display.Window

	// Events, when set, persists every status transition.
	Events *store.EventRepository

	// Hook, when set, fires on every status transition.
	Hook *hook.Runner

	// FrameSkip forwards only every Nth captured frame to inference.
	// Values below 1 are treated as 1 (no sampling).
	FrameSkip int

	// FPSWindow is the number of consumed results per FPS measurement.
	FPSWindow int

	// PublishFrames enables JPEG snapshots for the monitor server.
	PublishFrames bool
}

// Pipeline owns the workers, queues, and shared presentation state.
type Pipeline struct {
	cfg     Config
	frames  *Queue[Frame]
	results *Queue[Result]

	stopCh    chan struct{}
	stopOnce  sync.Once
	closeOnce sync.Once
	wg        sync.WaitGroup
	started   bool

	mu   sync.RWMutex
	snap Snapshot
}

// New creates a Pipeline from the given configuration.
func New(cfg Config) *Pipeline {
	if cfg.FrameSkip < 1 {
		cfg.FrameSkip = 1
	}
	if cfg.FPSWindow <= 0 {
		cfg.FPSWindow = DefaultFPSWindow
	}

	return &Pipeline{
		cfg:     cfg,
		frames:  NewQueue[Frame](QueueCapacity),
		results: NewQueue[Result](QueueCapacity),
		stopCh:  make(chan struct{}),
		snap:    Snapshot{Status: access.Checking.String(), Labels: []string{}},
	}
}

// Start opens the camera and launches the capture and inference workers.
// A camera that fails to open is fatal; the pipeline must not start.
func (p *Pipeline) Start() error {
	if p.started {
		return nil
	}

	if err := p.cfg.Camera.Open(); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}

	p.started = true
	p.wg.Add(2)
	go p.captureLoop()
	go p.inferLoop()

	log.Println("Detection pipeline started")
	return nil
}

// Stop signals the workers to finish, waits for them, abandons queued items,
// and releases the camera. It is safe to call more than once; resources are
// released exactly once.
func (p *Pipeline) Stop() {
	p.signalStop()
	p.wg.Wait()
	p.drain()

	p.closeOnce.Do(func() {
		if err := p.cfg.Camera.Close(); err != nil {
			log.Printf("Error closing camera: %v", err)
		}
		log.Println("Detection pipeline stopped")
	})
}

// Stopped returns a channel closed when shutdown has been signaled.
func (p *Pipeline) Stopped() <-chan struct{} {
	return p.stopCh
}

// signalStop requests cooperative shutdown. Workers observe it on their next
// loop iteration or queue wait.
func (p *Pipeline) signalStop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
}

func (p *Pipeline) stopping() bool {
	select {
	case <-p.stopCh:
		return true
	default:
		return false
	}
}

// captureLoop reads frames at device rate, keeps every Nth, and pushes them
// without blocking. A read failure is fatal to the stage and takes the whole
// pipeline down; the device is not retried.
func (p *Pipeline) captureLoop() {
	defer p.wg.Done()

	var seq uint64
	for !p.stopping() {
		mat, err := p.cfg.Camera.ReadFrame()
		if err != nil {
			log.Printf("Capture failed, shutting down pipeline: %v", err)
			p.signalStop()
			return
		}

		// Stride sampling counts in capture order, including frames the
		// queue later drops.
		if seq%uint64(p.cfg.FrameSkip) != 0 {
			mat.Close()
			seq++
			continue
		}

		if !p.frames.TryPush(Frame{Mat: mat, Seq: seq}) {
			mat.Close()
		}
		seq++
	}
}

// inferLoop runs the detector on sampled frames. The detector call is the
// single long-latency operation and deliberately has no timeout; isolating
// it here keeps it from ever stalling capture.
func (p *Pipeline) inferLoop() {
	defer p.wg.Done()

	for {
		frame, ok := p.frames.Pop(p.stopCh)
		if !ok {
			return
		}

		detections, err := p.cfg.Detector.Detect(frame.Mat)
		if err != nil {
			log.Printf("Detection failed on frame %d: %v", frame.Seq, err)
			frame.Mat.Close()
			continue
		}

		labels := detector.Labels(detections)
		status := access.Evaluate(labels)
		detector.Annotate(frame.Mat, detections)

		result := Result{
			Mat:    frame.Mat,
			Status: status,
			Labels: labels,
			Seq:    frame.Seq,
		}
		if !p.results.TryPush(result) {
			frame.Mat.Close()
		}
	}
}

// drain abandons in-flight queue items and releases their buffers.
func (p *Pipeline) drain() {
	for {
		frame, ok := p.frames.TryPop()
		if !ok {
			break
		}
		frame.Mat.Close()
	}
	for {
		result, ok := p.results.TryPop()
		if !ok {
			break
		}
		result.Mat.Close()
	}
}
