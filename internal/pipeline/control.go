package pipeline

import (
	"log"
	"time"
)

// Quit key codes: 'q' and ESC.
const (
	quitKey = 'q'
	escKey  = 27
)

// Run is the presentation control loop. It must be called on the main
// goroutine: the display window and key polling only work there.
//
// Each iteration consumes at most one result (status reporting, FPS
// bookkeeping, overlay, display), polls the quit key, and gives the reporter
// a chance to send its periodic keep-alive. The loop exits on the quit key
// or when shutdown is signaled by an upstream failure.
func (p *Pipeline) Run() {
	meter := NewMeter(p.cfg.FPSWindow, time.Now())

	for {
		if p.stopping() {
			return
		}

		if result, ok := p.results.TryPop(); ok {
			p.consume(result, meter)
		}

		// WaitKey both polls input and paces the loop.
		if key := p.cfg.Window.WaitKey(1); key == quitKey || key == escKey {
			log.Println("Quit requested")
			p.signalStop()
			return
		}

		p.cfg.Reporter.Keepalive()
	}
}

// consume handles one detection result: debounced reporting, the transition
// side effects, FPS accounting, overlay, and display.
func (p *Pipeline) consume(result Result, meter *Meter) {
	defer result.Mat.Close()

	if transitioned := p.cfg.Reporter.Report(result.Status); transitioned {
		p.onTransition(result)
	}

	meter.Tick(time.Now())
	fps := meter.Current()

	displayOverlay(result, fps)
	p.publish(result, fps)
	p.cfg.Window.Show(result.Mat)
}

// onTransition persists and announces a status change. Both side effects are
// best effort; failures never disturb the pipeline.
func (p *Pipeline) onTransition(result Result) {
	if p.cfg.Events != nil {
		if _, err := p.cfg.Events.Record(result.Status.String(), result.Labels); err != nil {
			log.Printf("Failed to record transition: %v", err)
		}
	}

	if p.cfg.Hook != nil {
		ev := hookEvent(result)
		go func() {
			if err := p.cfg.Hook.Fire(ev); err != nil {
				log.Printf("Transition hook: %v", err)
			}
		}()
	}
}
