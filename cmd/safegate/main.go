package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ayusman/safegate/internal/capture"
	"github.com/ayusman/safegate/internal/config"
	"github.com/ayusman/safegate/internal/detector"
	"github.com/ayusman/safegate/internal/display"
	"github.com/ayusman/safegate/internal/hook"
	"github.com/ayusman/safegate/internal/pipeline"
	"github.com/ayusman/safegate/internal/relay"
	"github.com/ayusman/safegate/internal/server"
	"github.com/ayusman/safegate/internal/store"
)

// Version is the application version.
const Version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatalf("safegate: %v", err)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.Load()

	cmd := &cobra.Command{
		Use:     "safegate",
		Short:   "Real-time safety equipment gate monitor",
		Long: "SafeGate watches a camera feed for required safety equipment (helmet\n" +
			"and vest) and reports the access decision to a gate controller over a\n" +
			"serial line. Press 'q' or ESC in the video window to quit.",
		Version: Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.SerialPort, "serial-port", cfg.SerialPort, "serial port of the gate controller")
	flags.IntVar(&cfg.BaudRate, "baud", cfg.BaudRate, "serial baud rate")
	flags.StringVar(&cfg.ModelPath, "model", cfg.ModelPath, "path to the ONNX detection model")
	flags.StringVar(&cfg.ClassNamesPath, "class-names", cfg.ClassNamesPath, "path to a newline-separated class list")
	flags.IntVar(&cfg.CameraIndex, "camera", cfg.CameraIndex, "camera device index")
	flags.IntVar(&cfg.TargetFPS, "fps", cfg.TargetFPS, "target camera frame rate")
	flags.IntVar(&cfg.FrameSkip, "frame-skip", cfg.FrameSkip, "process every Nth captured frame")
	flags.Float64Var(&cfg.ConfidenceThreshold, "confidence", cfg.ConfidenceThreshold, "detection confidence threshold")
	flags.StringVar(&cfg.HTTPAddr, "http", cfg.HTTPAddr, "monitor server address (empty to disable)")
	flags.StringVar(&cfg.DBPath, "db", cfg.DBPath, "event log database path (empty to disable)")
	flags.StringVar(&cfg.HookCmd, "hook", cfg.HookCmd, "command to run on access transitions (empty to disable)")

	return cmd
}

func run(cfg *config.Config) error {
	log.Println("SafeGate - Safety Equipment Monitor")

	// Event log is optional.
	var st *store.Store
	if cfg.DBPath != "" {
		var err error
		st, err = store.New(cfg.DBPath)
		if err != nil {
			return err
		}
		defer st.Close()
		log.Printf("Event log: %s", cfg.DBPath)
	}

	det := buildDetector(cfg)
	defer det.Close()

	window := display.NewWindow(cfg.WindowTitle)
	defer window.Close()

	// A missing controller must not stop the vision pipeline: Open degrades
	// to a logging no-op channel on failure.
	channel := relay.Open(cfg.SerialPort, cfg.BaudRate)
	reporter := relay.NewReporter(channel, relay.DefaultRefreshInterval)
	defer reporter.Close()

	pcfg := pipeline.Config{
		Camera:        capture.NewCamera(cfg.CameraIndex, capture.DefaultWidth, capture.DefaultHeight, cfg.TargetFPS),
		Detector:      det,
		Reporter:      reporter,
		Window:        window,
		FrameSkip:     cfg.FrameSkip,
		PublishFrames: cfg.HTTPAddr != "",
	}
	if st != nil {
		pcfg.Events = st.Events()
	}
	if cfg.HookCmd != "" {
		pcfg.Hook = hook.NewRunner(cfg.HookCmd, cfg.HookTimeoutMs)
	}

	p := pipeline.New(pcfg)

	// Camera failure at startup is fatal; nothing has been displayed yet.
	if err := p.Start(); err != nil {
		return err
	}
	defer p.Stop()

	if cfg.HTTPAddr != "" {
		srv := server.New(server.Config{Store: st, Status: p})
		go func() {
			log.Printf("Monitor server on %s", cfg.HTTPAddr)
			if err := srv.ListenAndServe(cfg.HTTPAddr); err != nil {
				log.Printf("Monitor server stopped: %v", err)
			}
		}()
	}

	// SIGINT/SIGTERM request the same cooperative shutdown as the quit key.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Interrupted, shutting down")
		p.Stop()
	}()

	log.Println("Real-time detection started. Press 'q' to quit.")
	started := time.Now()
	p.Run()
	log.Printf("Pipeline ran for %s", time.Since(started).Round(time.Second))

	return nil
}

// buildDetector loads the configured model, falling back to the mock
// detector when the model is unavailable. The mock detects nothing, so the
// gate fails closed (every result is ACCESS_DENIED).
func buildDetector(cfg *config.Config) detector.Detector {
	dcfg := detector.DefaultConfig()
	dcfg.ModelPath = cfg.ModelPath
	dcfg.ClassNamesPath = cfg.ClassNamesPath
	dcfg.ConfidenceThreshold = float32(cfg.ConfidenceThreshold)
	dcfg.NMSThreshold = float32(cfg.NMSThreshold)

	yolo, err := detector.NewYOLO(dcfg)
	if err != nil {
		log.Printf("Model not available (%v), using mock detector", err)
		return detector.NewMockDetector()
	}

	log.Printf("Using YOLO model %s", cfg.ModelPath)
	return yolo
}
