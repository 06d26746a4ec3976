package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/safegate/internal/capture"
	"github.com/ayusman/safegate/internal/detector"
	"github.com/ayusman/safegate/internal/display"
	"github.com/ayusman/safegate/internal/pipeline"
	"github.com/ayusman/safegate/internal/relay"
	"github.com/ayusman/safegate/internal/server"
	"github.com/ayusman/safegate/internal/store"
)

func TestE2E_CompleteWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "safegate.db")

	st, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer st.Close()

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	cam := capture.NewMockCamera([]*gocv.Mat{&frame}, true)
	det := detector.NewMockDetector()
	channel := relay.NewMockChannel()
	window := display.NewMockWindow()

	p := pipeline.New(pipeline.Config{
		Camera:        cam,
		Detector:      det,
		Reporter:      relay.NewReporter(channel, time.Minute),
		Window:        window,
		Events:        st.Events(),
		FrameSkip:     2,
		PublishFrames: true,
	})

	srv := server.New(server.Config{Store: st, Status: p})
	ts := httptest.NewServer(srv)
	defer ts.Close()
	client := ts.Client()

	if err := p.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	done := make(chan struct{})
	go func() {
		p.Run()
		close(done)
	}()

	waitSent := func(want string) {
		t.Helper()
		deadline := time.Now().Add(2 * time.Second)
		for time.Now().Before(deadline) {
			sent := channel.Sent()
			if len(sent) > 0 && sent[len(sent)-1] == want {
				return
			}
			time.Sleep(5 * time.Millisecond)
		}
		t.Fatalf("controller never received %s (got %v)", want, channel.Sent())
	}

	t.Run("DeniedWithoutEquipment", func(t *testing.T) {
		waitSent("ACCESS_DENIED")
	})

	t.Run("GrantedWithEquipment", func(t *testing.T) {
		det.SetDetections(detector.SafetyEquipmentDetections())
		waitSent("ACCESS_GRANTED")
	})

	t.Run("StatusEndpoint", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/status")
		if err != nil {
			t.Fatalf("GET /api/status error = %v", err)
		}
		defer resp.Body.Close()

		var snap pipeline.Snapshot
		if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
			t.Fatalf("decode status: %v", err)
		}
		if snap.Status != "ACCESS_GRANTED" {
			t.Errorf("status = %q, want ACCESS_GRANTED", snap.Status)
		}
	})

	t.Run("EventsEndpoint", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/events")
		if err != nil {
			t.Fatalf("GET /api/events error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		var events []map[string]interface{}
		if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
			t.Fatalf("decode events: %v", err)
		}
		// One DENIED transition followed by one GRANTED transition.
		if len(events) != 2 {
			t.Errorf("len(events) = %d, want 2", len(events))
		}
	})

	t.Run("Shutdown", func(t *testing.T) {
		window.PushKey('q')
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("Run() did not exit on quit key")
		}

		p.Stop()
		if cam.IsOpen() {
			t.Error("camera still open after Stop()")
		}
	})
}
