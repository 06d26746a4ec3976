package hook

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRunner_Fire(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "event.json")

	r := NewRunner("cat > "+outPath, 5000)
	ev := Event{
		Status:    "ACCESS_DENIED",
		Labels:    []string{"helmet"},
		Timestamp: time.Unix(1700000000, 0).UTC(),
	}

	if err := r.Fire(ev); err != nil {
		t.Fatalf("Fire() error = %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read hook output: %v", err)
	}

	var got Event
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal hook payload: %v", err)
	}
	if got.Status != ev.Status {
		t.Errorf("Status = %q, want %q", got.Status, ev.Status)
	}
	if len(got.Labels) != 1 || got.Labels[0] != "helmet" {
		t.Errorf("Labels = %v, want [helmet]", got.Labels)
	}
}

func TestRunner_Fire_Timeout(t *testing.T) {
	r := NewRunner("sleep 2", 100)

	err := r.Fire(Event{Status: "ACCESS_DENIED"})
	if err == nil {
		t.Fatal("Fire() should fail when the command overruns the timeout")
	}
	if !strings.Contains(err.Error(), "timeout") {
		t.Errorf("Fire() error = %v, want timeout error", err)
	}
}

func TestRunner_Fire_CommandFailure(t *testing.T) {
	r := NewRunner("echo broken >&2; exit 3", 5000)

	err := r.Fire(Event{Status: "ACCESS_GRANTED"})
	if err == nil {
		t.Fatal("Fire() should surface a non-zero exit")
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("Fire() error = %v, want stderr included", err)
	}
}
