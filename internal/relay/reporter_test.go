package relay

import (
	"errors"
	"testing"
	"time"

	"github.com/ayusman/safegate/internal/access"
)

// fakeClock provides a controllable time source for reporter tests.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestReporter(ch Channel) (*Reporter, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	r := NewReporter(ch, DefaultRefreshInterval)
	r.now = clock.now
	return r, clock
}

func TestReporter_SendsOncePerTransition(t *testing.T) {
	ch := NewMockChannel()
	r, _ := newTestReporter(ch)

	if !r.Report(access.Granted) {
		t.Error("first Report(Granted) should send")
	}
	if r.Report(access.Granted) {
		t.Error("repeated Report(Granted) should not send")
	}
	if !r.Report(access.Denied) {
		t.Error("Report(Denied) after Granted should send")
	}
	if r.Report(access.Denied) {
		t.Error("repeated Report(Denied) should not send")
	}

	want := []string{"ACCESS_GRANTED", "ACCESS_DENIED"}
	got := ch.Sent()
	if len(got) != len(want) {
		t.Fatalf("sent = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sent[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestReporter_KeepaliveAfterQuietWindow(t *testing.T) {
	ch := NewMockChannel()
	r, clock := newTestReporter(ch)

	r.Report(access.Denied)

	// Within the window: no refresh.
	clock.advance(4 * time.Second)
	if r.Keepalive() {
		t.Error("Keepalive() within refresh window should not send")
	}

	// Past the window: exactly one refresh.
	clock.advance(2 * time.Second)
	if !r.Keepalive() {
		t.Error("Keepalive() past refresh window should send")
	}
	if r.Keepalive() {
		t.Error("back-to-back Keepalive() should not send again")
	}

	got := ch.Sent()
	if len(got) != 2 {
		t.Fatalf("sent %d messages, want 2: %v", len(got), got)
	}
	if got[1] != "ACCESS_DENIED" {
		t.Errorf("refresh message = %q, want ACCESS_DENIED", got[1])
	}
}

func TestReporter_NoKeepaliveBeforeFirstResult(t *testing.T) {
	ch := NewMockChannel()
	r, clock := newTestReporter(ch)

	clock.advance(time.Minute)
	if r.Keepalive() {
		t.Error("Keepalive() in Checking state should never send")
	}
	if len(ch.Sent()) != 0 {
		t.Errorf("sent = %v, want none", ch.Sent())
	}
}

func TestReporter_TransitionResetsKeepaliveWindow(t *testing.T) {
	ch := NewMockChannel()
	r, clock := newTestReporter(ch)

	r.Report(access.Granted)
	clock.advance(4 * time.Second)
	r.Report(access.Denied)

	// 4s after the transition, only 4s since the last report: quiet.
	clock.advance(4 * time.Second)
	if r.Keepalive() {
		t.Error("Keepalive() should measure from the last report, not the first")
	}
}

func TestReporter_SendFailureIsTransient(t *testing.T) {
	ch := NewMockChannel()
	r, _ := newTestReporter(ch)

	ch.SetError(errors.New("wire unplugged"))
	if !r.Report(access.Granted) {
		t.Error("Report() should still record the transition when the send fails")
	}

	// The next transition sends normally.
	ch.SetError(nil)
	if !r.Report(access.Denied) {
		t.Error("Report() after a failed send should be unaffected")
	}
	got := ch.Sent()
	if len(got) != 1 || got[0] != "ACCESS_DENIED" {
		t.Errorf("sent = %v, want [ACCESS_DENIED]", got)
	}
}

func TestReporter_DegradedChannel(t *testing.T) {
	// The reporter must behave identically over the no-op channel, including
	// the periodic refresh (the channel absorbs it).
	r, clock := newTestReporter(&NopChannel{})

	if !r.Report(access.Denied) {
		t.Error("Report() over NopChannel should still track transitions")
	}
	clock.advance(6 * time.Second)
	if !r.Keepalive() {
		t.Error("Keepalive() over NopChannel should still fire")
	}
	if r.Status() != access.Denied {
		t.Errorf("Status() = %v, want Denied", r.Status())
	}
}

func TestOpen_DegradesWithoutPort(t *testing.T) {
	ch := Open("/dev/safegate-test-no-such-port", 115200)

	if _, ok := ch.(*NopChannel); !ok {
		t.Fatalf("Open() on a missing port = %T, want *NopChannel", ch)
	}
	if err := ch.Send("ACCESS_DENIED"); err != nil {
		t.Errorf("NopChannel.Send() error = %v, want nil", err)
	}
	if err := ch.Close(); err != nil {
		t.Errorf("NopChannel.Close() error = %v, want nil", err)
	}
}
