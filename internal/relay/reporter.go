package relay

import (
	"log"
	"sync"
	"time"

	"github.com/ayusman/safegate/internal/access"
)

// DefaultRefreshInterval is how long the reporter stays quiet before
// re-sending the current status as a keep-alive.
const DefaultRefreshInterval = 5 * time.Second

// Reporter debounces status reporting over a Channel: a message goes out on
// every status transition, plus a periodic refresh of the current status so a
// controller that resets or misses a message converges again. Checking is
// never put on the wire.
type Reporter struct {
	ch       Channel
	interval time.Duration

	mu         sync.Mutex
	last       access.Status
	lastReport time.Time

	now func() time.Time // injectable for tests
}

// NewReporter creates a Reporter over the given channel. A non-positive
// interval falls back to DefaultRefreshInterval.
func NewReporter(ch Channel, interval time.Duration) *Reporter {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Reporter{
		ch:       ch,
		interval: interval,
		last:     access.Checking,
		now:      time.Now,
	}
}

// Report sends the status iff it differs from the last reported one.
// Returns true when a transition was reported.
func (r *Reporter) Report(st access.Status) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if st == r.last {
		return false
	}

	r.send(st)
	r.last = st
	r.lastReport = r.now()
	return true
}

// Keepalive re-sends the current status when the refresh interval has elapsed
// since the last report. It is a no-op before the first transition. Returns
// true when a refresh was sent.
func (r *Reporter) Keepalive() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.last == access.Checking {
		return false
	}
	if r.now().Sub(r.lastReport) < r.interval {
		return false
	}

	r.send(r.last)
	r.lastReport = r.now()
	return true
}

// Status returns the last reported status.
func (r *Reporter) Status() access.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Close closes the underlying channel.
func (r *Reporter) Close() error {
	return r.ch.Close()
}

// send puts a status on the wire. Send failures are logged and swallowed;
// the debounce bookkeeping advances regardless so a flaky line does not turn
// into a send storm.
func (r *Reporter) send(st access.Status) {
	msg, ok := st.Wire()
	if !ok {
		return
	}

	if err := r.ch.Send(msg); err != nil {
		log.Printf("Failed to send %s to controller: %v", msg, err)
		return
	}
	log.Printf("Sent to controller: %s", msg)
}
