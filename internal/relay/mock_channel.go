package relay

import "sync"

// MockChannel records sent messages for tests.
type MockChannel struct {
	mu     sync.Mutex
	sent   []string
	err    error
	closed int
}

// NewMockChannel creates a new MockChannel.
func NewMockChannel() *MockChannel {
	return &MockChannel{}
}

// SetError makes subsequent sends return err.
func (c *MockChannel) SetError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

func (c *MockChannel) Send(msg string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, msg)
	return nil
}

func (c *MockChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed++
	return nil
}

// Sent returns a copy of all recorded messages.
func (c *MockChannel) Sent() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.sent))
	copy(out, c.sent)
	return out
}

// CloseCount returns how many times Close was called.
func (c *MockChannel) CloseCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
