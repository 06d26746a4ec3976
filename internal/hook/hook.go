// Package hook runs an optional external command on access transitions,
// for site integrations the serial relay does not cover (alarms, pagers).
package hook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"
)

// Event is the transition payload passed to the hook command on stdin.
type Event struct {
	Status    string    `json:"status"`
	Labels    []string  `json:"labels"`
	Timestamp time.Time `json:"timestamp"`
}

// Runner executes the configured hook command with a timeout.
type Runner struct {
	command   string
	timeoutMs int
}

// NewRunner creates a Runner for the given shell command with the specified
// timeout in milliseconds.
func NewRunner(command string, timeoutMs int) *Runner {
	return &Runner{
		command:   command,
		timeoutMs: timeoutMs,
	}
}

// Fire runs the hook command with the event as JSON on stdin.
// It creates a context with the configured timeout; a command that overruns
// it is killed and reported as an error. Output is captured for diagnostics.
func (r *Runner) Fire(ev Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.timeoutMs)*time.Millisecond)
	defer cancel()

	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", r.command)

	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	cmd.Stdin = bytes.NewReader(payload)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("hook execution timeout after %dms", r.timeoutMs)
	}

	if err != nil {
		stderrStr := stderr.String()
		if stderrStr != "" {
			return fmt.Errorf("hook execution failed: %w, stderr: %s", err, stderrStr)
		}
		return fmt.Errorf("hook execution failed: %w", err)
	}

	return nil
}
