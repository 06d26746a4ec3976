// Package relay reports access decisions to an external microcontroller over
// a serial line. Messages are single ASCII lines, newline terminated, with no
// acknowledgement or retransmission.
package relay

import (
	"fmt"
	"log"

	"go.bug.st/serial"
)

// Channel is a one-way message sender to the gate controller.
type Channel interface {
	// Send writes one framed message. Implementations must not block the
	// caller on transport recovery; errors are transient and do not affect
	// subsequent sends.
	Send(msg string) error

	// Close releases the underlying transport.
	Close() error
}

// SerialChannel sends messages over a serial port.
type SerialChannel struct {
	port serial.Port
	name string
}

// Open opens the serial port at the given baud rate. When the port cannot be
// opened the pipeline must keep running, so Open degrades to a logging no-op
// channel instead of returning an error.
func Open(portName string, baudRate int) Channel {
	mode := &serial.Mode{BaudRate: baudRate}

	port, err := serial.Open(portName, mode)
	if err != nil {
		log.Printf("Serial port %s unavailable (%v), running without controller output", portName, err)
		return &NopChannel{}
	}

	log.Printf("Serial port %s opened at %d baud", portName, baudRate)
	return &SerialChannel{port: port, name: portName}
}

// Send writes msg plus a newline as a single framed message and flushes it.
func (c *SerialChannel) Send(msg string) error {
	if _, err := c.port.Write([]byte(msg + "\n")); err != nil {
		return fmt.Errorf("serial write: %w", err)
	}
	if err := c.port.Drain(); err != nil {
		return fmt.Errorf("serial drain: %w", err)
	}
	return nil
}

// Close closes the serial port.
func (c *SerialChannel) Close() error {
	return c.port.Close()
}

// NopChannel is the degraded channel used when no serial port is available.
// Sends are logged and otherwise discarded.
type NopChannel struct{}

func (c *NopChannel) Send(msg string) error {
	log.Printf("No serial connection, dropping message: %s", msg)
	return nil
}

func (c *NopChannel) Close() error {
	return nil
}
