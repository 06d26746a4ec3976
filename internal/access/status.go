// Package access decides whether a set of detections grants gate access.
//
// The rule is deliberately simple: access is granted exactly when the
// detected labels contain both a helmet-class and a vest-class label,
// matched case-insensitively by substring. Everything else is denied.
package access

import "strings"

// Status is the gate access decision derived from one detection result.
type Status int

const (
	// Checking is the initial state before any detection result arrives.
	Checking Status = iota
	// Granted means both required pieces of safety equipment were detected.
	Granted
	// Denied means at least one required piece of equipment is missing.
	Denied
)

// String returns the wire-protocol name of the status. Checking has no wire
// form and renders as "CHECKING" for display purposes only.
func (s Status) String() string {
	switch s {
	case Granted:
		return "ACCESS_GRANTED"
	case Denied:
		return "ACCESS_DENIED"
	default:
		return "CHECKING"
	}
}

// Wire returns the serial message for the status. The second return value is
// false for Checking, which must never be sent to the controller.
func (s Status) Wire() (string, bool) {
	switch s {
	case Granted, Denied:
		return s.String(), true
	default:
		return "", false
	}
}

// Evaluate derives the access decision from a set of detection labels.
// An empty label set is denied.
func Evaluate(labels []string) Status {
	var hasHelmet, hasVest bool
	for _, label := range labels {
		lower := strings.ToLower(label)
		if strings.Contains(lower, "helmet") {
			hasHelmet = true
		}
		if strings.Contains(lower, "vest") {
			hasVest = true
		}
	}

	if hasHelmet && hasVest {
		return Granted
	}
	return Denied
}
