// Package proctable abstracts the host process table so that callers can
// detect and signal processes by command-line pattern without touching real
// processes in tests.
package proctable

import "context"

// Process is a handle to one live process matched by pattern.
type Process struct {
	PID int
	// Command is the full command line the pattern matched against.
	Command string
}

// Signal names the signal sent to matched processes, in pkill notation.
type Signal string

const (
	SIGTERM Signal = "TERM"
	SIGKILL Signal = "KILL"
)

// Table is the process-table collaborator. A pattern matches any live process
// whose full command line contains it as a substring.
type Table interface {
	// FindByPattern returns the current process-match set for pattern.
	// An empty slice with nil error means nothing matched.
	FindByPattern(ctx context.Context, pattern string) ([]Process, error)

	// SignalByPattern sends sig to every process matching pattern.
	// A pattern that matches nothing is not an error: the match set may
	// legitimately shrink between a Find and a Signal.
	SignalByPattern(ctx context.Context, pattern string, sig Signal) error
}
