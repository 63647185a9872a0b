// Package shutdown implements the dev-stack shutdown sequence: three
// independent steps run in fixed order against the host process table,
// each reporting its outcome on the console.
//
// The sequence is deliberately fire-and-forget. A step is done the moment
// its termination action has been dispatched; nobody waits for the target
// process to actually exit. The match set can also change between the
// presence check and the signal, which is treated as a non-error.
package shutdown

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"stackctl/internal/proctable"
	"stackctl/internal/stack"
)

// Result is the outcome of one step.
//
// StopFailed means the termination action itself could not be dispatched
// (the signal or admin-client invocation errored). It never means "the
// process is still alive" — that is not checked.
type Result int

const (
	NotRunning Result = iota
	Stopped
	StopFailed
)

func (r Result) String() string {
	switch r {
	case NotRunning:
		return "not-running"
	case Stopped:
		return "stopped"
	case StopFailed:
		return "stop-failed"
	default:
		return fmt.Sprintf("result(%d)", int(r))
	}
}

// Step is one shutdown action. Steps are independent: a step never inspects
// another step's outcome.
type Step interface {
	Name() string
	Run(ctx context.Context) Result
}

// zlog is an optional structured logger for diagnostics. Console contract
// lines go to the sequence writer, never through here.
var zlog *zerolog.Logger

// SetLogger installs a structured logger used by the shutdown steps.
func SetLogger(l zerolog.Logger) { zlog = &l }

func warnf(step, format string, a ...any) {
	if zlog == nil {
		return
	}
	zlog.Warn().Str("step", step).Msgf(format, a...)
}

// StepResult pairs a step with its outcome, in execution order.
type StepResult struct {
	Name   string
	Result Result
}

// Summary aggregates the per-step results of one sequence run.
type Summary struct {
	Steps []StepResult
}

// Failed reports whether any step could not dispatch its stop action.
func (s Summary) Failed() bool {
	for _, sr := range s.Steps {
		if sr.Result == StopFailed {
			return true
		}
	}
	return false
}

// ExitCode maps the summary onto a process exit code. Finding nothing to
// stop is still success; only a failed dispatch is reported upward.
func (s Summary) ExitCode() int {
	if s.Failed() {
		return 1
	}
	return 0
}

// Sequence runs its steps strictly in order, writing the console contract
// lines to Out.
type Sequence struct {
	Steps []Step
	Out   io.Writer
}

// New assembles the standard sequence (app server, fallback dev server,
// cache daemon) against the given process table.
func New(table proctable.Table, out io.Writer) *Sequence {
	return &Sequence{
		Out: out,
		Steps: []Step{
			&ServerStopper{Component: stack.AppServer, Table: table, Out: out},
			&ServerStopper{Component: stack.FallbackServer, Table: table, Out: out, QuietWhenAbsent: true},
			NewCacheStopper(table, out),
		},
	}
}

// Run executes every step in order, regardless of earlier outcomes, and
// returns the aggregated summary.
func (s *Sequence) Run(ctx context.Context) Summary {
	fmt.Fprintln(s.Out, "== image host dev stack: shutdown ==")
	sum := Summary{Steps: make([]StepResult, 0, len(s.Steps))}
	for _, st := range s.Steps {
		res := st.Run(ctx)
		sum.Steps = append(sum.Steps, StepResult{Name: st.Name(), Result: res})
	}
	return sum
}
