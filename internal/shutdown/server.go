package shutdown

import (
	"context"
	"fmt"
	"io"

	"stackctl/internal/proctable"
	"stackctl/internal/stack"
)

// ServerStopper stops a server component by sending SIGTERM to every process
// matching its pattern. It covers both the app server and the fallback dev
// server; the latter sets QuietWhenAbsent because not having a manually
// started dev server around is the normal case and not worth a line.
type ServerStopper struct {
	Component       stack.Component
	Table           proctable.Table
	Out             io.Writer
	QuietWhenAbsent bool
}

func (s *ServerStopper) Name() string { return s.Component.ID }

func (s *ServerStopper) Run(ctx context.Context) Result {
	name := s.Component.DisplayName
	procs, err := s.Table.FindByPattern(ctx, s.Component.Pattern)
	if err != nil {
		warnf(s.Name(), "process table check failed: %v", err)
		fmt.Fprintf(s.Out, "%s: could not check process table\n", name)
		return StopFailed
	}
	if len(procs) == 0 {
		if !s.QuietWhenAbsent {
			fmt.Fprintf(s.Out, "%s is not running\n", name)
		}
		return NotRunning
	}
	fmt.Fprintf(s.Out, "stopping %s ...\n", name)
	if err := s.Table.SignalByPattern(ctx, s.Component.Pattern, proctable.SIGTERM); err != nil {
		warnf(s.Name(), "signal dispatch failed: %v", err)
		fmt.Fprintf(s.Out, "%s: failed to signal: %v\n", name, err)
		return StopFailed
	}
	fmt.Fprintf(s.Out, "%s stopped\n", name)
	return Stopped
}
