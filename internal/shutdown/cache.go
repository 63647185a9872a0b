package shutdown

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"stackctl/internal/executil"
	"stackctl/internal/proctable"
	"stackctl/internal/stack"
)

// GracefulTool is one admin-client candidate for asking the cache daemon to
// shut itself down.
type GracefulTool struct {
	Name string
	Args []string
}

// CacheStopper stops the cache daemon, preferring a graceful admin-client
// shutdown over a raw signal. Candidates are probed on PATH in order; the
// first one present wins, and the forced signal is only the last resort.
//
// Completion is reported as soon as the chosen action has been dispatched
// successfully. Whether the daemon actually exits is not checked.
type CacheStopper struct {
	Component stack.Component
	Table     proctable.Table
	Tools     []GracefulTool
	Out       io.Writer

	// Indirection for tests.
	lookPath func(string) (string, error)
	runTool  func(context.Context, executil.Cmd) error
}

// NewCacheStopper builds the standard cache step: redis-cli first, then
// valkey-cli, then SIGTERM.
func NewCacheStopper(table proctable.Table, out io.Writer) *CacheStopper {
	return &CacheStopper{
		Component: stack.Cache,
		Table:     table,
		Out:       out,
		Tools: []GracefulTool{
			{Name: stack.CacheCLIPrimary, Args: stack.CacheShutdownArgs},
			{Name: stack.CacheCLISecondary, Args: stack.CacheShutdownArgs},
		},
		lookPath: exec.LookPath,
		runTool:  executil.Run,
	}
}

func (c *CacheStopper) Name() string { return c.Component.ID }

func (c *CacheStopper) Run(ctx context.Context) Result {
	name := c.Component.DisplayName
	procs, err := c.Table.FindByPattern(ctx, c.Component.Pattern)
	if err != nil {
		warnf(c.Name(), "process table check failed: %v", err)
		fmt.Fprintf(c.Out, "%s: could not check process table\n", name)
		return StopFailed
	}
	if len(procs) == 0 {
		fmt.Fprintf(c.Out, "%s is not running\n", name)
		return NotRunning
	}

	for _, tool := range c.Tools {
		path, lerr := c.lookPath(tool.Name)
		if lerr != nil {
			continue
		}
		fmt.Fprintf(c.Out, "stopping %s via %s shutdown ...\n", name, tool.Name)
		if rerr := c.runTool(ctx, executil.Cmd{Path: path, Args: tool.Args}); rerr != nil {
			warnf(c.Name(), "%s shutdown failed: %v", tool.Name, rerr)
			fmt.Fprintf(c.Out, "%s: %s shutdown failed: %v\n", name, tool.Name, rerr)
			return StopFailed
		}
		fmt.Fprintf(c.Out, "%s stopped\n", name)
		return Stopped
	}

	// No admin client available: fall back to a raw signal.
	fmt.Fprintf(c.Out, "stopping %s (no admin client on PATH, sending TERM) ...\n", name)
	if serr := c.Table.SignalByPattern(ctx, c.Component.Pattern, proctable.SIGTERM); serr != nil {
		warnf(c.Name(), "signal dispatch failed: %v", serr)
		fmt.Fprintf(c.Out, "%s: failed to signal: %v\n", name, serr)
		return StopFailed
	}
	fmt.Fprintf(c.Out, "%s stopped\n", name)
	return Stopped
}
