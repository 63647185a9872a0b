// Package stack describes the local image-host development stack: which
// processes make it up and how to recognize them in the process table.
package stack

import (
	"context"
	"sort"

	"stackctl/internal/proctable"
	"stackctl/pkg/types"
)

// Component is one member of the dev stack, matched by a fixed command-line
// substring. Patterns are deliberately not configurable.
type Component struct {
	ID          string
	DisplayName string
	Pattern     string
}

var (
	AppServer = Component{
		ID:          "app",
		DisplayName: "gunicorn",
		Pattern:     "gunicorn",
	}
	FallbackServer = Component{
		ID:          "fallback",
		DisplayName: "flask dev server",
		Pattern:     "flask run",
	}
	Cache = Component{
		ID:          "cache",
		DisplayName: "redis-server",
		Pattern:     "redis-server",
	}
)

// Components returns the stack members in their fixed shutdown order.
func Components() []Component {
	return []Component{AppServer, FallbackServer, Cache}
}

// Cache administrative clients, probed on PATH in this order. Both expose a
// "shutdown" subcommand that asks the daemon to exit gracefully.
const (
	CacheCLIPrimary   = "redis-cli"
	CacheCLISecondary = "valkey-cli"
)

// CacheShutdownArgs is the argument list for a graceful cache shutdown.
// nosave matches the dev workflow: the cache holds only throwaway data.
var CacheShutdownArgs = []string{"shutdown", "nosave"}

// Probe reports the live state of every component. Lookup errors degrade to
// "not running" rather than failing the whole probe: a status view should
// never be taken down by one bad pgrep invocation.
func Probe(ctx context.Context, table proctable.Table) []types.ComponentStatus {
	out := make([]types.ComponentStatus, 0, 3)
	for _, c := range Components() {
		procs, err := table.FindByPattern(ctx, c.Pattern)
		st := types.ComponentStatus{
			ID:      c.ID,
			Name:    c.DisplayName,
			Pattern: c.Pattern,
			Running: err == nil && len(procs) > 0,
		}
		for _, p := range procs {
			st.PIDs = append(st.PIDs, p.PID)
		}
		sort.Ints(st.PIDs)
		out = append(out, st)
	}
	return out
}
