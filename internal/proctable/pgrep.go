package proctable

import (
	"context"
	"strconv"
	"strings"

	"stackctl/internal/executil"
)

// Pgrep is the real Table, backed by the pgrep/pkill utilities. The zero
// value is ready to use.
type Pgrep struct{}

// pgrep and pkill exit 1 when no process matched; that is a presence answer,
// not a failure.
const noMatchExit = 1

func (Pgrep) FindByPattern(ctx context.Context, pattern string) ([]Process, error) {
	// -a lists the full command line next to each pid.
	out, err := executil.Output(ctx, executil.Cmd{Path: "pgrep", Args: []string{"-a", "-f", pattern}})
	if err != nil {
		if executil.ExitCode(err) == noMatchExit {
			return nil, nil
		}
		return nil, err
	}
	var procs []Process
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		pidStr, cmdline, _ := strings.Cut(line, " ")
		pid, perr := strconv.Atoi(pidStr)
		if perr != nil {
			continue
		}
		procs = append(procs, Process{PID: pid, Command: cmdline})
	}
	return procs, nil
}

func (Pgrep) SignalByPattern(ctx context.Context, pattern string, sig Signal) error {
	err := executil.Run(ctx, executil.Cmd{Path: "pkill", Args: []string{"-" + string(sig), "-f", pattern}})
	if err != nil && executil.ExitCode(err) == noMatchExit {
		return nil
	}
	return err
}
