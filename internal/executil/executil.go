package executil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// Cmd describes one external command invocation.
type Cmd struct {
	Path string
	Args []string
	Env  map[string]string // additional env vars
	Dir  string            // working directory
}

func build(ctx context.Context, c Cmd) *exec.Cmd {
	cmd := exec.CommandContext(ctx, c.Path, c.Args...)
	if c.Dir != "" {
		cmd.Dir = c.Dir
	}
	// inherit environment
	cmd.Env = os.Environ()
	for k, v := range c.Env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}
	return cmd
}

// Run executes the command, discarding its output.
func Run(ctx context.Context, c Cmd) error {
	cmd := build(ctx, c)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run()
}

// Output executes the command and returns its stdout.
func Output(ctx context.Context, c Cmd) ([]byte, error) {
	return build(ctx, c).Output()
}

// ExitCode extracts the process exit status from an error returned by Run or
// Output. It returns -1 when err is nil or did not come from a process exit
// (e.g. the binary was not found).
func ExitCode(err error) int {
	if err == nil {
		return -1
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	return -1
}
