package executil

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
)

func TestOutputCapturesStdout(t *testing.T) {
	out, err := Output(context.Background(), Cmd{Path: "sh", Args: []string{"-c", "echo hello"}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := strings.TrimSpace(string(out)); got != "hello" {
		t.Fatalf("got %q, want hello", got)
	}
}

func TestRunPropagatesEnv(t *testing.T) {
	err := Run(context.Background(), Cmd{
		Path: "sh",
		Args: []string{"-c", `[ "$STACKCTL_TEST_VAR" = "1" ]`},
		Env:  map[string]string{"STACKCTL_TEST_VAR": "1"},
	})
	if err != nil {
		t.Fatalf("env var not visible to child: %v", err)
	}
}

func TestExitCode(t *testing.T) {
	err := Run(context.Background(), Cmd{Path: "sh", Args: []string{"-c", "exit 3"}})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := ExitCode(err); got != 3 {
		t.Fatalf("ExitCode = %d, want 3", got)
	}
	if got := ExitCode(nil); got != -1 {
		t.Fatalf("ExitCode(nil) = %d, want -1", got)
	}
	if got := ExitCode(errors.New("boom")); got != -1 {
		t.Fatalf("ExitCode(non-exec) = %d, want -1", got)
	}
	var ee *exec.Error
	_, lookErr := exec.LookPath("stackctl-no-such-binary")
	if !errors.As(lookErr, &ee) {
		t.Skip("lookpath error shape differs on this platform")
	}
	if got := ExitCode(lookErr); got != -1 {
		t.Fatalf("ExitCode(lookpath err) = %d, want -1", got)
	}
}
