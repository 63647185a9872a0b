package stackctl

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stackctl/internal/config"
	"stackctl/internal/proctable"
)

type fakeTable struct {
	procs     map[string][]proctable.Process
	signalErr error
	signals   []string
}

func (f *fakeTable) FindByPattern(_ context.Context, pattern string) ([]proctable.Process, error) {
	return f.procs[pattern], nil
}

func (f *fakeTable) SignalByPattern(_ context.Context, pattern string, _ proctable.Signal) error {
	f.signals = append(f.signals, pattern)
	return f.signalErr
}

func testApp(out *bytes.Buffer, ft proctable.Table) *app {
	return &app{out: out, newTable: func(config.Config) proctable.Table { return ft }}
}

func TestBareInvocationRunsShutdown(t *testing.T) {
	var out bytes.Buffer
	ft := &fakeTable{procs: map[string][]proctable.Process{}}
	a := testApp(&out, ft)

	if code := a.execute(nil); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	text := out.String()
	if !strings.Contains(text, "gunicorn is not running") {
		t.Errorf("missing app line:\n%s", text)
	}
	if !strings.Contains(text, "redis-server is not running") {
		t.Errorf("missing cache line:\n%s", text)
	}
	if len(ft.signals) != 0 {
		t.Errorf("no signal expected, got %v", ft.signals)
	}
}

func TestDownCommandSignalsRunningApp(t *testing.T) {
	var out bytes.Buffer
	ft := &fakeTable{procs: map[string][]proctable.Process{
		"gunicorn": {{PID: 321}},
	}}
	a := testApp(&out, ft)

	if code := a.execute([]string{"down"}); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if len(ft.signals) != 1 || ft.signals[0] != "gunicorn" {
		t.Fatalf("signals = %v, want [gunicorn]", ft.signals)
	}
	if !strings.Contains(out.String(), "gunicorn stopped") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestDownExitCodeOnDispatchFailure(t *testing.T) {
	var out bytes.Buffer
	ft := &fakeTable{
		procs:     map[string][]proctable.Process{"gunicorn": {{PID: 321}}},
		signalErr: errors.New("operation not permitted"),
	}
	a := testApp(&out, ft)

	if code := a.execute([]string{"down"}); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
}

func TestStatusCommand(t *testing.T) {
	var out bytes.Buffer
	ft := &fakeTable{procs: map[string][]proctable.Process{
		"redis-server": {{PID: 7}},
	}}
	a := testApp(&out, ft)

	if code := a.execute([]string{"status"}); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	text := out.String()
	if !strings.Contains(text, "cache") || !strings.Contains(text, "running  pids=[7]") {
		t.Errorf("missing cache status:\n%s", text)
	}
	if !strings.Contains(text, "fallback") || !strings.Contains(text, "stopped") {
		t.Errorf("missing fallback status:\n%s", text)
	}
}

func TestConfigFlag(t *testing.T) {
	d := t.TempDir()
	p := filepath.Join(d, "cfg.yaml")
	if err := os.WriteFile(p, []byte("addr: :7100\nlog_level: warn\n"), 0o644); err != nil {
		t.Fatalf("write cfg: %v", err)
	}
	var out bytes.Buffer
	a := testApp(&out, &fakeTable{procs: map[string][]proctable.Process{}})

	if code := a.execute([]string{"status", "--config", p}); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if a.cfg.Addr != ":7100" {
		t.Fatalf("config not loaded: %+v", a.cfg)
	}
}

func TestConfigFlagBadPath(t *testing.T) {
	var out bytes.Buffer
	a := testApp(&out, &fakeTable{})
	if code := a.execute([]string{"status", "--config", "/does/not/exist.yaml"}); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
}

func TestUnknownCommand(t *testing.T) {
	var out bytes.Buffer
	a := testApp(&out, &fakeTable{})
	if code := a.execute([]string{"frobnicate"}); code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
}

func TestResolveAddr(t *testing.T) {
	a := &app{}
	if got := a.resolveAddr(":1234"); got != ":1234" {
		t.Fatalf("flag addr: %s", got)
	}
	a.cfg.Addr = ":5678"
	if got := a.resolveAddr(""); got != ":5678" {
		t.Fatalf("config addr: %s", got)
	}
	a.cfg.Addr = ""
	if got := a.resolveAddr(""); got != defaultServeAddr {
		t.Fatalf("default addr: %s", got)
	}
}
