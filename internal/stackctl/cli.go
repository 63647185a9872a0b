// Package stackctl is the CLI shell: command tree, config/log wiring, and
// exit-code plumbing around the shutdown sequence.
package stackctl

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"stackctl/internal/config"
	"stackctl/internal/proctable"
	"stackctl/internal/shutdown"
	"stackctl/internal/stack"
)

const defaultServeAddr = ":8090"

type app struct {
	cfg      config.Config
	out      io.Writer
	log      zerolog.Logger
	table    proctable.Table
	newTable func(config.Config) proctable.Table
	exitCode int
}

func defaultNewTable(cfg config.Config) proctable.Table {
	return proctable.WithTimeout(proctable.Pgrep{}, time.Duration(cfg.ExecTimeoutMS)*time.Millisecond)
}

func newApp() *app {
	return &app{out: os.Stdout, newTable: defaultNewTable}
}

// buildRootCmd constructs the Cobra command tree. Running the bare binary is
// the shutdown action itself; `down` is the explicit spelling.
func buildRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "stackctl",
		Short:         "Operate the local image-host dev stack (gunicorn, flask dev server, redis)",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDown(cmd.Context())
		},
	}
	root.PersistentFlags().String("config", envStr("STACKCTL_CONFIG", ""), "Optional config file (.yaml|.json|.toml); defaults STACKCTL_CONFIG")
	root.PersistentFlags().String("log-level", envStr("STACKCTL_LOG_LEVEL", ""), "Log level: debug|info|warn|error (defaults STACKCTL_LOG_LEVEL or info)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// cmd.Flag resolves inherited persistent flags on subcommands.
		if f := cmd.Flag("config"); f != nil && f.Value.String() != "" {
			cfg, err := config.Load(f.Value.String())
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a.cfg = cfg
		}
		var lvl string
		if f := cmd.Flag("log-level"); f != nil {
			lvl = f.Value.String()
		}
		if lvl == "" {
			lvl = a.cfg.LogLevel
		}
		a.log = setupLogging(lvl)
		a.table = a.newTable(a.cfg)
		return nil
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Stop the app server, the fallback dev server, and the cache daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDown(cmd.Context())
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show which stack processes are currently running",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStatus(cmd.Context())
		},
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Serve stack status over HTTP (/stack, /healthz, /metrics)",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			return a.runServe(addr)
		},
	}
	serve.Flags().String("addr", "", "Listen address (defaults to config addr or "+defaultServeAddr+")")

	root.AddCommand(down, status, serve)
	return root
}

// runDown executes the shutdown sequence. The per-step outcome is carried as
// the process exit code rather than a Go error: finding nothing to stop is
// success, only a failed dispatch is reported upward.
func (a *app) runDown(ctx context.Context) error {
	sum := shutdown.New(a.table, a.out).Run(ctx)
	a.exitCode = sum.ExitCode()
	for _, sr := range sum.Steps {
		a.log.Debug().Str("step", sr.Name).Stringer("result", sr.Result).Msg("step done")
	}
	if sum.Failed() {
		a.log.Error().Msg("one or more stop actions could not be dispatched")
	}
	return nil
}

func (a *app) runStatus(ctx context.Context) error {
	for _, st := range stack.Probe(ctx, a.table) {
		state := "stopped"
		if st.Running {
			state = fmt.Sprintf("running  pids=%v", st.PIDs)
		}
		fmt.Fprintf(a.out, "%-9s %-17s %s\n", st.ID, st.Name, state)
	}
	return nil
}

func (a *app) resolveAddr(flagAddr string) string {
	if flagAddr != "" {
		return flagAddr
	}
	if a.cfg.Addr != "" {
		return a.cfg.Addr
	}
	return defaultServeAddr
}

// MainWithArgs runs the CLI with explicit args and returns the exit code.
func MainWithArgs(args []string) int {
	a := newApp()
	return a.execute(args)
}

func (a *app) execute(args []string) int {
	if args == nil {
		// cobra falls back to os.Args on nil, which is wrong under `go test`.
		args = []string{}
	}
	root := buildRootCmd(a)
	root.SetArgs(args)
	root.SetOut(a.out)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return a.exitCode
}

// Main returns an exit code (0 for success, non-zero on error) for use by
// cmd/stackctl.
func Main() int { return MainWithArgs(os.Args[1:]) }
