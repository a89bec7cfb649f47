package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/cookiejar/internal/logging"
	"github.com/mesh-intelligence/cookiejar/internal/metrics"
	"github.com/mesh-intelligence/cookiejar/internal/shell"
	"github.com/mesh-intelligence/cookiejar/pkg/types"
)

const shellPrompt = "cookiejar> "

func (a *app) newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive jar shell",
		Long: `Shell reads one command per line from standard input and applies it to
a fresh jar. Type "help" for the command list and "quit" to leave.

Example:
  cookiejar shell --capacity 3
  printf 'deposit sugar 2\nwithdraw\nshow\n' | cookiejar shell`,
		Args: cobra.NoArgs,
		RunE: a.runShell,
	}
}

func (a *app) runShell(cmd *cobra.Command, args []string) error {
	in := cmd.InOrStdin()
	out := cmd.OutOrStdout()

	sh, err := a.newShell(out, cmd.ErrOrStderr(), isTerminal(in))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if err := sh.Run(ctx, in); err != nil && ctx.Err() == nil {
		return sysErr(fmt.Errorf("read commands: %w", err))
	}
	return nil
}

// newShell builds a jar and a shell over it from the loaded settings.
func (a *app) newShell(out, logOut io.Writer, interactive bool) (*shell.Shell, error) {
	jar, err := types.NewJar(a.cfg.Capacity)
	if err != nil {
		return nil, err
	}
	ids, err := types.NewIDGenerator(a.cfg.IDs)
	if err != nil {
		return nil, err
	}
	level, err := a.cfg.Level()
	if err != nil {
		return nil, err
	}

	opts := shell.Options{
		Marker:  a.cfg.Marker,
		JSON:    a.flags.jsonMode,
		NoColor: !a.cfg.Color,
		Logger:  logging.New(logOut, level),
		Metrics: metrics.NewRecorder(),
	}
	if interactive {
		opts.Prompt = shellPrompt
	}
	opts.Logger.Debug("jar ready", "capacity", jar.Capacity(), "ids", a.cfg.IDs, "log_level", level.String())
	return shell.New(jar, ids, out, opts), nil
}

// isTerminal reports whether r is a terminal-backed file.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
