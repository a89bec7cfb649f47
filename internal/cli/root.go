// Package cli implements the cookiejar command-line interface.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/cookiejar/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	capacity  string
	marker    string
	ids       string
	logLevel  string
	jsonMode  bool
	noColor   bool
}

// app carries the per-invocation state shared by the subcommands.
type app struct {
	flags rootFlags
	cfg   types.Config
}

// NewRootCmd creates the top-level "cookiejar" command with global flags
// and all subcommands registered. Without a subcommand it starts the shell.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "cookiejar",
		Short: "A capacity-bounded jar of typed cookies",
		Long: `Cookiejar keeps cookies of five fixed types in a jar of limited capacity.
Deposits append to the jar; an unfiltered withdrawal takes the newest cookie
and a filtered withdrawal takes the oldest cookie of the requested type.`,
		Version: Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:      true,
		PersistentPreRunE: a.loadSettings,
		RunE:              a.runShell,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	pf.StringVar(&a.flags.capacity, "capacity", "", "jar capacity (default 12)")
	pf.StringVar(&a.flags.marker, "marker", "", "glyph drawn once per cookie")
	pf.StringVar(&a.flags.ids, "ids", "", "cookie id scheme: sequence or uuid")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	pf.BoolVar(&a.flags.noColor, "no-color", false, "disable coloured output")

	root.AddCommand(a.newShellCmd())
	root.AddCommand(a.newDemoCmd())
	root.AddCommand(a.newTypesCmd())
	root.AddCommand(a.newConfigCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// sysError marks a failure of the environment rather than of the user's
// input: an unreadable config directory, a broken stdin or stdout.
type sysError struct {
	err error
}

func (e *sysError) Error() string { return e.err.Error() }
func (e *sysError) Unwrap() error { return e.err }

// sysErr wraps err as a system error. A nil err stays nil.
func sysErr(err error) error {
	if err == nil {
		return nil
	}
	return &sysError{err: err}
}

// exitCode maps a command error to a process exit code. Errors marked with
// sysErr are system errors; everything else, including cobra's argument and
// flag errors, is a user error.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se *sysError
	if errors.As(err, &se) {
		return exitSysError
	}
	return exitUserError
}

// printJSONOrText writes v as indented JSON in JSON mode and text otherwise.
func (a *app) printJSONOrText(w io.Writer, v any, text string) error {
	if a.flags.jsonMode {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return sysErr(enc.Encode(v))
	}
	_, err := fmt.Fprintln(w, text)
	return sysErr(err)
}
