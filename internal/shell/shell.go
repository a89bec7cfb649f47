// Package shell implements the line-oriented command loop that drives a
// single cookie jar. Each input line is one command; a failed command prints
// its error and the loop carries on.
package shell

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"

	"github.com/mesh-intelligence/cookiejar/internal/logging"
	"github.com/mesh-intelligence/cookiejar/internal/metrics"
	"github.com/mesh-intelligence/cookiejar/pkg/types"
)

// Shell errors.
var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrUsage           = errors.New("usage")
	ErrMetricsDisabled = errors.New("metrics are not enabled")
)

// Options tunes a Shell. The zero value is usable.
type Options struct {
	// Marker is the glyph printed once per cookie by "show".
	// Empty means types.DefaultMarker.
	Marker string

	// JSON switches data-bearing commands to one JSON document per line.
	JSON bool

	// NoColor disables ANSI colours regardless of the terminal.
	NoColor bool

	// Prompt is printed before each line is read. Empty disables it.
	Prompt string

	// Logger receives one record per operation. Nil discards.
	Logger *slog.Logger

	// Metrics, when set, is updated after every command.
	Metrics *metrics.Recorder
}

// Shell drives one jar from text commands.
type Shell struct {
	jar     *types.Jar
	ids     types.IDGenerator
	out     io.Writer
	opts    Options
	log     *slog.Logger
	good    *color.Color
	bad     *color.Color
	prompt  *color.Color
	handler map[string]handlerFunc
}

type handlerFunc func(s *Shell, args []string) error

// New creates a Shell over jar, minting cookie identifiers from ids and
// writing to out.
func New(jar *types.Jar, ids types.IDGenerator, out io.Writer, opts Options) *Shell {
	if opts.Marker == "" {
		opts.Marker = types.DefaultMarker
	}
	log := opts.Logger
	if log == nil {
		log = logging.NewNop()
	}
	s := &Shell{
		jar:    jar,
		ids:    ids,
		out:    out,
		opts:   opts,
		log:    log,
		good:   color.New(color.FgGreen),
		bad:    color.New(color.FgRed),
		prompt: color.New(color.FgCyan, color.Bold),
	}
	if opts.NoColor {
		s.good.DisableColor()
		s.bad.DisableColor()
		s.prompt.DisableColor()
	}
	s.handler = commands()
	if opts.Metrics != nil {
		opts.Metrics.Observe(jar)
	}
	return s
}

// Run reads commands from in until EOF, a quit command, or ctx is done.
// Command failures are printed and do not stop the loop; Run returns only
// read and write errors and context cancellation.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.opts.Prompt != "" {
			if _, err := s.prompt.Fprint(s.out, s.opts.Prompt); err != nil {
				return err
			}
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		quit, err := s.Exec(scanner.Text())
		if err != nil {
			if _, werr := s.bad.Fprintf(s.out, "error: %s\n", err); werr != nil {
				return werr
			}
		}
		if quit {
			return nil
		}
	}
}

// Exec runs a single command line. It reports whether the line asked the
// shell to stop. Blank lines and lines starting with '#' are ignored.
func (s *Shell) Exec(line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return false, nil
	}
	name := strings.ToLower(fields[0])
	if name == "quit" || name == "exit" {
		return true, nil
	}
	h, ok := s.handler[name]
	if !ok {
		return false, fmt.Errorf("%w %q (try \"help\")", ErrUnknownCommand, fields[0])
	}
	err = h(s, fields[1:])
	if s.opts.Metrics != nil {
		if err != nil {
			s.opts.Metrics.Rejected(name, err)
		}
		s.opts.Metrics.Observe(s.jar)
	}
	return false, err
}

// emit writes v as a JSON line in JSON mode, or text otherwise.
func (s *Shell) emit(v any, text string) error {
	if s.opts.JSON {
		return json.NewEncoder(s.out).Encode(v)
	}
	_, err := fmt.Fprintln(s.out, text)
	return err
}
