package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/cookiejar/internal/logging"
	"github.com/mesh-intelligence/cookiejar/internal/shell"
	"github.com/mesh-intelligence/cookiejar/pkg/types"
)

// demoScenario is a scripted shell session against a fresh jar.
type demoScenario struct {
	title    string
	capacity int
	script   []string
}

var demoScenarios = []demoScenario{
	{
		title:    "newest first, then oldest of a type",
		capacity: 10,
		script: []string{
			"deposit chocolate chip 8",
			"size",
			"withdraw",
			"size",
			"withdraw chocolate chip",
			"size",
		},
	},
	{
		title:    "a full jar refuses deposits",
		capacity: 3,
		script: []string{
			"deposit sugar 3",
			"deposit sugar",
			"size",
			"show",
		},
	},
	{
		title:    "withdrawing a type the jar does not hold",
		capacity: 5,
		script: []string{
			"deposit peanut butter 2",
			"withdraw sugar",
			"size",
			"counts",
		},
	},
}

func (a *app) newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run scripted jar sessions",
		Long:  "Demo replays a few shell sessions against fresh jars, echoing each command before its output.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDemo(cmd.OutOrStdout())
		},
	}
}

func (a *app) runDemo(out io.Writer) error {
	for i, sc := range demoScenarios {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "## %s (capacity %d)\n", sc.title, sc.capacity)

		jar, err := types.NewJar(sc.capacity)
		if err != nil {
			return err
		}
		ids, err := types.NewIDGenerator(a.cfg.IDs)
		if err != nil {
			return err
		}
		sh := shell.New(jar, ids, out, shell.Options{
			Marker:  a.cfg.Marker,
			JSON:    a.flags.jsonMode,
			NoColor: !a.cfg.Color,
			Logger:  logging.NewNop(),
		})
		for _, line := range sc.script {
			fmt.Fprintf(out, "$ %s\n", line)
			if _, err := sh.Exec(line); err != nil {
				fmt.Fprintf(out, "error: %s\n", err)
			}
		}
	}
	return nil
}
