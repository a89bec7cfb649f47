package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the cookiejar release.
const Version = "0.1.0"

const modulePath = "github.com/mesh-intelligence/cookiejar"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the cookiejar version",
		Args:  cobra.NoArgs,
		// Version needs no configuration.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "cookiejar v%s\nmodule: %s\n", Version, modulePath)
			return nil
		},
	}
}
