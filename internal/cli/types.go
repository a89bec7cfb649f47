package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/cookiejar/pkg/types"
)

func (a *app) newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the cookie types a jar accepts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all := types.CookieTypes()
			names := make([]string, len(all))
			for i, t := range all {
				names[i] = t.String()
			}
			return a.printJSONOrText(cmd.OutOrStdout(), names, strings.Join(names, "\n"))
		},
	}
}
