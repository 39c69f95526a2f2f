package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/roster/internal/command"
)

func (a *app) newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every contact, event, and participation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, command.Clear{}, listNone)
		},
	}
}
