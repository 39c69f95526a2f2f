package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/roster/internal/command"
	"github.com/mesh-intelligence/roster/pkg/types"
)

func (a *app) newParticipantCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "participant",
		Aliases: []string{"p"},
		Short:   "Manage who takes part in which event",
	}

	var status string
	add := &cobra.Command{
		Use:     "add <email> <event>",
		Short:   "Add a contact to an event",
		Example: `  roster participant add alice@example.com "Tea Party" --status available`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, command.AddParticipant{
				Contact: types.NewContactID(args[0]),
				Event:   types.NewEventID(args[1]),
				Status:  parseStatus(status),
			}, listNone)
		},
	}
	add.Flags().StringVar(&status, "status", string(types.StatusUnknown), "available, unavailable or unknown")

	cmd.AddCommand(
		add,
		&cobra.Command{
			Use:   "remove <email> <event>",
			Short: "Remove a contact from an event",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.run(cmd, command.RemoveParticipant{
					Contact: types.NewContactID(args[0]),
					Event:   types.NewEventID(args[1]),
				}, listNone)
			},
		},
		&cobra.Command{
			Use:   "status <email> <event> <status>",
			Short: "Set whether a participant can attend",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.run(cmd, command.SetParticipantStatus{
					Contact: types.NewContactID(args[0]),
					Event:   types.NewEventID(args[1]),
					Status:  parseStatus(args[2]),
				}, listNone)
			},
		},
	)
	return cmd
}

// parseStatus normalizes a status argument. Validation is left to the
// command so the user sees the catalog message.
func parseStatus(s string) types.ParticipantStatus {
	if st, err := types.ParseParticipantStatus(s); err == nil {
		return st
	}
	return types.ParticipantStatus(strings.TrimSpace(s))
}
