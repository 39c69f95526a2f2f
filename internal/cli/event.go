package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/roster/internal/command"
	"github.com/mesh-intelligence/roster/pkg/types"
)

func (a *app) newEventCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Manage events",
	}
	cmd.AddCommand(
		a.newEventAddCmd(),
		a.newEventEditCmd(),
		&cobra.Command{
			Use:   "delete <name>",
			Short: "Delete an event and all of its participants",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.run(cmd, command.DeleteEvent{ID: types.NewEventID(args[0])}, listNone)
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List every event",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.run(cmd, command.ListEvents{}, listEvents)
			},
		},
		a.newEventFindCmd(),
		&cobra.Command{
			Use:   "show <name>",
			Short: "Show one event and its participants",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.run(cmd, command.ShowEvent{ID: types.NewEventID(args[0])}, listEvents)
			},
		},
	)
	return cmd
}

// eventFlags are the attribute flags shared by add and edit.
type eventFlags struct {
	name, date, address, status string
	tags                        []string
}

func (f *eventFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "event name, the event's identity")
	cmd.Flags().StringVar(&f.date, "date", "", "date as YYYY-MM-DD")
	cmd.Flags().StringVar(&f.address, "address", "", "where the event takes place")
	cmd.Flags().StringVar(&f.status, "status", "", "free-text event status, e.g. planned")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "tag (repeatable)")
}

func (a *app) newEventAddCmd() *cobra.Command {
	var f eventFlags
	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add an event",
		Example: `  roster event add --name "Tea Party" --date 2026-05-04 --address "March Hare's house"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := command.ParseDate(f.date)
			if err != nil {
				return err
			}
			c := command.AddEvent{Event: types.Event{
				Name:    f.name,
				Date:    date,
				Address: f.address,
				Status:  f.status,
				Tags:    f.tags,
			}}
			return a.run(cmd, c, listNone)
		},
	}
	f.register(cmd)
	cmd.MarkFlagRequired("name")
	return cmd
}

func (a *app) newEventEditCmd() *cobra.Command {
	var f eventFlags
	var clearTags bool
	cmd := &cobra.Command{
		Use:   "edit <name>",
		Short: "Edit an event",
		Long: "Edit the event identified by <name>. Only the flags given are changed.\n" +
			"Renaming the event keeps all of its participants.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var edit command.EventEdit
			flags := cmd.Flags()
			if flags.Changed("name") {
				edit.Name = &f.name
			}
			if flags.Changed("date") {
				date, err := command.ParseDate(f.date)
				if err != nil {
					return err
				}
				edit.Date = &date
			}
			if flags.Changed("address") {
				edit.Address = &f.address
			}
			if flags.Changed("status") {
				edit.Status = &f.status
			}
			if flags.Changed("tag") || clearTags {
				edit.Tags = &f.tags
			}
			return a.run(cmd, command.EditEvent{ID: types.NewEventID(args[0]), Edit: edit}, listNone)
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVar(&clearTags, "clear-tags", false, "remove all tags (combine with --tag to replace them)")
	return cmd
}

func (a *app) newEventFindCmd() *cobra.Command {
	var tags []string
	cmd := &cobra.Command{
		Use:   "find [keyword...]",
		Short: "Find events by name word or tag",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, command.FindEvents{Keywords: args, Tags: tags}, listEvents)
		},
	}
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "required tag (repeatable)")
	return cmd
}
