package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/roster/internal/command"
	"github.com/mesh-intelligence/roster/pkg/types"
)

func (a *app) newContactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Manage contacts",
	}
	cmd.AddCommand(
		a.newContactAddCmd(),
		a.newContactEditCmd(),
		a.newContactDeleteCmd(),
		&cobra.Command{
			Use:   "list",
			Short: "List every contact",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.run(cmd, command.ListContacts{}, listContacts)
			},
		},
		a.newContactFindCmd(),
		&cobra.Command{
			Use:   "show <email>",
			Short: "Show one contact and the events they take part in",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.run(cmd, command.ShowContact{ID: types.NewContactID(args[0])}, listContacts)
			},
		},
	)
	return cmd
}

// contactFlags are the attribute flags shared by add and edit.
type contactFlags struct {
	name, email, phone, address string
	tags                        []string
}

func (f *contactFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "full name")
	cmd.Flags().StringVar(&f.email, "email", "", "email address, the contact's identity")
	cmd.Flags().StringVar(&f.phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&f.address, "address", "", "postal address")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "tag (repeatable)")
}

func (a *app) newContactAddCmd() *cobra.Command {
	var f contactFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a contact",
		Example: `  roster contact add --name "Alice Liddell" --email alice@example.com --tag friend
  roster contact add --name Bob --email bob@example.com --phone 555-0100`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := command.AddContact{Contact: types.Contact{
				Name:    f.name,
				Email:   f.email,
				Phone:   f.phone,
				Address: f.address,
				Tags:    f.tags,
			}}
			return a.run(cmd, c, listNone)
		},
	}
	f.register(cmd)
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")
	return cmd
}

func (a *app) newContactEditCmd() *cobra.Command {
	var f contactFlags
	var clearTags bool
	cmd := &cobra.Command{
		Use:   "edit <email>",
		Short: "Edit a contact",
		Long: "Edit the contact identified by <email>. Only the flags given are changed.\n" +
			"Changing --email moves every participation of the contact to the new email.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var edit command.ContactEdit
			flags := cmd.Flags()
			if flags.Changed("name") {
				edit.Name = &f.name
			}
			if flags.Changed("email") {
				edit.Email = &f.email
			}
			if flags.Changed("phone") {
				edit.Phone = &f.phone
			}
			if flags.Changed("address") {
				edit.Address = &f.address
			}
			if flags.Changed("tag") || clearTags {
				edit.Tags = &f.tags
			}
			return a.run(cmd, command.EditContact{ID: types.NewContactID(args[0]), Edit: edit}, listNone)
		},
	}
	f.register(cmd)
	cmd.Flags().BoolVar(&clearTags, "clear-tags", false, "remove all tags (combine with --tag to replace them)")
	return cmd
}

func (a *app) newContactDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <email>",
		Short: "Delete a contact and all of their participations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, command.DeleteContact{ID: types.NewContactID(args[0])}, listNone)
		},
	}
}

func (a *app) newContactFindCmd() *cobra.Command {
	var tags []string
	cmd := &cobra.Command{
		Use:   "find [keyword...]",
		Short: "Find contacts by name word, email, or tag",
		Long: "Find contacts where any keyword matches a word of the name, the email,\n" +
			"or a tag. Every --tag given must also be present.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, command.FindContacts{Keywords: args, Tags: tags}, listContacts)
		},
	}
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "required tag (repeatable)")
	return cmd
}
