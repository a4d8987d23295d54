package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"contacts/internal/config"
	"contacts/internal/contacts"
	"contacts/internal/formatter"
	"contacts/internal/models"
	"contacts/internal/validator"
)

var errInvalidForm = errors.New("invalid contact")

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list [query]",
		Short: "List contacts, optionally filtered by name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			list, err := a.repository().List(cmd.Context(), query)
			if err != nil {
				return a.fail(err)
			}

			if a.jsonOutput {
				return a.printJSON(map[string]any{"contacts": list, "q": query})
			}

			_, err = fmt.Fprint(a.out, formatter.ContactsTable(list))

			return err
		},
	}
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.repository().Get(cmd.Context(), args[0])
			if err != nil {
				return a.fail(err)
			}

			return a.printContact(c)
		},
	}
}

func newCreateCmd(a *app) *cobra.Command {
	var fields mutationFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a contact",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m := fields.mutation(cmd)

			if res := validator.ValidateContactForm(m); !res.Valid {
				for _, name := range []string{"avatar", "first", "last", "twitter"} {
					for _, msg := range res.FieldErrors[name] {
						fmt.Fprintf(a.errOut, "  --%s: %s\n", name, msg)
					}
				}

				return a.fail(fmt.Errorf("%w: %s", errInvalidForm, res.Message))
			}

			c, err := a.repository().Create(cmd.Context(), m)
			if err != nil {
				return a.fail(err)
			}

			return a.printContact(c)
		},
	}

	fields.register(cmd)
	cmd.Flags().StringVar(&fields.id, "id", "", "Contact id (assigned by the CMS when omitted)")

	return cmd
}

func newUpdateCmd(a *app) *cobra.Command {
	var fields mutationFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the given fields of a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := fields.mutation(cmd)
			if m.IsEmpty() {
				return a.fail(errors.New("nothing to update: set at least one field flag"))
			}

			res := contacts.NewUpdateResult(a.repository().Update(cmd.Context(), args[0], m))
			if res.Failed() {
				return a.fail(errors.New(res.Error))
			}

			return a.printContact(res.Contact)
		},
	}

	fields.register(cmd)

	return cmd
}

func newDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a contact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.repository().Delete(cmd.Context(), args[0]); err != nil {
				return a.fail(err)
			}

			_, err := fmt.Fprintf(a.out, "Deleted %s\n", args[0])

			return err
		},
	}
}

func newFavoriteCmd(a *app) *cobra.Command {
	var off bool

	cmd := &cobra.Command{
		Use:   "favorite <id>",
		Short: "Mark a contact as favorite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.repository().SetFavorite(cmd.Context(), args[0], !off)
			if err != nil {
				return a.fail(err)
			}

			return a.printContact(c)
		},
	}

	cmd.Flags().BoolVar(&off, "off", false, "Clear the favorite flag instead")

	return cmd
}

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the reference set of contacts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res := a.repository().Seed(cmd.Context(), contacts.ReferenceContacts())

			fmt.Fprintf(a.out, "Seeded %d contacts\n", len(res.Created))

			if err := res.Err(); err != nil {
				return a.fail(fmt.Errorf("%d seeds failed: %w", len(res.Errors), err))
			}

			return nil
		},
	}
}

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create configuration files",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "init <path>",
			Short: "Write the default configuration to path",
			Args:  cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				if err := config.Default().SaveConfig(args[0]); err != nil {
					return a.fail(err)
				}

				_, err := fmt.Fprintf(a.out, "Wrote %s\n", args[0])

				return err
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the resolved configuration",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				_, err := fmt.Fprintln(a.out, a.cfg.String())
				return err
			},
		},
	)

	return cmd
}

func (a *app) printContact(c *models.Contact) error {
	if a.jsonOutput {
		return a.printJSON(c)
	}

	_, err := fmt.Fprint(a.out, formatter.ContactDetail(*c))

	return err
}

// mutationFlags binds the writable contact fields to flags. Only flags the
// user set end up in the mutation.
type mutationFlags struct {
	id, first, last, avatar, twitter, notes string
	favorite                                bool
}

func (f *mutationFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.first, "first", "", "First name")
	flags.StringVar(&f.last, "last", "", "Last name")
	flags.StringVar(&f.avatar, "avatar", "", "Avatar URL")
	flags.StringVar(&f.twitter, "twitter", "", "Twitter handle")
	flags.StringVar(&f.notes, "notes", "", "Free form notes")
	flags.BoolVar(&f.favorite, "favorite", false, "Favorite flag")
}

func (f *mutationFlags) mutation(cmd *cobra.Command) models.ContactMutation {
	var m models.ContactMutation

	changed := cmd.Flags().Changed

	if changed("id") {
		m.ID = models.String(f.id)
	}

	if changed("first") {
		m.First = models.String(f.first)
	}

	if changed("last") {
		m.Last = models.String(f.last)
	}

	if changed("avatar") {
		m.Avatar = models.String(f.avatar)
	}

	if changed("twitter") {
		m.Twitter = models.String(f.twitter)
	}

	if changed("notes") {
		m.Notes = models.String(f.notes)
	}

	if changed("favorite") {
		m.Favorite = models.Bool(f.favorite)
	}

	return m
}
