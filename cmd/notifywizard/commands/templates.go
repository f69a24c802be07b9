package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/notifykit/pkg/catalog"
	"github.com/dmitrymomot/notifykit/pkg/sanitizer"
)

func templatesCmd(get func() *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"tpl"},
		Short:   "List and manage message templates",
	}
	cmd.AddCommand(
		templatesListCmd(get),
		templatesShowCmd(get),
		templatesCreateCmd(get),
		templatesUpdateCmd(get),
		templatesDeleteCmd(get),
	)
	return cmd
}

func templatesListCmd(get func() *app) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List built-in and custom templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			list, err := a.catalog.List(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(list))
			for _, t := range list {
				if category != "" && t.Category != category {
					continue
				}
				source := "custom"
				if a.local.Has(t.ID) {
					source = "built-in"
				}
				rows = append(rows, []string{t.ID, t.Name, t.Category, source, sanitizer.Preview(t.Subject, false, 48)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "NAME", "CATEGORY", "SOURCE", "SUBJECT"}, rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "only show templates of this category")
	return cmd
}

func templatesShowCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := get().catalog.FindByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render(t.Name))
			fmt.Fprintln(out, field("ID", t.ID))
			fmt.Fprintln(out, field("Category", t.Category))
			fmt.Fprintln(out, field("HTML", fmt.Sprint(t.IsHTML)))
			fmt.Fprintln(out, field("Subject", t.Subject))
			fmt.Fprintln(out)
			fmt.Fprintln(out, t.Message)
			return nil
		},
	}
}

type templateFlags struct {
	name        string
	subject     string
	message     string
	messageFile string
	html        bool
	category    string
	public      bool
}

func (f *templateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "display name")
	cmd.Flags().StringVar(&f.subject, "subject", "", "email subject")
	cmd.Flags().StringVar(&f.message, "message", "", "message body")
	cmd.Flags().StringVar(&f.messageFile, "message-file", "", "read the message body from a file")
	cmd.Flags().BoolVar(&f.html, "html", false, "message is HTML")
	cmd.Flags().StringVar(&f.category, "category", "", "one of: "+strings.Join(catalog.Categories(), ", "))
	cmd.Flags().BoolVar(&f.public, "public", false, "share with other staff members")
	cmd.MarkFlagsMutuallyExclusive("message", "message-file")
}

// apply copies the flags the user set onto t.
func (f *templateFlags) apply(cmd *cobra.Command, t *catalog.Template) error {
	changed := cmd.Flags().Changed
	if changed("name") {
		t.Name = f.name
	}
	if changed("subject") {
		t.Subject = f.subject
	}
	if changed("message") {
		t.Message = f.message
	}
	if f.messageFile != "" {
		body, err := os.ReadFile(f.messageFile)
		if err != nil {
			return fmt.Errorf("read message file: %w", err)
		}
		t.Message = string(body)
	}
	if changed("html") {
		t.IsHTML = f.html
	}
	if changed("category") {
		t.Category = f.category
	}
	if changed("public") {
		t.IsPublic = f.public
	}
	return nil
}

func templatesCreateCmd(get func() *app) *cobra.Command {
	var f templateFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a custom template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := get().manager()
			if err != nil {
				return err
			}
			var t catalog.Template
			if err := f.apply(cmd, &t); err != nil {
				return err
			}
			created, err := m.Create(cmd.Context(), t)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Created template "+created.ID))
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func templatesUpdateCmd(get func() *app) *cobra.Command {
	var f templateFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a custom template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			m, err := a.manager()
			if err != nil {
				return err
			}
			t, err := a.catalog.FindByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := f.apply(cmd, &t); err != nil {
				return err
			}
			updated, err := m.Update(cmd.Context(), t)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Updated template "+updated.ID))
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func templatesDeleteCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a custom template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := get().manager()
			if err != nil {
				return err
			}
			if err := m.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted template "+args[0])
			return nil
		},
	}
}
