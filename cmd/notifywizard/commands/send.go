package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/notifykit/pkg/wizard"
)

type sendFlags struct {
	template    string
	to          []string
	files       []string
	groups      []string
	users       []string
	subject     string
	message     string
	messageFile string
	html        bool
	yes         bool
}

func sendCmd(get func() *app) *cobra.Command {
	var f sendFlags

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Walk the wizard and send a notification",
		Long: `Runs the four wizard steps in order: template, recipients, content, review.
Without --yes the review summary is printed and nothing is sent.`,
		Example: `  notifywizard send --template welcome --to ana@escola.edu.br --yes
  notifywizard send --file turma.csv --group teachers --subject "Reunião" --message "Sexta às 10h"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			w := a.newWizard()

			// Step 1: template.
			if err := w.ApplyTemplate(ctx, f.template); err != nil {
				return err
			}
			if f.template != "" && w.State().AppliedTemplateID == nil {
				fmt.Fprintln(out, warnStyle.Render(fmt.Sprintf("template %q not found, starting from a blank message", f.template)))
			}
			if err := w.Next(); err != nil {
				return err
			}

			// Step 2: recipients.
			if err := addRecipients(cmd, w, f); err != nil {
				return err
			}
			if err := w.Next(); err != nil {
				return stepError(w, err)
			}

			// Step 3: content.
			if err := applyContent(cmd, w, f); err != nil {
				return err
			}
			if err := w.Next(); err != nil {
				return stepError(w, err)
			}

			// Step 4: review.
			sum := w.Summary()
			lines := []string{
				titleStyle.Render("Review"),
				field("Subject", sum.Subject),
				field("Emails", fmt.Sprint(sum.EmailCount)),
				field("Groups", fmt.Sprint(sum.GroupCount)),
			}
			if sum.UserCount > 0 {
				lines = append(lines, field("Users", fmt.Sprint(sum.UserCount)))
			}
			if sum.TemplateID != "" {
				lines = append(lines, field("Template", sum.TemplateID))
			}
			format := "text"
			if sum.IsHTML {
				format = "html"
			}
			lines = append(lines, field("Format", format), field("Preview", sum.Preview))
			fmt.Fprintln(out, boxStyle.Render(strings.Join(lines, "\n")))
			fmt.Fprintln(out, sum.Confirmation())

			if !f.yes {
				fmt.Fprintln(out, warnStyle.Render("Not sent: re-run with --yes to dispatch."))
				return nil
			}

			outcome, err := w.Send(ctx)
			if err != nil {
				var sendErr *wizard.SendError
				if errors.As(err, &sendErr) {
					return fmt.Errorf("send failed: %s", sendErr.Message)
				}
				return err
			}
			fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("Sent to %d recipient(s)", outcome.Total)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.template, "template", "t", "", "template id to start from")
	cmd.Flags().StringArrayVar(&f.to, "to", nil, "recipient email (repeatable)")
	cmd.Flags().StringArrayVarP(&f.files, "file", "f", nil, "import recipients from a .csv, .xlsx or text file (repeatable, - for stdin)")
	cmd.Flags().StringArrayVar(&f.groups, "group", nil, "recipient group as key or key=label (repeatable)")
	cmd.Flags().StringArrayVar(&f.users, "user", nil, "recipient user as id or id=label (repeatable)")
	cmd.Flags().StringVarP(&f.subject, "subject", "s", "", "subject, overrides the template")
	cmd.Flags().StringVarP(&f.message, "message", "m", "", "message body, overrides the template")
	cmd.Flags().StringVar(&f.messageFile, "message-file", "", "read the message body from a file")
	cmd.Flags().BoolVar(&f.html, "html", false, "treat the message as HTML")
	cmd.Flags().BoolVarP(&f.yes, "yes", "y", false, "dispatch without asking")
	cmd.MarkFlagsMutuallyExclusive("message", "message-file")
	return cmd
}

func addRecipients(cmd *cobra.Command, w *wizard.Wizard, f sendFlags) error {
	rc := w.Recipients()
	for _, addr := range f.to {
		rc.SetInput(addr)
		if err := rc.AddInput(); err != nil {
			return fmt.Errorf("--to %s: %w", addr, err)
		}
	}
	for _, path := range f.files {
		if _, err := importFile(cmd, rc, path); err != nil {
			return err
		}
	}
	for _, g := range f.groups {
		key, label, _ := strings.Cut(g, "=")
		if err := rc.AddGroup(key, label); err != nil {
			return fmt.Errorf("--group %s: %w", g, err)
		}
	}
	for _, u := range f.users {
		id, label, _ := strings.Cut(u, "=")
		if err := rc.AddUser(id, label); err != nil {
			return fmt.Errorf("--user %s: %w", u, err)
		}
	}
	return nil
}

func applyContent(cmd *cobra.Command, w *wizard.Wizard, f sendFlags) error {
	if cmd.Flags().Changed("subject") {
		w.SetSubject(f.subject)
	}
	switch {
	case cmd.Flags().Changed("message"):
		w.SetMessage(f.message)
	case f.messageFile != "":
		body, err := os.ReadFile(f.messageFile)
		if err != nil {
			return fmt.Errorf("read message file: %w", err)
		}
		w.SetMessage(string(body))
	}
	if cmd.Flags().Changed("html") {
		w.SetHTML(f.html)
	}
	return nil
}

// stepError explains which requirement blocked a step.
func stepError(w *wizard.Wizard, err error) error {
	if !wizard.IsTransitionRejected(err) {
		return err
	}
	switch w.Step() {
	case wizard.StepRecipients:
		return errors.Join(wizard.ErrNoRecipients, err)
	case wizard.StepContent:
		return errors.Join(wizard.ErrMissingContent, err)
	}
	return err
}
