package commands

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func pingCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the store and the notification service are reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := get()
			if a.storeCheck != nil {
				if err := a.storeCheck(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("OK"), "store "+a.cfg.Store)
			}
			api, err := a.requireAPI()
			if err != nil {
				return err
			}
			res, err := api.Ping(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("OK"),
				fmt.Sprintf("%d custom template(s) in %s", res.TemplateCount, res.Latency.Round(time.Millisecond)))
			return nil
		},
	}
}

func loginCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "login [token]",
		Short: "Store the bearer credential (reads stdin when no argument is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token := ""
			if len(args) == 1 {
				token = args[0]
			} else {
				sc := bufio.NewScanner(cmd.InOrStdin())
				if sc.Scan() {
					token = sc.Text()
				}
				if err := sc.Err(); err != nil {
					return err
				}
			}

			a := get()
			if err := a.creds.Save(cmd.Context(), strings.TrimSpace(token)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Credential saved."))
			if a.api != nil {
				verifyLogin(cmd.Context(), cmd, a)
			}
			return nil
		},
	}
}

// verifyLogin reports, without failing, whether the service accepts the new credential.
func verifyLogin(ctx context.Context, cmd *cobra.Command, a *app) {
	if _, err := a.api.Ping(ctx); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), warnStyle.Render("warning: the service did not accept the credential: "+err.Error()))
	}
}

func logoutCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored bearer credential",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := get().creds.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}
