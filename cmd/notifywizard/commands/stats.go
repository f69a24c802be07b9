package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func statsCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show how many notifications were sent from this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := get().tracker.Load(cmd.Context())
			if err != nil {
				return err
			}
			last := "never"
			if s.LastSentAt != nil {
				last = s.LastSentAt.Local().Format(time.DateTime)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, field("Total sent", fmt.Sprint(s.TotalSent)))
			fmt.Fprintln(out, field("Last sent", last))
			return nil
		},
	}
}
