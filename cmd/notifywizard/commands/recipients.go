package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/notifykit/pkg/recipient"
)

func recipientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipients",
		Short: "Work with recipient lists",
	}

	extract := &cobra.Command{
		Use:   "extract <file>...",
		Short: "Print the unique email addresses found in files",
		Long: `Reads .csv, .xlsx or free-text files (use - for stdin), collects every
email address, drops duplicates and prints one address per line.`,
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{annotationOffline: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rc := recipient.NewCollector()
			for _, path := range args {
				n, err := importFile(cmd, rc, path)
				if err != nil {
					fmt.Fprintln(cmd.ErrOrStderr(), warnStyle.Render(err.Error()))
					continue
				}
				fmt.Fprintln(cmd.ErrOrStderr(), labelStyle.Render(fmt.Sprintf("%s: %d new address(es)", path, n)))
			}

			text, err := rc.ExportAsText()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.AddCommand(extract)
	return cmd
}

// importFile feeds one file, or stdin for "-", into rc.
func importFile(cmd *cobra.Command, rc *recipient.Collector, path string) (int, error) {
	if path == "-" {
		n, err := rc.AddFromReader(cmd.InOrStdin(), "stdin.txt")
		if err != nil {
			return 0, fmt.Errorf("stdin: %w", err)
		}
		return n, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", recipient.ErrReadFile, err)
	}
	n, err := rc.AddFromFile(content, filepath.Base(path))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}
