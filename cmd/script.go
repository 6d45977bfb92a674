package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskflow/script"
)

func scriptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "script",
		Short: "Work with edit scripts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "example",
		Short: "Print an example edit script",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return script.Example().Encode(cmd.OutOrStdout())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "check <file>...",
		Short: "Validate edit scripts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var failed []string
			for _, path := range args {
				s, err := script.Load(path)
				if err != nil {
					Bad.Fprintf(cmd.ErrOrStderr(), "  ✗ %v\n", err)
					failed = append(failed, path)
					continue
				}
				Good.Fprintf(cmd.OutOrStdout(), "  ✓ %s (%d steps)\n", path, len(s.Steps))
			}
			if len(failed) > 0 {
				return fmt.Errorf("%d invalid script(s): %s", len(failed), strings.Join(failed, ", "))
			}
			return nil
		},
	})

	return cmd
}
