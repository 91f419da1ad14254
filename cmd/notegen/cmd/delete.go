package cmd

import (
	"fmt"

	"github.com/dgallion1/notegen/internal/docstore"
	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <docx>",
		Short: "Delete a generated document and its PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := docstore.DeleteFiles(outputPath(args[0])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", outputPath(args[0]))
			return nil
		},
	}
}
