package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/dgallion1/notegen/internal/markup"
	"github.com/spf13/cobra"
)

func newClassifyCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Show how each markup line is read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, input)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for i, line := range markup.Lines(string(data)) {
				c, ok := markup.Classify(line)
				if !ok {
					if line != "" {
						fmt.Fprintf(tw, "%d\tignored\t%s\n", i+1, line)
					}
					continue
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, c.Kind, c.Text)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "Input file (default stdin)")
	return cmd
}
