package cmd

import (
	"fmt"

	"github.com/dgallion1/notegen/internal/convert"
	"github.com/spf13/cobra"
)

func newConvertCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <docx>",
		Short: "Convert a generated .docx to PDF next to it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conv := convert.New(opts.cfg.SofficePath, opts.cfg.ConvertTimeout, opts.logger(cmd))
			pdfPath, err := conv.Convert(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", pdfPath)
			return nil
		},
	}
}
