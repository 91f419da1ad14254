// Package cmd implements the notegen command line.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dgallion1/notegen/internal/config"
	"github.com/spf13/cobra"
)

// Execute runs the root command, printing any error to stderr.
func Execute(version string) error {
	root := NewRootCmd()
	root.Version = version
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "error:", err)
		return err
	}
	return nil
}

// options are the flags shared by all subcommands, layered over the
// environment configuration.
type options struct {
	cfg     config.Config
	verbose bool
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{cfg: config.Load()}

	rootCmd := &cobra.Command{
		Use:           "notegen",
		Short:         "Turn marked-up notes into styled Word documents",
		Long:          "notegen reads notes written as \"# ... #\" markup lines and writes a styled .docx with a table of contents.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfg.DefaultFont, "font", opts.cfg.DefaultFont, "Typeface for every run")
	rootCmd.PersistentFlags().StringVar(&opts.cfg.SofficePath, "soffice", opts.cfg.SofficePath, "LibreOffice binary used for PDF conversion")
	rootCmd.PersistentFlags().DurationVar(&opts.cfg.ConvertTimeout, "convert-timeout", opts.cfg.ConvertTimeout, "Timeout for one PDF conversion")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log progress to stderr")

	rootCmd.AddCommand(
		newGenerateCmd(opts),
		newConvertCmd(opts),
		newDeleteCmd(),
		newClassifyCmd(),
	)
	return rootCmd
}

func (o *options) logger(cmd *cobra.Command) *slog.Logger {
	if !o.verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
}

// readInput reads the named file, or stdin for "" and "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}
