package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/notegen/internal/convert"
	"github.com/dgallion1/notegen/internal/docstore"
	"github.com/dgallion1/notegen/internal/parser"
	"github.com/dgallion1/notegen/internal/pipeline"
	"github.com/dgallion1/notegen/internal/render"
	"github.com/spf13/cobra"
)

func newGenerateCmd(opts *options) *cobra.Command {
	var (
		input   string
		output  string
		pdf     bool
		preview bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a .docx from notes markup",
		Long: `Reads notes markup from a file or stdin and writes a styled Word document.
Input files other than .txt and .notes (Markdown, HTML, DOCX, PDF) are
imported into markup first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, input)
			if err != nil {
				return err
			}
			req := pipeline.Request{Text: string(data)}
			if input != "" && input != "-" {
				req = pipeline.Request{Filename: filepath.Base(input), Data: data}
			}

			doc, err := pipeline.Prepare(req, parser.Options{PDFFallbackPdftotext: opts.cfg.PDFFallbackPdftotext})
			if err != nil {
				return err
			}

			output = outputPath(output)
			var buf bytes.Buffer
			if err := render.DOCX(&buf, doc.Nodes, render.Options{Font: opts.cfg.DefaultFont}); err != nil {
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d nodes, %d toc entries)\n", output, len(doc.Nodes), len(doc.TOC.Entries))

			if preview {
				page, err := render.HTML(strings.TrimSuffix(filepath.Base(output), ".docx"), doc.Nodes)
				if err != nil {
					return err
				}
				htmlPath := strings.TrimSuffix(output, ".docx") + ".html"
				if err := os.WriteFile(htmlPath, page, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", htmlPath, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", htmlPath)
			}

			if pdf {
				conv := convert.New(opts.cfg.SofficePath, opts.cfg.ConvertTimeout, opts.logger(cmd))
				pdfPath, err := conv.Convert(cmd.Context(), output)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", pdfPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Input file (default stdin)")
	cmd.Flags().StringVarP(&output, "output", "o", docstore.DefaultName+".docx", "Output .docx path")
	cmd.Flags().BoolVar(&pdf, "pdf", false, "Also convert the document to PDF")
	cmd.Flags().BoolVar(&preview, "preview", false, "Also write an HTML preview next to the document")
	return cmd
}

// outputPath applies the default name and the .docx extension.
func outputPath(p string) string {
	if p == "" {
		p = docstore.DefaultName
	}
	if !strings.EqualFold(filepath.Ext(p), ".docx") {
		p += ".docx"
	}
	return p
}
