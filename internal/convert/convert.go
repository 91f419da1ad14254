// Package convert turns generated .docx files into PDFs with a headless
// LibreOffice.
package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	pdflib "github.com/ledongthuc/pdf"
)

// ConversionError reports a failed PDF conversion. Retryable is set when
// the converter ran out of time.
type ConversionError struct {
	Path      string
	Retryable bool
	Err       error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert %s to pdf: %v", filepath.Base(e.Path), e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// Converter runs soffice. The zero value is not usable; see New.
type Converter struct {
	bin     string
	timeout time.Duration
	log     *slog.Logger
}

// New returns a converter running bin with the given per-call timeout.
func New(bin string, timeout time.Duration, log *slog.Logger) *Converter {
	return &Converter{bin: bin, timeout: timeout, log: log}
}

// Convert writes a PDF next to docxPath and returns its path. The result is
// checked to open as a PDF with at least one page.
func (c *Converter) Convert(ctx context.Context, docxPath string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	dir := filepath.Dir(docxPath)
	pdfPath := strings.TrimSuffix(docxPath, filepath.Ext(docxPath)) + ".pdf"

	start := time.Now()
	cmd := exec.CommandContext(ctx, c.bin, "--headless", "--convert-to", "pdf", "--outdir", dir, docxPath)
	cmd.WaitDelay = time.Second
	out, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() != nil {
			return "", &ConversionError{Path: docxPath, Retryable: errors.Is(ctx.Err(), context.DeadlineExceeded), Err: ctx.Err()}
		}
		return "", &ConversionError{Path: docxPath, Err: fmt.Errorf("%s: %w: %s", c.bin, err, strings.TrimSpace(string(out)))}
	}

	pages, err := PageCount(pdfPath)
	if err != nil {
		return "", &ConversionError{Path: docxPath, Err: err}
	}
	if pages < 1 {
		return "", &ConversionError{Path: docxPath, Err: errors.New("pdf has no pages")}
	}

	c.log.Info("converted to pdf", "path", pdfPath, "pages", pages, "duration_ms", time.Since(start).Milliseconds())
	return pdfPath, nil
}

// PageCount opens a PDF and returns its number of pages.
func PageCount(path string) (int, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()
	return reader.NumPage(), nil
}
