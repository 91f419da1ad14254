package parser

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/dgallion1/notegen/internal/doctree"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFParser handles PDF files. It tries the Go library first,
// then falls back to pdftotext if enabled. PDFs carry no reliable
// outline, so every page becomes an untitled node of content lines.
type PDFParser struct {
	FallbackPdftotext bool
}

func (p *PDFParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "notegen-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	text, err := extractPDFText(tmpPath)
	if (err != nil || strings.TrimSpace(text) == "") && p.FallbackPdftotext {
		if alt, altErr := extractPdftotext(tmpPath); altErr == nil {
			text, err = alt, nil
		} else if err == nil {
			err = altErr
		}
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	tree := &doctree.DocTree{Title: trimExt(filename, ".pdf")}
	for i, page := range splitPages(text) {
		body := pageLines(page)
		if body == "" {
			continue
		}
		tree.Children = append(tree.Children, &doctree.DocNode{Text: body, Page: i + 1})
	}
	return tree, nil
}

func extractPDFText(path string) (string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		if i > 1 {
			buf.WriteString("\f") // Form feed as page separator.
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		buf.WriteString(text)
	}
	return buf.String(), nil
}

func extractPdftotext(path string) (string, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}

func splitPages(text string) []string {
	return strings.Split(text, "\f")
}

// pageLines trims every line of a page and drops the empty ones.
func pageLines(page string) string {
	var out []string
	for _, line := range strings.Split(page, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
