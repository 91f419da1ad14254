package parser

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/notegen/internal/doctree"
	"github.com/dgallion1/notegen/internal/markup"
)

// Import reads a source file and returns notes markup ready for the builder.
// Text files that already use the markup pass through untouched; everything
// else is parsed into an outline and rendered as markup.
func Import(r io.Reader, filename string, opts Options) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".txt" || ext == ".notes" {
		data, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", filename, err)
		}
		if HasMarkup(string(data)) {
			return string(data), nil
		}
		r = bytes.NewReader(data)
	}

	p, err := ForFile(filename, opts)
	if err != nil {
		return "", err
	}
	tree, err := p.Parse(r, filename)
	if err != nil {
		return "", err
	}
	return doctree.ToMarkup(tree), nil
}

// HasMarkup reports whether any line of text carries a markup envelope.
func HasMarkup(text string) bool {
	for _, line := range markup.Lines(text) {
		if _, ok := markup.Envelope(line); ok {
			return true
		}
	}
	return false
}
