package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/notegen/internal/doctree"
)

// Parser converts a source document into an outline.
type Parser interface {
	Parse(r io.Reader, filename string) (*doctree.DocTree, error)
}

// SupportedExtensions lists file extensions accepted as generation input.
var SupportedExtensions = map[string]bool{
	".txt":      true,
	".notes":    true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// Options tune individual parsers.
type Options struct {
	PDFFallbackPdftotext bool
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".notes":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

func trimExt(filename string, exts ...string) string {
	for _, ext := range exts {
		if strings.HasSuffix(strings.ToLower(filename), ext) {
			return filename[:len(filename)-len(ext)]
		}
	}
	return filename
}
