package parser

import (
	"strings"
	"testing"
)

func TestPDFParser_Invalid(t *testing.T) {
	p := &PDFParser{}
	if _, err := p.Parse(strings.NewReader("%PDF-garbage"), "bad.pdf"); err == nil {
		t.Fatal("expected error for invalid pdf")
	}
}

func TestSplitPagesAndLines(t *testing.T) {
	pages := splitPages("one\n  two  \n\nthree\fsecond page")
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(pages))
	}
	if got := pageLines(pages[0]); got != "one\ntwo\nthree" {
		t.Errorf("expected trimmed lines, got %q", got)
	}
	if got := pageLines("   \n\t\n"); got != "" {
		t.Errorf("expected empty page, got %q", got)
	}
}
