package parser

import (
	"bytes"
	"testing"

	"github.com/fumiama/go-docx"
)

func buildDOCX(t *testing.T) *bytes.Buffer {
	t.Helper()
	doc := docx.New().WithDefaultTheme()
	doc.AddParagraph().AddText("Preface line.")
	doc.AddParagraph().Style("Heading1").AddText("Overview")
	doc.AddParagraph().AddText("Body text.")
	doc.AddParagraph().NumPr("1", "0").AddText("first item")
	doc.AddParagraph().NumPr("1", "1").AddText("nested item")
	doc.AddParagraph().AddLink("https://example.com", "https://example.com")
	doc.AddParagraph().Style("Heading2").AddText("Details")
	doc.AddParagraph().AddText("More text.")
	doc.AddParagraph().Style("Heading1").AddText("Second")

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		t.Fatalf("write docx: %v", err)
	}
	return &buf
}

func TestDOCXParser_Outline(t *testing.T) {
	p := &DOCXParser{}
	tree, err := p.Parse(buildDOCX(t), "report.docx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Title != "report" {
		t.Errorf("expected title %q, got %q", "report", tree.Title)
	}
	if len(tree.Children) != 3 {
		t.Fatalf("expected 3 top-level nodes, got %d", len(tree.Children))
	}

	preface := tree.Children[0]
	if preface.Title != "" || preface.Text != "Preface line." {
		t.Errorf("expected untitled preface, got %+v", preface)
	}

	overview := tree.Children[1]
	if overview.Title != "Overview" {
		t.Errorf("expected %q, got %q", "Overview", overview.Title)
	}
	want := "Body text.\n- first item\n  - nested item\nhttps://example.com"
	if overview.Text != want {
		t.Errorf("expected %q, got %q", want, overview.Text)
	}
	if len(overview.Children) != 1 || overview.Children[0].Title != "Details" {
		t.Fatalf("expected Details under Overview, got %+v", overview.Children)
	}
	if overview.Children[0].Text != "More text." {
		t.Errorf("expected %q, got %q", "More text.", overview.Children[0].Text)
	}

	if tree.Children[2].Title != "Second" {
		t.Errorf("expected %q, got %q", "Second", tree.Children[2].Title)
	}
}

func TestDOCXParser_Invalid(t *testing.T) {
	p := &DOCXParser{}
	if _, err := p.Parse(bytes.NewReader([]byte("not a zip")), "bad.docx"); err == nil {
		t.Fatal("expected error for invalid docx")
	}
}

func TestDocxHeadingLevel(t *testing.T) {
	tests := []struct {
		style string
		want  int
	}{
		{"Heading1", 1},
		{"heading 3", 3},
		{"Heading6", 6},
		{"Heading7", 0},
		{"Title", 0},
		{"HeadingX", 0},
	}
	for _, tt := range tests {
		para := &docx.Paragraph{Properties: &docx.ParagraphProperties{Style: &docx.Style{Val: tt.style}}}
		if got := docxHeadingLevel(para); got != tt.want {
			t.Errorf("docxHeadingLevel(%q) = %d, want %d", tt.style, got, tt.want)
		}
	}
	if got := docxHeadingLevel(&docx.Paragraph{}); got != 0 {
		t.Errorf("expected 0 for paragraph without properties, got %d", got)
	}
}

func TestDOCXParser_LinkTargets(t *testing.T) {
	doc := docx.New().WithDefaultTheme()
	doc.AddParagraph().AddLink("the docs", "https://docs.example.com")
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		t.Fatalf("write docx: %v", err)
	}

	tree, err := (&DOCXParser{}).Parse(&buf, "links.docx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tree.Children) != 1 {
		t.Fatalf("expected 1 node, got %d", len(tree.Children))
	}
	want := "the docs\nhttps://docs.example.com"
	if tree.Children[0].Text != want {
		t.Errorf("expected %q, got %q", want, tree.Children[0].Text)
	}
}
