// Package render serializes built document nodes: DOCX for the final
// output, Markdown and HTML for previews.
package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dgallion1/notegen/internal/doctree"
	"github.com/fumiama/go-docx"
)

// Page geometry in twips and EMU. A4 portrait with 36pt margins.
const (
	pageWidthTwips  = 11906
	pageHeightTwips = 16838
	marginTwips     = 720
	twipsPerPt      = 20
	emuPerTwip      = 635
	emuPerPt        = 12700
	textWidthEMU    = (pageWidthTwips - 2*marginTwips) * emuPerTwip
)

// Options adjust serialization.
type Options struct {
	// Font replaces the typeface of every run when set.
	Font string
}

// SerializationError reports a failure to produce an output document.
type SerializationError struct {
	Format string
	Err    error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialize %s: %v", e.Format, e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// DOCX writes nodes as a Word document to w.
func DOCX(w io.Writer, nodes []doctree.Node, opts Options) error {
	doc := NewDOCX(nodes, opts)
	if _, err := doc.WriteTo(w); err != nil {
		return &SerializationError{Format: "docx", Err: err}
	}
	return nil
}

// NewDOCX lays nodes out in an in-memory document, one paragraph per node.
func NewDOCX(nodes []doctree.Node, opts Options) *docx.Docx {
	doc := docx.New().WithDefaultTheme()
	for _, n := range nodes {
		switch n := n.(type) {
		case doctree.Heading:
			styledParagraph(doc, n.Text, n.Style, opts)
		case doctree.Bullet:
			styledParagraph(doc, n.Text, n.Style, opts)
		case doctree.Content:
			styledParagraph(doc, n.Text, n.Style, opts)
		case doctree.Link:
			writeLink(doc, n, opts)
		case doctree.Divider:
			writeDivider(doc, n)
		case doctree.TOC:
			writeTOC(doc, n, opts)
		}
	}
	doc.Document.Body.Items = append(doc.Document.Body.Items, &docx.SectPr{
		PgSz: &docx.PgSz{W: pageWidthTwips, H: pageHeightTwips},
		PgMar: &docx.PgMar{
			Top: marginTwips, Left: marginTwips, Bottom: marginTwips, Right: marginTwips,
			Header: marginTwips, Footer: marginTwips,
		},
	})
	return doc
}

func styledParagraph(doc *docx.Docx, text string, st doctree.Style, opts Options) *docx.Paragraph {
	p := doc.AddParagraph()
	applyParagraph(p, st)
	if st.Glyph != "" {
		text = st.Glyph + " " + text
	}
	applyRun(p.AddText(text), st, opts)
	return p
}

func writeLink(doc *docx.Docx, n doctree.Link, opts Options) {
	p := doc.AddParagraph()
	applyParagraph(p, n.Style)
	h := p.AddLink(n.URL, n.URL)
	applyRun(&h.Run, n.Style, opts)
}

// writeDivider draws a full-width horizontal line in its own paragraph.
func writeDivider(doc *docx.Docx, n doctree.Divider) {
	p := doc.AddParagraph()
	p.Properties = &docx.ParagraphProperties{
		Spacing: &docx.Spacing{Line: 240, LineRule: "auto"},
	}
	p.AddInlineShape(textWidthEMU, 0, "Divider", "auto", "line", &docx.ALine{
		W:         int64(n.WidthPt * emuPerPt),
		SolidFill: &docx.ASolidFill{SrgbClr: &docx.ASrgbClr{Val: n.Color}},
	})
}

func writeTOC(doc *docx.Docx, toc doctree.TOC, opts Options) {
	doc.AddParagraph().AddPageBreaks()
	styledParagraph(doc, toc.Title, toc.TitleStyle, opts)
	for _, e := range toc.Entries {
		styledParagraph(doc, e.Title, toc.EntryStyles[e.Level], opts)
	}
}

func applyParagraph(p *docx.Paragraph, st doctree.Style) {
	if st.Align == doctree.AlignCenter {
		p.Justification("center")
	} else {
		p.Justification("start")
	}
	if st.IndentPt > 0 {
		p.Properties.Ind = &docx.Ind{Left: int(st.IndentPt * twipsPerPt)}
	}
}

func applyRun(r *docx.Run, st doctree.Style, opts Options) {
	font := st.Font
	if opts.Font != "" {
		font = opts.Font
	}
	if font != "" {
		r.Font(font, font, font, "default")
	}
	if st.SizePt > 0 {
		r.Size(halfPoints(st.SizePt))
	}
	if st.Color != "" {
		r.Color(st.Color)
	}
	if st.Bold {
		r.Bold()
	}
}

func halfPoints(pt float64) string {
	return strconv.Itoa(int(pt * 2))
}
