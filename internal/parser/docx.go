package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dgallion1/notegen/internal/doctree"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. Heading styles open sections and numbered
// paragraphs become bullets.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	// go-docx needs a ReaderAt+size, so write to temp file.
	tmp, err := os.CreateTemp("", "notegen-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}
	return docxTree(doc, trimExt(filename, ".docx")), nil
}

func docxTree(doc *docx.Docx, title string) *doctree.DocTree {
	tree := &doctree.DocTree{Title: title}

	type stackEntry struct {
		node  *doctree.DocNode
		level int
	}
	root := &doctree.DocNode{Title: title}
	stack := []stackEntry{{node: root, level: 0}}
	var lines []string

	flushText := func() {
		if len(lines) == 0 {
			return
		}
		top := stack[len(stack)-1].node
		if top.Text != "" {
			top.Text += "\n"
		}
		top.Text += strings.Join(lines, "\n")
		lines = lines[:0]
	}

	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := docxParagraphText(para)
		if text == "" {
			continue
		}

		if level := docxHeadingLevel(para); level > 0 {
			flushText()
			newNode := &doctree.DocNode{Title: text}
			for len(stack) > 1 && stack[len(stack)-1].level >= level {
				stack = stack[:len(stack)-1]
			}
			parent := stack[len(stack)-1].node
			parent.Children = append(parent.Children, newNode)
			stack = append(stack, stackEntry{node: newNode, level: level})
			continue
		}

		if ilvl, ok := docxListLevel(para); ok {
			text = strings.Repeat("  ", ilvl) + "- " + text
		}
		lines = append(lines, text)
		for _, url := range docxLinkTargets(doc, para) {
			if url != text {
				lines = append(lines, url)
			}
		}
	}
	flushText()

	tree.Children = root.Children
	if root.Text != "" {
		tree.Children = append([]*doctree.DocNode{{Text: root.Text}}, tree.Children...)
	}
	return tree
}

// docxHeadingLevel maps "Heading1".."Heading6" and "heading 1".."heading 6"
// styles to their level.
func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	if !strings.HasPrefix(style, "heading") || len(style) != len("heading")+1 {
		return 0
	}
	n := style[len(style)-1]
	if n < '1' || n > '6' {
		return 0
	}
	return int(n - '0')
}

// docxListLevel reports the list indent level of a numbered paragraph.
func docxListLevel(para *docx.Paragraph) (int, bool) {
	if para.Properties == nil || para.Properties.NumProperties == nil {
		return 0, false
	}
	num := para.Properties.NumProperties
	if num.Ilvl == nil || num.Ilvl.Val == "" {
		return 0, true
	}
	lvl, err := docx.GetInt(num.Ilvl.Val)
	if err != nil || lvl < 0 {
		return 0, true
	}
	return lvl, true
}

// docxLinkTargets resolves the external http(s) targets of a paragraph's
// hyperlinks.
func docxLinkTargets(doc *docx.Docx, para *docx.Paragraph) []string {
	var urls []string
	for _, child := range para.Children {
		h, ok := child.(*docx.Hyperlink)
		if !ok || h.ID == "" {
			continue
		}
		target, err := doc.ReferTarget(h.ID)
		if err != nil {
			continue
		}
		if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
			urls = append(urls, target)
		}
	}
	return urls
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	writeRun := func(run *docx.Run) {
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	for _, child := range para.Children {
		switch c := child.(type) {
		case *docx.Run:
			writeRun(c)
		case *docx.Hyperlink:
			writeRun(&c.Run)
			if c.Run.InstrText != "" {
				buf.WriteString(c.Run.InstrText)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
