package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/notegen/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	tree := &doctree.DocTree{
		Title: trimExt(filename, ".md", ".markdown"),
	}

	// Headings nest by level; the stack holds the open sections.
	type stackEntry struct {
		node  *doctree.DocNode
		level int
	}
	root := &doctree.DocNode{Title: tree.Title}
	stack := []stackEntry{{node: root, level: 0}}

	var currentText bytes.Buffer

	flushText := func() {
		t := strings.TrimSpace(currentText.String())
		if t != "" {
			top := stack[len(stack)-1].node
			if top.Text != "" {
				top.Text += "\n" + t
			} else {
				top.Text = t
			}
		}
		currentText.Reset()
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			flushText()
			newNode := &doctree.DocNode{Title: extractText(node, src)}

			for len(stack) > 1 && stack[len(stack)-1].level >= node.Level {
				stack = stack[:len(stack)-1]
			}
			parent := stack[len(stack)-1].node
			parent.Children = append(parent.Children, newNode)
			stack = append(stack, stackEntry{node: newNode, level: node.Level})

		case *ast.List:
			writeList(&currentText, node, src, 0)

		case *ast.ThematicBreak:
			// Dividers are generated from headings.

		default:
			t := extractText(n, src)
			if t != "" {
				if currentText.Len() > 0 {
					currentText.WriteString("\n")
				}
				currentText.WriteString(t)
			}
		}
	}
	flushText()

	tree.Children = root.Children
	if root.Text != "" {
		tree.Children = append([]*doctree.DocNode{{Text: root.Text}}, tree.Children...)
	}

	return tree, nil
}

// writeList renders list items as "- item" lines, indenting nested lists.
func writeList(buf *bytes.Buffer, list *ast.List, src []byte, depth int) {
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if nested, ok := c.(*ast.List); ok {
				writeList(buf, nested, src, depth+1)
				continue
			}
			t := extractText(c, src)
			if t == "" {
				continue
			}
			if buf.Len() > 0 {
				buf.WriteString("\n")
			}
			buf.WriteString(strings.Repeat("  ", depth))
			buf.WriteString("- ")
			buf.WriteString(strings.ReplaceAll(t, "\n", " "))
		}
	}
}

// extractText gets the text content of a goldmark AST node. Soft line breaks
// inside a paragraph become spaces.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && !n.HasChildren() {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			buf.Write(c.Value(src))
			if c.HardLineBreak() {
				buf.WriteByte('\n')
			} else if c.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(c.Value)
		case *ast.AutoLink:
			buf.Write(c.URL(src))
		default:
			buf.WriteString(extractText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
