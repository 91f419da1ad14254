package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/notegen/internal/doctree"
	"golang.org/x/net/html"
)

// HTMLParser handles HTML files.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	tree := &doctree.DocTree{
		Title: trimExt(filename, ".html", ".htm"),
	}
	if title := findTitle(doc); title != "" {
		tree.Title = title
	}

	type stackEntry struct {
		node  *doctree.DocNode
		level int
	}
	root := &doctree.DocNode{Title: tree.Title}
	stack := []stackEntry{{node: root, level: 0}}
	var currentText strings.Builder

	addLine := func(line string) {
		if currentText.Len() > 0 {
			currentText.WriteString("\n")
		}
		currentText.WriteString(line)
	}
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

	var walk func(n *html.Node, listDepth int)
	walk = func(n *html.Node, listDepth int) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				flushText()
				newNode := &doctree.DocNode{Title: textContent(n)}
				for len(stack) > 1 && stack[len(stack)-1].level >= level {
					stack = stack[:len(stack)-1]
				}
				parent := stack[len(stack)-1].node
				parent.Children = append(parent.Children, newNode)
				stack = append(stack, stackEntry{node: newNode, level: level})
				return
			}

			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			case "ul", "ol":
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					walk(c, listDepth+1)
				}
				return
			case "li":
				if t := itemText(n); t != "" {
					addLine(strings.Repeat("  ", max(listDepth-1, 0)) + "- " + t)
				}
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					if c.Type == html.ElementNode && (c.Data == "ul" || c.Data == "ol") {
						walk(c, listDepth)
					}
				}
				return
			case "a":
				if href := attr(n, "href"); strings.HasPrefix(href, "http") {
					addLine(href)
					return
				}
			case "p", "td", "blockquote", "pre":
				if t := textContent(n); t != "" {
					addLine(t)
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, listDepth)
		}
	}

	if body := findBody(doc); body != nil {
		walk(body, 0)
	} else {
		walk(doc, 0)
	}
	flushText()

	tree.Children = root.Children
	if root.Text != "" {
		tree.Children = append([]*doctree.DocNode{{Text: root.Text}}, tree.Children...)
	}

	return tree, nil
}

func headingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

// itemText is the text of a list item without its nested lists.
func itemText(li *html.Node) string {
	var buf strings.Builder
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "ul" || c.Data == "ol") {
			continue
		}
		buf.WriteString(rawText(c))
	}
	return strings.Join(strings.Fields(buf.String()), " ")
}

func textContent(n *html.Node) string {
	return strings.Join(strings.Fields(rawText(n)), " ")
}

func rawText(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return buf.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
