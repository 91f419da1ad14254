package render

import (
	"bytes"
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/dgallion1/notegen/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Markdown renders nodes as CommonMark. Styling is dropped; structure,
// dividers and the table of contents are kept.
func Markdown(nodes []doctree.Node) string {
	var b strings.Builder
	prevList := false
	block := func(s string, list bool) {
		if b.Len() > 0 {
			if list && prevList {
				b.WriteString("\n")
			} else {
				b.WriteString("\n\n")
			}
		}
		b.WriteString(s)
		prevList = list
	}

	for _, n := range nodes {
		switch n := n.(type) {
		case doctree.Heading:
			block(headingMarks(n.Level)+" "+escape(n.Text), false)
		case doctree.Divider:
			block("---", false)
		case doctree.Bullet:
			indent := ""
			if n.Level == doctree.LevelSub {
				indent = "  "
			}
			block(indent+"- "+escape(n.Text), true)
		case doctree.Link:
			block(linkMarkdown(n.URL), false)
		case doctree.Content:
			block(escape(n.Text), false)
		case doctree.TOC:
			block("## "+escape(n.Title), false)
			for _, e := range n.Entries {
				block(tocIndent(e.Level)+"- "+escape(e.Title), true)
			}
		}
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	return b.String()
}

func headingMarks(level doctree.Level) string {
	switch level {
	case doctree.LevelMain:
		return "#"
	case doctree.LevelSub:
		return "##"
	default:
		return "###"
	}
}

func tocIndent(level doctree.Level) string {
	switch level {
	case doctree.LevelSub:
		return "  "
	case doctree.LevelSubSub:
		return "    "
	default:
		return ""
	}
}

var mdEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", `*`, `\*`, `_`, `\_`, `[`, `\[`, `]`, `\]`,
	`<`, `\<`, `>`, `\>`, `#`, `\#`, `-`, `\-`, `+`, `\+`, `!`, `\!`, `|`, `\|`,
	`&`, `\&`,
)

func escape(s string) string { return mdEscaper.Replace(s) }

// destEscaper escapes the characters that would end or alter a
// "<...>" link destination.
var destEscaper = strings.NewReplacer(`\`, `\\`, `<`, `\<`, `>`, `\>`, `&`, `\&`)

// linkMarkdown renders a link node as an inline link when its payload is an
// absolute http(s) URL and as escaped text otherwise. Link payloads only need
// to start with "http", so "httpbin" or "http:/x" stay plain text.
func linkMarkdown(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return escape(raw)
	}
	return "[" + escape(raw) + "](<" + destEscaper.Replace(raw) + ">)"
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
}

// HTML renders nodes as a standalone HTML page for previewing.
func HTML(title string, nodes []doctree.Node) ([]byte, error) {
	var body bytes.Buffer
	if err := newMarkdown().Convert([]byte(Markdown(nodes)), &body); err != nil {
		return nil, &SerializationError{Format: "html", Err: err}
	}
	var page bytes.Buffer
	fmt.Fprintf(&page, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n",
		html.EscapeString(title))
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}
