// Package builder turns classified markup lines into styled document nodes
// and collects the table of contents along the way.
package builder

import (
	"github.com/dgallion1/notegen/internal/doctree"
	"github.com/dgallion1/notegen/internal/markup"
)

// TOCTitle heads the generated table of contents.
const TOCTitle = "Table of Contents"

// Index accumulates TOC entries in the order headings are seen. It lives for
// a single build.
type Index struct {
	entries []doctree.TocEntry
}

// Add records a heading.
func (ix *Index) Add(title string, level doctree.Level) {
	ix.entries = append(ix.entries, doctree.TocEntry{Title: title, Level: level})
}

// Entries returns a copy of the accumulated entries.
func (ix *Index) Entries() []doctree.TocEntry {
	out := make([]doctree.TocEntry, len(ix.entries))
	copy(out, ix.entries)
	return out
}

// Len is the number of recorded headings.
func (ix *Index) Len() int { return len(ix.entries) }

// BuildText splits text into lines and builds the document.
func BuildText(text string) []doctree.Node {
	return Build(markup.Lines(text))
}

// Build classifies each line, emits its nodes in input order and appends
// the table of contents last. It never fails: unrecognized lines are dropped.
func Build(lines []string) []doctree.Node {
	var nodes []doctree.Node
	ix := &Index{}
	for _, line := range lines {
		c, ok := markup.Classify(line)
		if !ok {
			continue
		}
		nodes = Step(nodes, ix, c)
	}
	return append(nodes, TOC(ix))
}

// Step appends the nodes for one construct and records headings in ix.
func Step(nodes []doctree.Node, ix *Index, c markup.Construct) []doctree.Node {
	switch c.Kind {
	case markup.MainHeading:
		return heading(nodes, ix, c.Text, doctree.LevelMain, true)
	case markup.SubHeading:
		return heading(nodes, ix, c.Text, doctree.LevelSub, true)
	case markup.SubSubHeading:
		return heading(nodes, ix, c.Text, doctree.LevelSubSub, false)
	case markup.MainBullet:
		return append(nodes, doctree.Bullet{Text: c.Text, Level: doctree.LevelMain, Style: MainBulletStyle})
	case markup.SubBullet:
		return append(nodes, doctree.Bullet{Text: c.Text, Level: doctree.LevelSub, Style: SubBulletStyle})
	case markup.Link:
		return append(nodes, doctree.Link{URL: c.Text, Style: LinkStyle})
	case markup.PlainContent:
		return append(nodes, doctree.Content{Text: c.Text, Style: ContentStyle})
	}
	return nodes
}

// heading emits a heading, records it and, for main and sub headings only,
// follows it with a divider.
func heading(nodes []doctree.Node, ix *Index, text string, level doctree.Level, divider bool) []doctree.Node {
	nodes = append(nodes, doctree.Heading{Text: text, Level: level, Style: HeadingStyle(level)})
	ix.Add(text, level)
	if divider {
		nodes = append(nodes, DividerNode)
	}
	return nodes
}

// TOC builds the trailing table of contents node from ix.
func TOC(ix *Index) doctree.TOC {
	return doctree.TOC{
		Title:       TOCTitle,
		TitleStyle:  tocTitleStyle,
		Entries:     ix.Entries(),
		EntryStyles: tocEntryStyles(),
	}
}
