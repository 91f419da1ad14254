package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/notegen/internal/doctree"
)

// TextParser handles plain prose. A line underlined with "===" starts a
// section and one underlined with "---" starts a subsection; blank lines
// separate paragraphs.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), " \t\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	tree := &doctree.DocTree{
		Title: trimExt(filename, ".txt", ".notes"),
	}

	var (
		section *doctree.DocNode // current level-1 node
		target  *doctree.DocNode // node receiving text
		current strings.Builder
	)
	flush := func() {
		if current.Len() == 0 {
			return
		}
		if target == nil {
			target = &doctree.DocNode{}
			tree.Children = append(tree.Children, target)
		}
		if target.Text != "" {
			target.Text += "\n"
		}
		target.Text += current.String()
		current.Reset()
	}

	for i := 0; i < len(lines); i++ {
		line := lines[i]
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if i+1 < len(lines) {
			switch underline(lines[i+1]) {
			case '=':
				flush()
				section = &doctree.DocNode{Title: strings.TrimSpace(line)}
				tree.Children = append(tree.Children, section)
				target = section
				i++
				continue
			case '-':
				flush()
				sub := &doctree.DocNode{Title: strings.TrimSpace(line)}
				if section != nil {
					section.Children = append(section.Children, sub)
				} else {
					tree.Children = append(tree.Children, sub)
				}
				target = sub
				i++
				continue
			}
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	flush()

	return tree, nil
}

// underline returns '=' or '-' when line consists of at least three of that
// character and nothing else.
func underline(line string) byte {
	line = strings.TrimSpace(line)
	if len(line) < 3 {
		return 0
	}
	c := line[0]
	if c != '=' && c != '-' {
		return 0
	}
	if strings.Trim(line, string(c)) != "" {
		return 0
	}
	return c
}
