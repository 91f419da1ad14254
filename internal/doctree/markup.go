package doctree

import (
	"strings"
)

// ToMarkup renders an imported outline as notes markup. Section depth 1 maps
// to main headings, depth 2 to sub headings and anything deeper to sub sub
// headings. Text is emitted line by line: "- " and "* " items become
// bullets (indented items become sub bullets), URLs become links and the
// rest becomes content.
func ToMarkup(tree *DocTree) string {
	var b strings.Builder
	for _, child := range tree.Children {
		writeNode(&b, child, 1)
	}
	return b.String()
}

func writeNode(b *strings.Builder, n *DocNode, depth int) {
	if n.Title != "" {
		writeLine(b, headingPrefix(depth)+" "+sanitize(n.Title))
	}
	for _, line := range strings.Split(n.Text, "\n") {
		if m, ok := textLine(line); ok {
			writeLine(b, m)
		}
	}
	for _, c := range n.Children {
		writeNode(b, c, depth+1)
	}
}

func headingPrefix(depth int) string {
	switch depth {
	case 1:
		return "Main Heading:"
	case 2:
		return "Sub Heading:"
	default:
		return "Sub Sub Heading:"
	}
}

func textLine(raw string) (string, bool) {
	indented := strings.HasPrefix(raw, "  ") || strings.HasPrefix(raw, "\t")
	line := strings.TrimSpace(raw)
	if line == "" {
		return "", false
	}
	for _, marker := range []string{"- ", "* ", "• ", "◦ "} {
		if strings.HasPrefix(line, marker) {
			item := sanitize(strings.TrimSpace(line[len(marker):]))
			if item == "" {
				return "", false
			}
			if indented || marker == "◦ " {
				return "-- " + item + " --", true
			}
			return "- " + item + " -", true
		}
	}
	return sanitize(line), true
}

func writeLine(b *strings.Builder, content string) {
	b.WriteString("# ")
	b.WriteString(content)
	b.WriteString(" #\n")
}

// sanitize keeps imported text inside a single envelope: '#' would end it
// early, so it is replaced with the fullwidth sign.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "#", "＃")
	return strings.Join(strings.Fields(s), " ")
}
