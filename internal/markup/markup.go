// Package markup classifies lines of the notes markup dialect.
//
// Every meaningful line is wrapped in a hash envelope, e.g.
//
//	# Main Heading: Intro #
//	# - a bullet - #
//	# -- a sub bullet -- #
//	# https://example.com #
//	# plain text #
//
// Lines without an envelope are ignored.
package markup

import (
	"regexp"
	"strings"
)

// Kind identifies the construct a line represents.
type Kind int

const (
	MainHeading Kind = iota + 1
	SubHeading
	SubSubHeading
	MainBullet
	SubBullet
	Link
	PlainContent
)

var kindNames = map[Kind]string{
	MainHeading:   "main_heading",
	SubHeading:    "sub_heading",
	SubSubHeading: "sub_sub_heading",
	MainBullet:    "main_bullet",
	SubBullet:     "sub_bullet",
	Link:          "link",
	PlainContent:  "content",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// Construct is one classified line: its kind and the extracted payload.
type Construct struct {
	Kind Kind
	Text string
}

// envelope matches the first '#'-bounded span at the start of a line. The
// payload cannot itself contain '#'. Padding is any Unicode whitespace, not
// just ASCII.
var envelope = regexp.MustCompile(`^#` + pad + `(.*?)` + pad + `#`)

const pad = `[\s\p{Z}\x{1c}-\x{1f}\x{85}]*`

// rule is one entry of the ordered dispatch table.
type rule struct {
	kind    Kind
	match   func(content string) bool
	extract func(content string) string
}

// rules are evaluated in order and the first match wins. "Sub Sub Heading:"
// must stay after "Sub Heading:" and the sub bullet after the main bullet.
var rules = []rule{
	prefixRule(MainHeading, "Main Heading:"),
	prefixRule(SubHeading, "Sub Heading:"),
	prefixRule(SubSubHeading, "Sub Sub Heading:"),
	markerRule(MainBullet, "- ", " -"),
	markerRule(SubBullet, "-- ", " --"),
	{
		kind:    Link,
		match:   func(c string) bool { return strings.HasPrefix(c, "http") },
		extract: func(c string) string { return c },
	},
	{
		kind:    PlainContent,
		match:   func(string) bool { return true },
		extract: func(c string) string { return c },
	},
}

func prefixRule(kind Kind, prefix string) rule {
	return rule{
		kind:  kind,
		match: func(c string) bool { return strings.HasPrefix(c, prefix) },
		extract: func(c string) string {
			return strings.TrimSpace(strings.TrimPrefix(c, prefix))
		},
	}
}

func markerRule(kind Kind, open, close string) rule {
	return rule{
		kind: kind,
		match: func(c string) bool {
			return strings.HasPrefix(c, open) && strings.HasSuffix(c, close)
		},
		extract: func(c string) string {
			// "- -" satisfies both markers with overlapping characters.
			if len(c) < len(open)+len(close) {
				return ""
			}
			return strings.TrimSpace(c[len(open) : len(c)-len(close)])
		},
	}
}

// Envelope returns the trimmed content of the line's hash envelope.
func Envelope(line string) (string, bool) {
	m := envelope.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Classify decides which construct a line represents. It reports false for
// lines that produce no document node.
func Classify(line string) (Construct, bool) {
	content, ok := Envelope(line)
	if !ok {
		return Construct{}, false
	}
	for _, r := range rules {
		if r.match(content) {
			return Construct{Kind: r.kind, Text: r.extract(content)}, true
		}
	}
	return Construct{}, false
}

// Lines splits raw input into lines, accepting both \n and \r\n endings. A
// final line terminator does not start another line.
func Lines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
