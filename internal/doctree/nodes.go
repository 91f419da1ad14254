package doctree

// Level is the depth of a heading, bullet or TOC entry.
type Level string

const (
	LevelMain   Level = "main"
	LevelSub    Level = "sub"
	LevelSubSub Level = "subsub"
)

// Align is a horizontal paragraph alignment.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
)

// Style is the rendering metadata attached to a node. Renderers apply it
// as-is; nothing in it refers to a particular output format.
type Style struct {
	Font     string  `json:"font,omitempty"`
	SizePt   float64 `json:"size_pt,omitempty"`
	Color    string  `json:"color,omitempty"` // RGB hex, no leading '#'
	Bold     bool    `json:"bold,omitempty"`
	Align    Align   `json:"align,omitempty"`
	IndentPt float64 `json:"indent_pt,omitempty"`
	Glyph    string  `json:"glyph,omitempty"` // bullet prefix
}

// TocEntry is one heading recorded for the table of contents.
type TocEntry struct {
	Title string `json:"title"`
	Level Level  `json:"level"`
}

// Node is one styled unit of the output document.
type Node interface {
	Kind() string
}

type Heading struct {
	Text  string
	Level Level
	Style Style
}

// Divider is a thin horizontal rule.
type Divider struct {
	Color   string
	WidthPt float64
}

type Bullet struct {
	Text  string
	Level Level
	Style Style
}

type Link struct {
	URL   string
	Style Style
}

type Content struct {
	Text  string
	Style Style
}

// TOC is the table of contents block. It always starts on a new page.
type TOC struct {
	Title       string
	TitleStyle  Style
	Entries     []TocEntry
	EntryStyles map[Level]Style
}

func (Heading) Kind() string { return "heading" }
func (Divider) Kind() string { return "divider" }
func (Bullet) Kind() string  { return "bullet" }
func (Link) Kind() string    { return "link" }
func (Content) Kind() string { return "content" }
func (TOC) Kind() string     { return "toc" }
