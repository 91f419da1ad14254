package builder

import "github.com/dgallion1/notegen/internal/doctree"

// DefaultFont is the typeface used for every generated run.
const DefaultFont = "Jojoba"

const (
	colorGold   = "EC9F05"
	colorWhite  = "FFFFFF"
	colorAmber  = "F5BB00"
	colorGray   = "A6A6A6"
	colorLink   = "0070C0"
	tocTitleSz  = 16
	bodySizePt  = 12
	dividerPt   = 2
	tocIndentPt = 18
)

var (
	MainHeadingStyle = doctree.Style{
		Font: DefaultFont, SizePt: 20, Color: colorGold, Bold: true, Align: doctree.AlignCenter,
	}
	SubHeadingStyle = doctree.Style{
		Font: DefaultFont, SizePt: 16, Color: colorWhite, Align: doctree.AlignLeft,
	}
	SubSubHeadingStyle = doctree.Style{
		Font: DefaultFont, SizePt: 12, Color: colorAmber, Bold: true, Align: doctree.AlignLeft,
	}
	ContentStyle = doctree.Style{
		Font: DefaultFont, SizePt: bodySizePt, Color: colorGray, Align: doctree.AlignLeft,
	}
	MainBulletStyle = doctree.Style{
		Font: DefaultFont, SizePt: bodySizePt, Color: colorGray, Align: doctree.AlignLeft,
		IndentPt: 12, Glyph: "•",
	}
	SubBulletStyle = doctree.Style{
		Font: DefaultFont, SizePt: bodySizePt, Color: colorGray, Align: doctree.AlignLeft,
		IndentPt: 24, Glyph: "◦",
	}
	LinkStyle = doctree.Style{
		Font: DefaultFont, SizePt: bodySizePt, Color: colorLink, Align: doctree.AlignLeft,
	}
	DividerNode = doctree.Divider{Color: colorGray, WidthPt: dividerPt}
)

// HeadingStyle returns the style for a heading level.
func HeadingStyle(level doctree.Level) doctree.Style {
	switch level {
	case doctree.LevelMain:
		return MainHeadingStyle
	case doctree.LevelSub:
		return SubHeadingStyle
	default:
		return SubSubHeadingStyle
	}
}

// tocTitleStyle and tocEntryStyles describe the table of contents: a
// centered title and one list style per level, all titles in bold.
var tocTitleStyle = doctree.Style{
	Font: DefaultFont, SizePt: tocTitleSz, Bold: true, Align: doctree.AlignCenter,
}

func tocEntryStyles() map[doctree.Level]doctree.Style {
	entry := func(indent float64, glyph string) doctree.Style {
		return doctree.Style{
			Font: DefaultFont, SizePt: bodySizePt, Bold: true, Align: doctree.AlignLeft,
			IndentPt: indent, Glyph: glyph,
		}
	}
	return map[doctree.Level]doctree.Style{
		doctree.LevelMain:   entry(tocIndentPt, "•"),
		doctree.LevelSub:    entry(2*tocIndentPt, "◦"),
		doctree.LevelSubSub: entry(3*tocIndentPt, "▪"),
	}
}
