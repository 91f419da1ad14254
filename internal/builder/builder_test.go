package builder

import (
	"reflect"
	"strings"
	"testing"

	"github.com/dgallion1/notegen/internal/doctree"
)

func kinds(nodes []doctree.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Kind()
	}
	return out
}

func lastTOC(t *testing.T, nodes []doctree.Node) doctree.TOC {
	t.Helper()
	if len(nodes) == 0 {
		t.Fatal("expected at least the TOC node")
	}
	toc, ok := nodes[len(nodes)-1].(doctree.TOC)
	if !ok {
		t.Fatalf("expected last node to be a TOC, got %s", nodes[len(nodes)-1].Kind())
	}
	return toc
}

func TestBuild_EmptyInput(t *testing.T) {
	nodes := BuildText("")
	if len(nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(nodes))
	}
	toc := lastTOC(t, nodes)
	if len(toc.Entries) != 0 {
		t.Errorf("expected empty TOC, got %d entries", len(toc.Entries))
	}
	if toc.Title != TOCTitle {
		t.Errorf("expected title %q, got %q", TOCTitle, toc.Title)
	}
}

func TestBuild_MainHeading(t *testing.T) {
	nodes := BuildText("# Main Heading: Intro #")
	want := []string{"heading", "divider", "toc"}
	if got := kinds(nodes); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	h := nodes[0].(doctree.Heading)
	if h.Text != "Intro" || h.Level != doctree.LevelMain {
		t.Errorf("expected main heading %q, got %+v", "Intro", h)
	}
	if h.Style != MainHeadingStyle {
		t.Errorf("expected main heading style, got %+v", h.Style)
	}
	toc := lastTOC(t, nodes)
	if len(toc.Entries) != 1 || toc.Entries[0] != (doctree.TocEntry{Title: "Intro", Level: doctree.LevelMain}) {
		t.Errorf("expected one main TOC entry, got %+v", toc.Entries)
	}
}

func TestBuild_SubHeadingHasDivider(t *testing.T) {
	nodes := BuildText("# Sub Heading: Part #")
	want := []string{"heading", "divider", "toc"}
	if got := kinds(nodes); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if nodes[0].(doctree.Heading).Style != SubHeadingStyle {
		t.Error("expected sub heading style")
	}
}

func TestBuild_SubSubHeadingHasNoDivider(t *testing.T) {
	nodes := BuildText("# Sub Sub Heading: Detail #")
	want := []string{"heading", "toc"}
	if got := kinds(nodes); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	h := nodes[0].(doctree.Heading)
	if h.Level != doctree.LevelSubSub || h.Style != SubSubHeadingStyle {
		t.Errorf("expected sub sub heading, got %+v", h)
	}
	toc := lastTOC(t, nodes)
	if len(toc.Entries) != 1 || toc.Entries[0].Level != doctree.LevelSubSub {
		t.Errorf("expected one subsub TOC entry, got %+v", toc.Entries)
	}
}

func TestBuild_TOCOrderPreserved(t *testing.T) {
	input := strings.Join([]string{
		"# Sub Sub Heading: c #",
		"# Main Heading: a #",
		"# - not a heading - #",
		"# Sub Heading: b #",
		"# Main Heading: d #",
	}, "\n")
	toc := lastTOC(t, BuildText(input))
	want := []doctree.TocEntry{
		{Title: "c", Level: doctree.LevelSubSub},
		{Title: "a", Level: doctree.LevelMain},
		{Title: "b", Level: doctree.LevelSub},
		{Title: "d", Level: doctree.LevelMain},
	}
	if !reflect.DeepEqual(toc.Entries, want) {
		t.Errorf("expected %+v, got %+v", want, toc.Entries)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	input := "# Main Heading: A #\n# Sub Heading: B #\n# - x - #\n# http://y.test #"
	first := BuildText(input)
	second := BuildText(input)
	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical output for identical input")
	}
	if n := len(lastTOC(t, second).Entries); n != 2 {
		t.Errorf("expected 2 TOC entries on second run, got %d", n)
	}
}

func TestBuild_BulletsAndLinks(t *testing.T) {
	nodes := BuildText("# - hello - #\n# -- hello -- #\n# http://example.com #\n# - hello #")
	want := []doctree.Node{
		doctree.Bullet{Text: "hello", Level: doctree.LevelMain, Style: MainBulletStyle},
		doctree.Bullet{Text: "hello", Level: doctree.LevelSub, Style: SubBulletStyle},
		doctree.Link{URL: "http://example.com", Style: LinkStyle},
		doctree.Content{Text: "- hello", Style: ContentStyle},
	}
	if !reflect.DeepEqual(nodes[:len(nodes)-1], want) {
		t.Errorf("expected %+v, got %+v", want, nodes[:len(nodes)-1])
	}
}

func TestBuild_EndToEnd(t *testing.T) {
	input := "# Main Heading: Intro #\n# - point one - #\n# -- sub point - #\n# http://x.test #\n"
	nodes := BuildText(input)

	want := []doctree.Node{
		doctree.Heading{Text: "Intro", Level: doctree.LevelMain, Style: MainHeadingStyle},
		DividerNode,
		doctree.Bullet{Text: "point one", Level: doctree.LevelMain, Style: MainBulletStyle},
		doctree.Content{Text: "-- sub point -", Style: ContentStyle},
		doctree.Link{URL: "http://x.test", Style: LinkStyle},
	}
	if len(nodes) != len(want)+1 {
		t.Fatalf("expected %d nodes, got %d: %v", len(want)+1, len(nodes), kinds(nodes))
	}
	if !reflect.DeepEqual(nodes[:len(want)], want) {
		t.Errorf("expected %+v, got %+v", want, nodes[:len(want)])
	}
	toc := lastTOC(t, nodes)
	if !reflect.DeepEqual(toc.Entries, []doctree.TocEntry{{Title: "Intro", Level: doctree.LevelMain}}) {
		t.Errorf("unexpected TOC entries %+v", toc.Entries)
	}
}

func TestBuild_IgnoresUnmarkedAndBlankLines(t *testing.T) {
	nodes := BuildText("free text\n\n   \n# kept #\n# open only")
	want := []string{"content", "toc"}
	if got := kinds(nodes); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestTOC_EntryStylesPerLevel(t *testing.T) {
	toc := TOC(&Index{})
	for _, lvl := range []doctree.Level{doctree.LevelMain, doctree.LevelSub, doctree.LevelSubSub} {
		st, ok := toc.EntryStyles[lvl]
		if !ok {
			t.Fatalf("missing entry style for %s", lvl)
		}
		if !st.Bold {
			t.Errorf("expected bold TOC entries for %s", lvl)
		}
	}
	if toc.EntryStyles[doctree.LevelSub].IndentPt <= toc.EntryStyles[doctree.LevelMain].IndentPt {
		t.Error("expected sub entries indented deeper than main entries")
	}
}

func TestIndex_EntriesIsCopy(t *testing.T) {
	ix := &Index{}
	ix.Add("a", doctree.LevelMain)
	got := ix.Entries()
	got[0].Title = "mutated"
	if ix.Entries()[0].Title != "a" {
		t.Error("expected Entries to return a copy")
	}
	if ix.Len() != 1 {
		t.Errorf("expected len 1, got %d", ix.Len())
	}
}
