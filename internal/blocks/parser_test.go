package blocks

import (
	"reflect"
	"strings"
	"testing"
)

func TestParse_Headings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantKind  Kind
		wantLevel int
		wantText  string
	}{
		{"level 1", "# Title", KindHeading, 1, "Title"},
		{"level 2", "## Section", KindHeading, 2, "Section"},
		{"level 3", "### Sub", KindHeading, 3, "Sub"},
		{"level 4", "#### Deep", KindHeading, 4, "Deep"},
		{"level 5", "##### Deeper", KindHeading, 5, "Deeper"},
		{"level 6", "###### Deepest", KindHeading, 6, "Deepest"},
		{"seven hashes is a paragraph", "####### Nope", KindParagraph, 0, ""},
		{"no space is a paragraph", "#Nope", KindParagraph, 0, ""},
		{"indented heading", "   ## Indented", KindHeading, 2, "Indented"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			nodes := Parse(tt.input)
			if len(nodes) != 1 {
				t.Fatalf("Parse(%q) returned %d nodes, want 1", tt.input, len(nodes))
			}
			n := nodes[0]
			if n.Kind != tt.wantKind {
				t.Fatalf("kind = %v, want %v", n.Kind, tt.wantKind)
			}
			if tt.wantKind == KindHeading {
				if n.Level != tt.wantLevel || n.Text != tt.wantText {
					t.Errorf("heading = (%d, %q), want (%d, %q)", n.Level, n.Text, tt.wantLevel, tt.wantText)
				}
			}
		})
	}
}

func TestParse_BlockKinds(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"> quoted words",
		"- dash item",
		"* star item",
		"12. numbered item",
		"plain paragraph",
		">no space",
	}, "\n")

	nodes := Parse(input)
	want := []struct {
		kind    Kind
		text    string
		ordered bool
	}{
		{KindBlockquote, "quoted words", false},
		{KindListItem, "dash item", false},
		{KindListItem, "star item", false},
		{KindListItem, "numbered item", true},
		{KindParagraph, "", false},
		{KindParagraph, "", false},
	}

	if len(nodes) != len(want) {
		t.Fatalf("got %d nodes, want %d: %+v", len(nodes), len(want), nodes)
	}
	for i, w := range want {
		if nodes[i].Kind != w.kind {
			t.Errorf("node %d kind = %v, want %v", i, nodes[i].Kind, w.kind)
		}
		if w.text != "" && nodes[i].Text != w.text {
			t.Errorf("node %d text = %q, want %q", i, nodes[i].Text, w.text)
		}
		if nodes[i].Ordered != w.ordered {
			t.Errorf("node %d ordered = %v, want %v", i, nodes[i].Ordered, w.ordered)
		}
		if nodes[i].Line != i {
			t.Errorf("node %d line = %d, want %d", i, nodes[i].Line, i)
		}
	}
}

func TestParse_ListGrouping(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"- a",
		"- b",
		"1. c",
		"2. d",
		"",
		"- e",
		"text",
		"- f",
	}, "\n")

	nodes := Parse(input)
	var groups []int
	for _, n := range nodes {
		if n.Kind == KindListItem {
			groups = append(groups, n.List)
		}
	}

	// a,b share a list; c,d switch to ordered; blank line and paragraph
	// each start a new list.
	want := []int{1, 1, 2, 2, 3, 4}
	if !reflect.DeepEqual(groups, want) {
		t.Errorf("list groups = %v, want %v", groups, want)
	}
}

func TestParse_CodeBlockVerbatim(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"before",
		"```go",
		"| not a table |",
		"# not a heading",
		"",
		"  - not a list",
		"**not bold**",
		"```",
		"after",
	}, "\n")

	nodes := Parse(input)
	if len(nodes) != 3 {
		t.Fatalf("got %d nodes, want 3: %+v", len(nodes), nodes)
	}

	code := nodes[1]
	if code.Kind != KindCode {
		t.Fatalf("node 1 kind = %v, want code", code.Kind)
	}
	if code.Lang != "go" {
		t.Errorf("lang = %q, want go", code.Lang)
	}
	wantLines := []string{"| not a table |", "# not a heading", "", "  - not a list", "**not bold**"}
	if !reflect.DeepEqual(code.Lines, wantLines) {
		t.Errorf("code lines = %q, want %q", code.Lines, wantLines)
	}
	if code.StartLine != 1 || code.Line != 7 {
		t.Errorf("code span = %d..%d, want 1..7", code.StartLine, code.Line)
	}
	for _, n := range nodes {
		if n.Kind == KindTable {
			t.Error("code content was parsed as a table")
		}
	}
}

func TestParse_UnterminatedFenceFlushes(t *testing.T) {
	t.Parallel()

	nodes := Parse("intro\n```\nline one\nline two")
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(nodes))
	}
	if nodes[1].Kind != KindCode {
		t.Fatalf("trailing node kind = %v, want code", nodes[1].Kind)
	}
	if got := strings.Join(nodes[1].Lines, "\n"); got != "line one\nline two" {
		t.Errorf("code content = %q", got)
	}
	if nodes[1].Line != 3 {
		t.Errorf("code line = %d, want 3", nodes[1].Line)
	}
}

func TestParse_Table(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"| Name | Value |",
		"| :--- | ---: |",
		"| a | 1 |",
		"| b | 2 |",
		"after",
	}, "\n")

	nodes := Parse(input)
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2: %+v", len(nodes), nodes)
	}
	table := nodes[0]
	if table.Kind != KindTable {
		t.Fatalf("node 0 kind = %v, want table", table.Kind)
	}
	want := [][]string{{"Name", "Value"}, {"a", "1"}, {"b", "2"}}
	if !reflect.DeepEqual(table.Rows, want) {
		t.Errorf("rows = %q, want %q", table.Rows, want)
	}
	if table.StartLine != 0 || table.Line != 3 {
		t.Errorf("table span = %d..%d, want 0..3", table.StartLine, table.Line)
	}
	if nodes[1].Kind != KindParagraph || nodes[1].Line != 4 {
		t.Errorf("trailing paragraph = %+v", nodes[1])
	}
}

func TestParse_TrailingTableFlushes(t *testing.T) {
	t.Parallel()

	nodes := Parse("text\n| a | b |\n| c | d |")
	if len(nodes) != 2 || nodes[1].Kind != KindTable {
		t.Fatalf("nodes = %+v, want paragraph then table", nodes)
	}
	if len(nodes[1].Rows) != 2 {
		t.Errorf("rows = %d, want 2", len(nodes[1].Rows))
	}
}

func TestParse_RowWithoutTrailingDelimiter(t *testing.T) {
	t.Parallel()

	nodes := Parse("| a | b")
	if len(nodes) != 1 || nodes[0].Kind != KindTable {
		t.Fatalf("nodes = %+v, want one table", nodes)
	}
	if !reflect.DeepEqual(nodes[0].Rows, [][]string{{"a", "b"}}) {
		t.Errorf("rows = %q", nodes[0].Rows)
	}
}

func TestParse_BlankLinesEmitNothing(t *testing.T) {
	t.Parallel()

	if nodes := Parse("\n\n   \n"); len(nodes) != 0 {
		t.Errorf("blank input produced %d nodes", len(nodes))
	}
	if nodes := Parse(""); len(nodes) != 0 {
		t.Errorf("empty input produced %d nodes", len(nodes))
	}
}

func TestParse_EmptyFencedBlockIsDropped(t *testing.T) {
	t.Parallel()

	nodes := Parse("```\n```\ntext")
	if len(nodes) != 1 || nodes[0].Kind != KindParagraph {
		t.Errorf("nodes = %+v, want a single paragraph", nodes)
	}
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	if KindListItem.String() != "list-item" {
		t.Errorf("KindListItem.String() = %q", KindListItem.String())
	}
	if Kind(99).String() != "unknown" {
		t.Errorf("Kind(99).String() = %q", Kind(99).String())
	}
}
