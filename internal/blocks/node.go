package blocks

// Kind identifies a block node variant.
type Kind int

// Block node kinds.
const (
	KindHeading Kind = iota + 1
	KindParagraph
	KindBlockquote
	KindListItem
	KindCode
	KindTable
)

var kindNames = map[Kind]string{
	KindHeading:    "heading",
	KindParagraph:  "paragraph",
	KindBlockquote: "blockquote",
	KindListItem:   "list-item",
	KindCode:       "code",
	KindTable:      "table",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Node is one parsed block. Only the fields relevant to Kind are set.
type Node struct {
	Kind Kind

	// Level is the heading level (1-6).
	Level int

	// Text holds heading, blockquote and list item content.
	// Inline formatting is not applied to these kinds.
	Text string

	// Runs holds paragraph content split into inline runs.
	Runs []Run

	// Ordered reports whether a list item came from a numeric marker.
	Ordered bool

	// List groups consecutive list items into one enclosing list.
	// Items share a group until a blank line, a non-list block or a
	// change between ordered and unordered markers.
	List int

	// Lang is the info string following the opening code fence.
	Lang string

	// Lines are the verbatim code lines.
	Lines []string

	// Rows are table rows; the first row is the header.
	Rows [][]string

	// StartLine and Line are the first and last physical source lines
	// (0-based) that contributed to the node.
	StartLine int
	Line      int
}

// RunKind identifies an inline run variant.
type RunKind int

// Inline run kinds.
const (
	RunText RunKind = iota
	RunStrong
	RunEm
	RunCode
	RunLink
)

// Run is a span of paragraph content.
type Run struct {
	Kind RunKind
	Text string
	URL  string // RunLink only
}
