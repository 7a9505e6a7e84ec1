package blocks

import (
	"strings"
)

const (
	fenceMarker    = "```"
	tableDelimiter = "|"
	separatorDash  = "---"
)

// state is the parser's position relative to fenced code.
// Table rows are collected opportunistically in stateNormal.
type state int

const (
	stateNormal state = iota
	stateInCode
)

// SplitLines splits content into physical lines. Callers normalise line
// endings beforehand.
func SplitLines(content string) []string {
	return strings.Split(content, "\n")
}

// Parse scans content line by line and returns the block nodes in
// document order.
func Parse(content string) []Node {
	p := &parser{}
	lines := SplitLines(content)
	for i, line := range lines {
		p.feed(i, line)
	}
	p.finish(len(lines) - 1)
	return p.nodes
}

type parser struct {
	nodes []Node
	state state

	code      []string
	codeLang  string
	codeStart int

	rows     [][]string
	rowStart int
	rowEnd   int

	list        int
	listOrdered bool
	lastList    int
}

func (p *parser) feed(lineNo int, line string) {
	trimmed := strings.TrimSpace(line)

	if p.state == stateInCode {
		if isFence(trimmed) {
			p.flushCode(lineNo)
			p.state = stateNormal
			return
		}
		p.code = append(p.code, line)
		return
	}

	if isFence(trimmed) {
		p.flushTable()
		p.closeList()
		p.state = stateInCode
		p.code = p.code[:0]
		p.codeLang = strings.TrimSpace(strings.TrimPrefix(trimmed, fenceMarker))
		p.codeStart = lineNo
		return
	}

	if strings.HasPrefix(trimmed, tableDelimiter) {
		if strings.Contains(trimmed, separatorDash) {
			if len(p.rows) > 0 {
				p.rowEnd = lineNo
			}
			return
		}
		if cells := splitRow(trimmed); len(cells) > 0 {
			if len(p.rows) == 0 {
				p.closeList()
				p.rowStart = lineNo
			}
			p.rows = append(p.rows, cells)
			p.rowEnd = lineNo
			return
		}
	}
	p.flushTable()

	if trimmed == "" {
		p.closeList()
		return
	}

	p.classify(lineNo, trimmed)
}

// classify applies the ordered predicate chain: heading, blockquote,
// list item, paragraph.
func (p *parser) classify(lineNo int, trimmed string) {
	if level, text, ok := matchHeading(trimmed); ok {
		p.closeList()
		p.emit(Node{Kind: KindHeading, Level: level, Text: text, StartLine: lineNo, Line: lineNo})
		return
	}

	if text, ok := strings.CutPrefix(trimmed, "> "); ok {
		p.closeList()
		p.emit(Node{Kind: KindBlockquote, Text: strings.TrimSpace(text), StartLine: lineNo, Line: lineNo})
		return
	}

	if text, ordered, ok := matchListItem(trimmed); ok {
		if p.list == 0 || p.listOrdered != ordered {
			p.lastList++
			p.list = p.lastList
			p.listOrdered = ordered
		}
		p.emit(Node{Kind: KindListItem, Text: text, Ordered: ordered, List: p.list, StartLine: lineNo, Line: lineNo})
		return
	}

	p.closeList()
	p.emit(Node{Kind: KindParagraph, Runs: ParseInline(trimmed), StartLine: lineNo, Line: lineNo})
}

func (p *parser) emit(n Node) {
	p.nodes = append(p.nodes, n)
}

func (p *parser) closeList() {
	p.list = 0
}

func (p *parser) flushCode(lineNo int) {
	if len(p.code) > 0 {
		lines := make([]string, len(p.code))
		copy(lines, p.code)
		p.emit(Node{
			Kind:      KindCode,
			Lang:      p.codeLang,
			Lines:     lines,
			StartLine: p.codeStart,
			Line:      lineNo,
		})
	}
	p.code = p.code[:0]
	p.codeLang = ""
}

func (p *parser) flushTable() {
	if len(p.rows) == 0 {
		return
	}
	p.emit(Node{Kind: KindTable, Rows: p.rows, StartLine: p.rowStart, Line: p.rowEnd})
	p.rows = nil
}

// finish flushes buffers left open at end of input, so an unterminated
// fence or a trailing table never swallows content.
func (p *parser) finish(lastLine int) {
	if p.state == stateInCode {
		p.flushCode(lastLine)
		p.state = stateNormal
	}
	p.flushTable()
}

func isFence(trimmed string) bool {
	return strings.HasPrefix(trimmed, fenceMarker)
}

// matchHeading tests the longest marker first so "##" is never read as
// a level-1 heading. Each marker requires exactly one trailing space.
func matchHeading(trimmed string) (int, string, bool) {
	for level := 6; level >= 1; level-- {
		prefix := strings.Repeat("#", level) + " "
		if text, ok := strings.CutPrefix(trimmed, prefix); ok {
			return level, strings.TrimSpace(text), true
		}
	}
	return 0, "", false
}

// matchListItem recognises "- ", "* " and "N. " markers.
func matchListItem(trimmed string) (string, bool, bool) {
	if text, ok := strings.CutPrefix(trimmed, "- "); ok {
		return strings.TrimSpace(text), false, true
	}
	if text, ok := strings.CutPrefix(trimmed, "* "); ok {
		return strings.TrimSpace(text), false, true
	}

	digits := 0
	for digits < len(trimmed) && trimmed[digits] >= '0' && trimmed[digits] <= '9' {
		digits++
	}
	if digits == 0 || digits+1 >= len(trimmed) || trimmed[digits] != '.' {
		return "", false, false
	}
	if !isSpace(trimmed[digits+1]) {
		return "", false, false
	}
	return strings.TrimSpace(trimmed[digits+2:]), true, true
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

// splitRow splits a table row into trimmed cells. The leading delimiter
// is dropped, as is a trailing one when present.
func splitRow(trimmed string) []string {
	body := strings.TrimPrefix(trimmed, tableDelimiter)
	body = strings.TrimSuffix(body, tableDelimiter)
	if strings.TrimSpace(body) == "" {
		return nil
	}
	parts := strings.Split(body, tableDelimiter)
	cells := make([]string, len(parts))
	for i, part := range parts {
		cells[i] = strings.TrimSpace(part)
	}
	return cells
}
