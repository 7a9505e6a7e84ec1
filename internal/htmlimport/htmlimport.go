// Package htmlimport converts pasted rich-text HTML into the markdown
// subset the block parser understands: headings, paragraphs, bold,
// italic, inline code, links, blockquotes, flat lists, fenced code and
// tables. Anything else is reduced to its text.
package htmlimport

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	spaceRun   = regexp.MustCompile(`[ \t\r\n\f]+`)
	blankLines = regexp.MustCompile(`\n{3,}`)
)

// Convert parses r as an HTML fragment or document and returns markdown.
func Convert(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	w := &writer{}
	w.block(doc)
	w.flush()

	out := blankLines.ReplaceAllString(w.out.String(), "\n\n")
	out = strings.TrimSpace(out)
	if out == "" {
		return "", nil
	}
	return out + "\n", nil
}

// ConvertString is Convert for a string.
func ConvertString(s string) (string, error) {
	return Convert(strings.NewReader(s))
}

// writer accumulates blocks. Inline content met at block level collects
// in pending until the next block boundary.
type writer struct {
	out     strings.Builder
	pending strings.Builder
}

func (w *writer) flush() {
	text := strings.TrimSpace(w.pending.String())
	w.pending.Reset()
	if text == "" {
		return
	}
	w.paragraph(text)
}

func (w *writer) paragraph(text string) {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			w.out.WriteString(line)
			w.out.WriteString("\n")
		}
	}
	w.out.WriteString("\n")
}

func (w *writer) block(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.node(c)
	}
}

func (w *writer) node(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.pending.WriteString(collapse(n.Data))
		return
	case html.ElementNode:
	default:
		w.block(n)
		return
	}

	if skipped(n.DataAtom) {
		return
	}

	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		w.flush()
		level := int(n.Data[1] - '0')
		if text := oneLine(inline(n)); text != "" {
			w.out.WriteString(strings.Repeat("#", level) + " " + text + "\n\n")
		}

	case atom.P:
		w.flush()
		if text := strings.TrimSpace(inline(n)); text != "" {
			w.paragraph(text)
		}

	case atom.Blockquote:
		w.flush()
		if text := oneLine(inline(n)); text != "" {
			w.out.WriteString("> " + text + "\n\n")
		}

	case atom.Ul, atom.Ol:
		w.flush()
		w.list(n, n.DataAtom == atom.Ol, new(int))
		w.out.WriteString("\n")

	case atom.Pre:
		w.flush()
		w.code(n)

	case atom.Table:
		w.flush()
		w.table(n)

	case atom.Br:
		w.pending.WriteString("\n")

	case atom.Hr:
		w.flush()

	case atom.Div, atom.Section, atom.Article, atom.Main, atom.Header, atom.Footer, atom.Body, atom.Html:
		w.flush()
		w.block(n)
		w.flush()

	default:
		w.pending.WriteString(inlineNode(n))
	}
}

// list writes one line per item. Nested lists are flattened into the
// same sequence since the target has no nesting.
func (w *writer) list(n *html.Node, ordered bool, counter *int) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.DataAtom != atom.Li {
			continue
		}

		var text strings.Builder
		var nested []*html.Node
		for gc := c.FirstChild; gc != nil; gc = gc.NextSibling {
			if gc.Type == html.ElementNode && (gc.DataAtom == atom.Ul || gc.DataAtom == atom.Ol) {
				nested = append(nested, gc)
				continue
			}
			text.WriteString(inlineNode(gc))
		}

		if item := oneLine(text.String()); item != "" {
			*counter++
			marker := "- "
			if ordered {
				marker = strconv.Itoa(*counter) + ". "
			}
			w.out.WriteString(marker + item + "\n")
		}
		for _, sub := range nested {
			w.list(sub, sub.DataAtom == atom.Ol, new(int))
		}
	}
}

func (w *writer) code(pre *html.Node) {
	lang := ""
	if c := pre.FirstChild; c != nil && c.Type == html.ElementNode && c.DataAtom == atom.Code {
		lang = language(c)
	}
	body := strings.Trim(textContent(pre), "\n")
	w.out.WriteString("```" + lang + "\n" + body + "\n```\n\n")
}

func (w *writer) table(n *html.Node) {
	rows := collectRows(n)
	if len(rows) == 0 {
		return
	}
	for i, cells := range rows {
		w.out.WriteString("| " + strings.Join(cells, " | ") + " |\n")
		if i == 0 {
			seps := make([]string, len(cells))
			for j := range seps {
				seps[j] = "---"
			}
			w.out.WriteString("| " + strings.Join(seps, " | ") + " |\n")
		}
	}
	w.out.WriteString("\n")
}

func collectRows(n *html.Node) [][]string {
	var rows [][]string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case atom.Thead, atom.Tbody, atom.Tfoot:
			rows = append(rows, collectRows(c)...)
		case atom.Tr:
			var cells []string
			for cell := c.FirstChild; cell != nil; cell = cell.NextSibling {
				if cell.Type == html.ElementNode && (cell.DataAtom == atom.Td || cell.DataAtom == atom.Th) {
					cells = append(cells, strings.ReplaceAll(oneLine(textContent(cell)), "|", "/"))
				}
			}
			if len(cells) > 0 {
				rows = append(rows, cells)
			}
		}
	}
	return rows
}

// inline renders the children of n as inline markdown.
func inline(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(inlineNode(c))
	}
	return b.String()
}

func inlineNode(n *html.Node) string {
	switch n.Type {
	case html.TextNode:
		return collapse(n.Data)
	case html.ElementNode:
	default:
		return ""
	}
	if skipped(n.DataAtom) {
		return ""
	}

	switch n.DataAtom {
	case atom.Strong, atom.B:
		return wrap("**", inline(n))
	case atom.Em, atom.I:
		return wrap("*", inline(n))
	case atom.Code:
		return wrap("`", oneLine(textContent(n)))
	case atom.A:
		text := inline(n)
		href := attr(n, "href")
		if href == "" || strings.TrimSpace(text) == "" {
			return text
		}
		return "[" + strings.TrimSpace(text) + "](" + href + ")"
	case atom.Br:
		return "\n"
	case atom.Img:
		return ""
	case atom.P, atom.Div, atom.Li, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return " " + inline(n) + " "
	default:
		return inline(n)
	}
}

// wrap surrounds the trimmed text with marker, keeping the outer spaces.
func wrap(marker, s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return s
	}
	lead := s[:len(s)-len(strings.TrimLeft(s, " "))]
	trail := s[len(strings.TrimRight(s, " ")):]
	return lead + marker + trimmed + marker + trail
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Br {
			b.WriteString("\n")
			continue
		}
		b.WriteString(textContent(c))
	}
	return b.String()
}

func language(code *html.Node) string {
	for _, class := range strings.Fields(attr(code, "class")) {
		if lang, ok := strings.CutPrefix(class, "language-"); ok {
			return lang
		}
		if lang, ok := strings.CutPrefix(class, "lang-"); ok {
			return lang
		}
	}
	return ""
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func collapse(s string) string {
	return spaceRun.ReplaceAllString(s, " ")
}

func oneLine(s string) string {
	return strings.TrimSpace(collapse(s))
}

func skipped(a atom.Atom) bool {
	switch a {
	case atom.Script, atom.Style, atom.Noscript, atom.Template, atom.Svg, atom.Math, atom.Iframe, atom.Object, atom.Embed, atom.Head:
		return true
	}
	return false
}
