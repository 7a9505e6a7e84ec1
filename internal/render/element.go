package render

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/alnah/go-md2wx/internal/blocks"
	"github.com/alnah/go-md2wx/internal/style"
)

// Illustration is a realised image anchored after a physical line.
// An empty URI means generation has not produced pixels for it.
type Illustration struct {
	ID     string
	Line   int
	URI    string
	Prompt string
}

// Document is the renderer input.
type Document struct {
	Nodes         []blocks.Node
	Illustrations []Illustration
	Styles        style.Map

	// Cover is the URI of the selected cover. Export only.
	Cover string

	// ClosingText is the footer line under the closing marker. Export
	// only; empty omits the line.
	ClosingText string

	// Highlighter colours fenced code when set.
	Highlighter *Highlighter

	// Busy is the ID of an illustration being regenerated. Preview only.
	Busy string
}

// element is the shared layout representation. A text leaf has an empty
// tag.
type element struct {
	tag  string
	role style.Role

	// defaults precede the theme declarations, overrides follow them.
	defaults  style.Properties
	overrides style.Properties

	attrs    []html.Attribute
	text     string
	children []*element

	slot *Illustration
}

func (e *element) properties(m style.Map) style.Properties {
	var themed style.Properties
	if e.role != "" {
		themed = m.Get(e.role)
	}
	return style.Merge(e.defaults, themed, e.overrides)
}

func textLeaf(s string) *element {
	return &element{text: s}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

// Fixed declarations shared by both targets.
var (
	tableDefaults = style.Parse("width: 100%; border-collapse: collapse; margin: 20px 0")
	tableOverride = style.Parse("text-indent: 0")
	thDefaults    = style.Parse("padding: 12px 15px; background-color: #f6f6f6; font-weight: bold; text-align: left")
	thOverride    = style.Parse("line-height: 1.5")
	tdDefaults    = style.Parse("padding: 12px 15px")
	tdOverride    = style.Parse("line-height: 1.5")
	trDefaults    = style.Parse("border-bottom: 1px solid #eee")

	slotOverride    = style.Parse("margin: 30px 0; text-align: center; line-height: 0; display: block")
	slotImgOverride = style.Parse("display: inline-block")

	chromeBar = style.Parse("display: flex; padding: 12px 16px; gap: 8px; align-items: center")
	chromeDot = style.Parse("width: 12px; height: 12px; border-radius: 50%")
	preInCode = style.Parse("margin: 0; padding: 0 16px 16px 16px; border: none; border-radius: 0")
	codeInPre = style.Parse("white-space: pre-wrap; word-break: break-all")
)

// Window dot colours of the code block chrome.
var chromeDots = []string{"#ff5f56", "#ffbd2e", "#27c93f"}

const (
	defaultBackground     = "#ffffff"
	defaultCodeBackground = "#2d2d2d"
)

// layout builds the body element list. After each block, every
// illustration anchored at or before the block's last line is emitted;
// illustrations anchored past the final block are appended at the end.
// Slots without an image are dropped unless includePending is set, so
// they never split a list.
func layout(doc Document, includePending bool) []*element {
	slots := make([]Illustration, 0, len(doc.Illustrations))
	for _, ill := range doc.Illustrations {
		if ill.URI != "" || includePending {
			slots = append(slots, ill)
		}
	}
	sort.SliceStable(slots, func(i, j int) bool { return slots[i].Line < slots[j].Line })

	codeBg := defaultCodeBackground
	if v, ok := doc.Styles.Get(style.RolePre).Get("background-color"); ok {
		codeBg = v
	}

	var (
		out      []*element
		list     *element
		listID   = -1
		nextSlot int
	)

	emitSlots := func(upTo int, all bool) {
		for nextSlot < len(slots) && (all || slots[nextSlot].Line <= upTo) {
			out = append(out, slotElement(&slots[nextSlot]))
			list = nil
			nextSlot++
		}
	}

	for _, n := range doc.Nodes {
		if n.Kind == blocks.KindListItem {
			if list == nil || listID != n.List {
				list = listElement(n.Ordered)
				listID = n.List
				out = append(out, list)
			}
			list.children = append(list.children, &element{tag: "li", role: style.RoleLi, text: n.Text})
		} else {
			list = nil
			out = append(out, blockElement(n, codeBg, doc.Highlighter))
		}
		emitSlots(n.Line, false)
	}
	emitSlots(0, true)
	return out
}

func listElement(ordered bool) *element {
	if ordered {
		return &element{tag: "ol", role: style.RoleOl}
	}
	return &element{tag: "ul", role: style.RoleUl}
}

func blockElement(n blocks.Node, codeBg string, hl *Highlighter) *element {
	switch n.Kind {
	case blocks.KindHeading:
		level := min(max(n.Level, 1), 6)
		return &element{tag: "h" + strconv.Itoa(level), role: style.HeadingRole(level), text: n.Text}
	case blocks.KindBlockquote:
		return &element{tag: "blockquote", role: style.RoleBlockquote, text: n.Text}
	case blocks.KindCode:
		return codeElement(n, codeBg, hl)
	case blocks.KindTable:
		return tableElement(n.Rows)
	default:
		return paragraphElement(n.Runs)
	}
}

func paragraphElement(runs []blocks.Run) *element {
	p := &element{tag: "p", role: style.RoleP}
	for _, r := range runs {
		switch r.Kind {
		case blocks.RunStrong:
			p.children = append(p.children, &element{tag: "strong", role: style.RoleStrong, text: r.Text})
		case blocks.RunEm:
			p.children = append(p.children, &element{tag: "em", role: style.RoleEm, text: r.Text})
		case blocks.RunCode:
			p.children = append(p.children, &element{tag: "code", role: style.RoleCode, text: r.Text})
		case blocks.RunLink:
			p.children = append(p.children, &element{
				tag:   "a",
				role:  style.RoleA,
				attrs: []html.Attribute{attr("href", r.URL)},
				text:  r.Text,
			})
		default:
			p.children = append(p.children, textLeaf(r.Text))
		}
	}
	return p
}

func codeElement(n blocks.Node, bg string, hl *Highlighter) *element {
	src := strings.Join(n.Lines, "\n")

	code := &element{tag: "code", role: style.RoleCode, overrides: codeInPre}
	if n.Lang != "" {
		code.attrs = []html.Attribute{attr("class", "language-"+n.Lang)}
	}
	if spans := hl.spans(n.Lang, src); spans != nil {
		code.children = spans
	} else {
		code.text = src
	}

	bar := &element{tag: "section", overrides: chromeBar}
	for _, c := range chromeDots {
		bar.children = append(bar.children, &element{
			tag:       "section",
			overrides: style.Merge(chromeDot, style.Properties{{Property: "background-color", Value: c}}),
		})
	}

	return &element{
		tag: "section",
		overrides: style.Merge(
			style.Parse("margin: 20px 0"),
			style.Properties{{Property: "background-color", Value: bg}},
			style.Parse("border-radius: 8px; overflow: hidden; display: block"),
		),
		children: []*element{
			bar,
			{tag: "pre", role: style.RolePre, overrides: preInCode, children: []*element{code}},
		},
	}
}

func tableElement(rows [][]string) *element {
	table := &element{
		tag:       "table",
		role:      style.RoleTable,
		defaults:  tableDefaults,
		overrides: tableOverride,
		attrs: []html.Attribute{
			attr("width", "100%"),
			attr("cellspacing", "0"),
			attr("cellpadding", "0"),
			attr("border", "0"),
		},
	}
	if len(rows) == 0 {
		return table
	}

	row := func(cells []string, tag string, role style.Role, def, over style.Properties) *element {
		tr := &element{tag: "tr", role: style.RoleTr, defaults: trDefaults}
		for _, c := range cells {
			tr.children = append(tr.children, &element{tag: tag, role: role, defaults: def, overrides: over, text: c})
		}
		return tr
	}

	thead := &element{tag: "thead", children: []*element{row(rows[0], "th", style.RoleTh, thDefaults, thOverride)}}
	tbody := &element{tag: "tbody"}
	for _, r := range rows[1:] {
		tbody.children = append(tbody.children, row(r, "td", style.RoleTd, tdDefaults, tdOverride))
	}
	table.children = []*element{thead, tbody}
	return table
}

func slotElement(ill *Illustration) *element {
	return &element{
		tag:       "section",
		overrides: slotOverride,
		slot:      ill,
		children: []*element{{
			tag:       "img",
			role:      style.RoleImg,
			overrides: slotImgOverride,
			attrs:     []html.Attribute{attr("src", ill.URI), attr("alt", ill.Prompt)},
		}},
	}
}

// background returns the container background colour.
func background(m style.Map) string {
	c := m.Get(style.RoleContainer)
	if v, ok := c.Get("background-color"); ok {
		return v
	}
	if v, ok := c.Get("background"); ok {
		return v
	}
	return defaultBackground
}
