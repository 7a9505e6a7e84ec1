package render

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-md2wx/internal/style"
)

// ClosingMarker is the fixed label of the closing section.
const ClosingMarker = "THE END"

// RichMediaClass marks the body section for paste hosts.
const RichMediaClass = "rich_media_content"

// Export renders doc as an inline-styled markup fragment. Every
// declaration carries exactly one !important marker. Illustrations
// without a URI are left out.
func Export(doc Document) (string, error) {
	bg := background(doc.Styles)
	bgDecl := style.Properties{{Property: "background-color", Value: bg}}

	body := &element{
		tag:       "section",
		attrs:     []html.Attribute{attr("class", RichMediaClass)},
		overrides: style.Parse("box-sizing: border-box; clear: both; min-height: 1em"),
		children:  layout(doc, false),
	}

	inner := &element{
		tag:       "section",
		overrides: style.Parse("box-sizing: border-box; width: 100%; display: block; overflow: hidden; padding: 1px 0"),
	}
	if doc.Cover != "" {
		inner.children = append(inner.children, &element{
			tag:       "section",
			overrides: style.Parse("margin: 0 0 45px 0; text-align: center; line-height: 0; display: block"),
			children: []*element{{
				tag:   "img",
				role:  style.RoleImg,
				attrs: []html.Attribute{attr("src", doc.Cover), attr("alt", "cover")},
			}},
		})
	}
	inner.children = append(inner.children, body, closingElement(doc.ClosingText))

	root := &element{
		tag:       "section",
		overrides: style.Merge(bgDecl, style.Parse("padding: 30px 0; display: block; margin: 0")),
		children: []*element{{
			tag:       "section",
			role:      style.RoleContainer,
			overrides: style.Merge(bgDecl, style.Parse("display: block; box-sizing: border-box; margin: 0 auto; position: relative")),
			children:  []*element{inner},
		}},
	}

	node := toHTML(root, doc.Styles)
	if node == nil {
		return "", nil
	}
	var b strings.Builder
	if err := html.Render(&b, node); err != nil {
		return "", fmt.Errorf("rendering export markup: %w", err)
	}
	return b.String(), nil
}

func closingElement(footer string) *element {
	rule := style.Parse("display: inline-block; width: 50px; height: 1px; background-color: #ddd; vertical-align: middle")
	marker := &element{
		tag:       "section",
		overrides: style.Parse("display: block; margin-bottom: 15px"),
		children: []*element{
			{tag: "section", overrides: rule},
			{
				tag:       "section",
				overrides: style.Parse("display: inline-block; margin: 0 15px; font-size: 10px; letter-spacing: 4px; color: #ccc; vertical-align: middle; font-weight: bold"),
				text:      ClosingMarker,
			},
			{tag: "section", overrides: rule},
		},
	}

	closing := &element{
		tag:       "section",
		overrides: style.Parse("margin-top: 100px; text-align: center; padding-bottom: 20px"),
		children:  []*element{marker},
	}
	if footer != "" {
		closing.children = append(closing.children, &element{
			tag:       "p",
			overrides: style.Parse("font-size: 11px; color: #bbb; margin: 0; letter-spacing: 1px"),
			text:      footer,
		})
	}
	return closing
}

// toHTML converts an element subtree.
func toHTML(e *element, m style.Map) *html.Node {
	if e.tag == "" {
		return &html.Node{Type: html.TextNode, Data: e.text}
	}

	n := &html.Node{Type: html.ElementNode, Data: e.tag, DataAtom: atom.Lookup([]byte(e.tag))}
	n.Attr = append(n.Attr, e.attrs...)
	if props := e.properties(m).Enforced(); len(props) > 0 {
		n.Attr = append(n.Attr, attr("style", props.String()))
	}

	if e.text != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: e.text})
	}
	for _, c := range e.children {
		n.AppendChild(toHTML(c, m))
	}
	return n
}
