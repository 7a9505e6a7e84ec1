package render

import (
	"github.com/alnah/go-md2wx/internal/style"
)

// Action is an affordance attached to a previewed illustration.
type Action string

// Illustration actions.
const (
	ActionRegenerate Action = "regenerate"
	ActionEdit       Action = "edit"
	ActionPreview    Action = "preview"
)

// Node is one preview node. A node with an empty Tag is a text leaf.
// Style keys are camelCase property names without priority markers.
type Node struct {
	Tag          string            `json:"tag,omitempty"`
	Style        map[string]string `json:"style,omitempty"`
	Attrs        map[string]string `json:"attrs,omitempty"`
	Text         string            `json:"text,omitempty"`
	Children     []*Node           `json:"children,omitempty"`
	Illustration *Slot             `json:"illustration,omitempty"`
}

// Slot describes the illustration held by a preview node.
type Slot struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Pending bool     `json:"pending,omitempty"`
	Busy    bool     `json:"busy,omitempty"`
	Actions []Action `json:"actions,omitempty"`
}

// Page is the preview target: the container style for the host page and
// the body nodes.
type Page struct {
	Container map[string]string `json:"container,omitempty"`
	Nodes     []*Node           `json:"nodes"`
}

// Preview renders doc as a node tree. Pending illustrations keep their
// slot without an image so their actions stay reachable. While an
// illustration is busy no slot offers actions.
func Preview(doc Document) Page {
	body := layout(doc, true)
	nodes := make([]*Node, 0, len(body))
	for _, e := range body {
		nodes = append(nodes, toNode(e, doc.Styles, doc.Busy))
	}
	return Page{
		Container: doc.Styles.Get(style.RoleContainer).Map(true),
		Nodes:     nodes,
	}
}

func toNode(e *element, m style.Map, busy string) *Node {
	if e.tag == "" {
		return &Node{Text: e.text}
	}

	n := &Node{
		Tag:   e.tag,
		Style: e.properties(m).Map(true),
		Text:  e.text,
	}
	if len(e.attrs) > 0 {
		n.Attrs = make(map[string]string, len(e.attrs))
		for _, a := range e.attrs {
			n.Attrs[a.Key] = a.Val
		}
	}

	if e.slot != nil {
		n.Illustration = &Slot{
			ID:      e.slot.ID,
			Prompt:  e.slot.Prompt,
			Pending: e.slot.URI == "",
			Busy:    busy != "" && e.slot.ID == busy,
		}
		if busy == "" {
			n.Illustration.Actions = []Action{ActionRegenerate, ActionEdit}
			if e.slot.URI != "" {
				n.Illustration.Actions = append(n.Illustration.Actions, ActionPreview)
			}
		}
		if e.slot.URI == "" {
			return n
		}
	}

	for _, c := range e.children {
		n.Children = append(n.Children, toNode(c, m, busy))
	}
	return n
}
