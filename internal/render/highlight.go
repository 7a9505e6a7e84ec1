package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/alnah/go-md2wx/internal/style"
)

// DefaultCodeStyle suits the dark default code background.
const DefaultCodeStyle = "monokai"

// Highlighter colours fenced code with inline-styled spans. Colours come
// from a chroma style; the surrounding chrome stays themed.
type Highlighter struct {
	style *chroma.Style
}

// NewHighlighter returns a Highlighter for a chroma style name. Unknown
// names use chroma's fallback style.
func NewHighlighter(name string) *Highlighter {
	if name == "" {
		name = DefaultCodeStyle
	}
	return &Highlighter{style: styles.Get(name)}
}

// spans tokenises src. It returns nil when h is nil, the language is
// unknown or tokenising fails; the caller then emits plain text.
func (h *Highlighter) spans(lang, src string) []*element {
	if h == nil || lang == "" {
		return nil
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return nil
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, src)
	if err != nil {
		return nil
	}

	tokens := it.Tokens()
	// Some lexers append a newline to their input.
	if n := len(tokens); n > 0 && !strings.HasSuffix(src, "\n") {
		tokens[n-1].Value = strings.TrimSuffix(tokens[n-1].Value, "\n")
	}

	var out []*element
	for _, tok := range tokens {
		if tok.Value == "" {
			continue
		}
		props := tokenProperties(h.style.Get(tok.Type))
		if len(props) == 0 {
			out = append(out, textLeaf(tok.Value))
			continue
		}
		out = append(out, &element{tag: "span", overrides: props, text: tok.Value})
	}
	return out
}

func tokenProperties(e chroma.StyleEntry) style.Properties {
	var p style.Properties
	if e.Colour.IsSet() {
		p = append(p, style.Declaration{Property: "color", Value: e.Colour.String()})
	}
	if e.Bold == chroma.Yes {
		p = append(p, style.Declaration{Property: "font-weight", Value: "bold"})
	}
	if e.Italic == chroma.Yes {
		p = append(p, style.Declaration{Property: "font-style", Value: "italic"})
	}
	return p
}
