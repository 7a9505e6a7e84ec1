package style

import (
	"strings"
)

// importantMarker is the override-priority marker.
const importantMarker = "!important"

// Declaration is a single CSS property/value pair.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// Properties is an ordered list of declarations. Order is kept because
// later declarations win in the destination host.
type Properties []Declaration

// Parse splits a semicolon-delimited declaration string.
// Each clause is split on its first colon, both sides are trimmed and
// empty clauses are discarded. An existing !important suffix is lifted
// into Declaration.Important so it is never duplicated on output.
func Parse(s string) Properties {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	clauses := strings.Split(s, ";")
	props := make(Properties, 0, len(clauses))
	for _, clause := range clauses {
		clause = strings.TrimSpace(clause)
		if clause == "" {
			continue
		}
		name, value, ok := strings.Cut(clause, ":")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		value, important := splitImportant(strings.TrimSpace(value))
		if name == "" || value == "" {
			continue
		}
		props = append(props, Declaration{
			Property:  strings.ToLower(name),
			Value:     value,
			Important: important,
		})
	}
	return props
}

// Resolve parses s and, when enforce is set, marks every declaration
// with the override-priority flag.
func Resolve(s string, enforce bool) Properties {
	props := Parse(s)
	if enforce {
		return props.Enforced()
	}
	return props
}

// splitImportant removes a trailing !important (case-insensitive).
func splitImportant(value string) (string, bool) {
	lower := strings.ToLower(value)
	idx := strings.LastIndex(lower, importantMarker)
	if idx == -1 || strings.TrimSpace(lower[idx+len(importantMarker):]) != "" {
		return value, false
	}
	return strings.TrimSpace(value[:idx]), true
}

// Enforced returns a copy with every declaration marked important.
func (p Properties) Enforced() Properties {
	if len(p) == 0 {
		return nil
	}
	out := make(Properties, len(p))
	for i, d := range p {
		d.Important = true
		out[i] = d
	}
	return out
}

// Get returns the value of the last declaration for property.
func (p Properties) Get(property string) (string, bool) {
	property = strings.ToLower(property)
	for i := len(p) - 1; i >= 0; i-- {
		if p[i].Property == property {
			return p[i].Value, true
		}
	}
	return "", false
}

// Merge appends extra after p. Neither input is modified.
func Merge(p Properties, extra ...Properties) Properties {
	n := len(p)
	for _, e := range extra {
		n += len(e)
	}
	if n == 0 {
		return nil
	}
	out := make(Properties, 0, n)
	out = append(out, p...)
	for _, e := range extra {
		out = append(out, e...)
	}
	return out
}

// String serialises the declarations for a style attribute.
// Important declarations carry exactly one marker.
func (p Properties) String() string {
	var b strings.Builder
	for i, d := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(d.Property)
		b.WriteString(": ")
		b.WriteString(d.Value)
		if d.Important {
			b.WriteByte(' ')
			b.WriteString(importantMarker)
		}
		b.WriteByte(';')
	}
	return b.String()
}

// Map returns the declarations as a property map for node-based
// consumers. Property names are converted to camelCase when camel is set.
// The priority marker is dropped: node hosts honour normal cascade order.
func (p Properties) Map(camel bool) map[string]string {
	if len(p) == 0 {
		return nil
	}
	out := make(map[string]string, len(p))
	for _, d := range p {
		name := d.Property
		if camel {
			name = CamelCase(name)
		}
		out[name] = d.Value
	}
	return out
}

// CamelCase converts a kebab-case property name ("border-top-color")
// to camelCase ("borderTopColor"). Custom properties ("--x") are kept.
func CamelCase(name string) string {
	if strings.HasPrefix(name, "--") || !strings.Contains(name, "-") {
		return name
	}
	var b strings.Builder
	b.Grow(len(name))
	upper := false
	for _, r := range name {
		if r == '-' {
			upper = true
			continue
		}
		if upper && r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		upper = false
		b.WriteRune(r)
	}
	return b.String()
}
