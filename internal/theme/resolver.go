package theme

import (
	"errors"
	"sort"
)

// Resolver tries a custom loader first and falls back to the embedded
// themes when the custom location does not have the requested theme.
type Resolver struct {
	custom   Loader // nil if no custom path configured
	embedded Loader
}

// NewResolver creates a Resolver. An empty customBasePath uses only the
// embedded themes.
func NewResolver(customBasePath string) (*Resolver, error) {
	r := &Resolver{embedded: NewEmbeddedLoader()}
	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.custom = fsLoader
	}
	return r, nil
}

// LoadTheme loads name from the custom loader, then the embedded one.
// Only not-found errors trigger the fallback: a broken custom theme is
// reported rather than silently replaced.
func (r *Resolver) LoadTheme(name string) (*Theme, error) {
	if r.custom == nil {
		return r.embedded.LoadTheme(name)
	}

	t, err := r.custom.LoadTheme(name)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, ErrThemeNotFound) {
		return nil, err
	}
	return r.embedded.LoadTheme(name)
}

// Names merges custom and embedded theme names without duplicates.
func (r *Resolver) Names() ([]string, error) {
	names, err := r.embedded.Names()
	if err != nil {
		return nil, err
	}
	if r.custom == nil {
		return names, nil
	}

	custom, err := r.custom.Names()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(names)+len(custom))
	merged := make([]string, 0, len(names)+len(custom))
	for _, n := range append(names, custom...) {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		merged = append(merged, n)
	}
	sort.Strings(merged)
	return merged, nil
}

// Compile-time interface check.
var _ Loader = (*Resolver)(nil)
