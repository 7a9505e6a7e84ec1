package theme

import (
	"errors"
	"fmt"
	"sync"
)

// Catalog caches decoded themes and applies the default-fallback rule.
// Safe for concurrent use.
type Catalog struct {
	loader Loader

	mu    sync.Mutex
	cache map[string]*Theme
}

// NewCatalog creates a Catalog backed by loader.
func NewCatalog(loader Loader) *Catalog {
	return &Catalog{loader: loader, cache: make(map[string]*Theme)}
}

// Lookup returns the theme registered under name. An unknown or empty
// name yields the default theme and fellBack=true. Decode errors are
// returned as-is.
func (c *Catalog) Lookup(name string) (t *Theme, fellBack bool, err error) {
	if name == "" {
		name = DefaultName
	}

	t, err = c.load(name)
	if err == nil {
		return t, false, nil
	}
	if name == DefaultName || !(errors.Is(err, ErrThemeNotFound) || errors.Is(err, ErrInvalidName)) {
		return nil, false, err
	}

	t, err = c.load(DefaultName)
	if err != nil {
		return nil, false, fmt.Errorf("loading default theme: %w", err)
	}
	return t, true, nil
}

// Names lists the themes available to Lookup.
func (c *Catalog) Names() ([]string, error) {
	return c.loader.Names()
}

func (c *Catalog) load(name string) (*Theme, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.cache[name]; ok {
		return t, nil
	}
	t, err := c.loader.LoadTheme(name)
	if err != nil {
		return nil, err
	}
	c.cache[name] = t
	return t, nil
}
