package theme

import (
	"fmt"
	"strings"

	"github.com/alnah/go-md2wx/internal/style"
	"github.com/alnah/go-md2wx/internal/yamlutil"
)

// DefaultName is the theme used when a requested theme is missing.
const DefaultName = "wechat-default"

// fileExt is the theme file extension.
const fileExt = ".yaml"

// Theme is a parsed, validated theme. Styles is read-only.
type Theme struct {
	Name        string
	Label       string
	Description string
	Styles      style.Map
}

type themeFile struct {
	Name        string            `yaml:"name"`
	Label       string            `yaml:"label"`
	Description string            `yaml:"description"`
	Styles      map[string]string `yaml:"styles"`
}

// Decode parses and validates a theme document. The file name wins over
// an empty or mismatching name field.
func Decode(name string, data []byte) (*Theme, error) {
	var f themeFile
	if err := yamlutil.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTheme, name, err)
	}

	styles, err := style.ParseMap(f.Styles)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidTheme, name, err)
	}

	label := f.Label
	if label == "" {
		label = name
	}
	return &Theme{
		Name:        name,
		Label:       label,
		Description: strings.TrimSpace(f.Description),
		Styles:      styles,
	}, nil
}

// ValidateName checks that a theme name is safe to use as a file name.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
