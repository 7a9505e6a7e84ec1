// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
)

// ErrOutputDirectory indicates the output directory could not be created.
var ErrOutputDirectory = errors.New("cannot create output directory")

// maxNameLength bounds slugged output names.
const maxNameLength = 80

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
//
// Examples:
//   - "wechat-tech" -> false (name)
//   - "./house.yaml" -> true (relative path)
//   - "/etc/md2wx.yaml" -> true (absolute)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsURL returns true if the string looks like a URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// Slug returns a file-name-safe slug for title, or fallback when the
// title has no usable characters.
func Slug(title, fallback string) string {
	s := slug.Make(title)
	if len(s) > maxNameLength {
		s = strings.TrimRight(s[:maxNameLength], "-")
	}
	if s == "" {
		return fallback
	}
	return s
}

// OutputPath derives the output file for an input article.
// The name comes from the title when set, otherwise from the input's base
// name. dir defaults to the input's directory.
func OutputPath(input, title, dir, ext string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "article"
	}
	name := base
	if strings.TrimSpace(title) != "" {
		name = Slug(title, base)
	}
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, name+ext)
}

// WriteFile writes data to path, creating parent directories.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("%w: %v", ErrOutputDirectory, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 -- article output is meant to be shared
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
