package theme

import "errors"

// Sentinel errors for theme operations.
var (
	// ErrThemeNotFound indicates the requested theme does not exist.
	ErrThemeNotFound = errors.New("theme not found")

	// ErrInvalidTheme indicates a theme file failed to decode or validate.
	ErrInvalidTheme = errors.New("invalid theme")

	// ErrInvalidName indicates the theme name contains path separators,
	// dots or is empty.
	ErrInvalidName = errors.New("invalid theme name")

	// ErrInvalidBasePath indicates the configured base path is not a
	// readable directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrThemeRead indicates an I/O error while reading a theme file.
	ErrThemeRead = errors.New("failed to read theme")

	// ErrPathTraversal indicates an attempt to read outside the base path.
	ErrPathTraversal = errors.New("path traversal detected")
)
