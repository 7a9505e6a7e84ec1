package md2wx

import "errors"

// Sentinel errors for library operations.
var (
	// Input validation errors.
	ErrEmptyTitle        = errors.New("article title cannot be empty")
	ErrEmptyContent      = errors.New("article content cannot be empty")
	ErrInvalidCount      = errors.New("invalid illustration count")
	ErrInvalidStrategy   = errors.New("invalid placement strategy")
	ErrInvalidImageStyle = errors.New("invalid image style")

	// Upstream collaborator errors.
	ErrAnalysis         = errors.New("content analysis failed")
	ErrGeneration       = errors.New("image generation failed")
	ErrCredential       = errors.New("missing or rejected credential")
	ErrNoImageGenerator = errors.New("no image generator configured")

	// Regeneration errors.
	ErrRegenerationInFlight = errors.New("another regeneration is in progress")
	ErrIllustrationNotFound = errors.New("illustration not found")

	// Theme errors.
	ErrThemeNotFound    = errors.New("theme not found")
	ErrInvalidThemePath = errors.New("invalid theme path")
)
