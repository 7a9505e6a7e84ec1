package main

import (
	"errors"
	"os"

	md2wx "github.com/alnah/go-md2wx"
	"github.com/alnah/go-md2wx/internal/config"
	"github.com/alnah/go-md2wx/internal/fileutil"
	"github.com/alnah/go-md2wx/internal/imagegen"
)

// Exit codes for md2wx CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Command completed
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, or validation
	ExitIO       = 3 // File not found, permission denied
	ExitUpstream = 4 // Generation service or credential errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Upstream errors (exit 4)
	if errors.Is(err, md2wx.ErrCredential) ||
		errors.Is(err, md2wx.ErrAnalysis) ||
		errors.Is(err, md2wx.ErrGeneration) {
		return ExitUpstream
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrReadState) ||
		errors.Is(err, fileutil.ErrOutputDirectory) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, md2wx.ErrEmptyTitle) ||
		errors.Is(err, md2wx.ErrEmptyContent) ||
		errors.Is(err, md2wx.ErrInvalidCount) ||
		errors.Is(err, md2wx.ErrInvalidStrategy) ||
		errors.Is(err, md2wx.ErrInvalidImageStyle) ||
		errors.Is(err, md2wx.ErrNoImageGenerator) ||
		errors.Is(err, md2wx.ErrIllustrationNotFound) ||
		errors.Is(err, md2wx.ErrThemeNotFound) ||
		errors.Is(err, md2wx.ErrInvalidThemePath) ||
		errors.Is(err, imagegen.ErrInvalidAspectRatio) ||
		errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) {
		return ExitUsage
	}

	return ExitGeneral
}
