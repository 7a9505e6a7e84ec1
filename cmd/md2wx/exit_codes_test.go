package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	md2wx "github.com/alnah/go-md2wx"
	"github.com/alnah/go-md2wx/internal/config"
	"github.com/alnah/go-md2wx/internal/fileutil"
	"github.com/alnah/go-md2wx/internal/imagegen"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"unexpected", errors.New("boom"), ExitGeneral},
		{"in flight", md2wx.ErrRegenerationInFlight, ExitGeneral},
		{"doctor", ErrDoctorFailed, ExitGeneral},

		{"credential", fmt.Errorf("%w: missing key", md2wx.ErrCredential), ExitUpstream},
		{"analysis", md2wx.ErrAnalysis, ExitUpstream},
		{"generation", fmt.Errorf("cover: %w", md2wx.ErrGeneration), ExitUpstream},

		{"not exist", fmt.Errorf("open: %w", os.ErrNotExist), ExitIO},
		{"permission", os.ErrPermission, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"read input", ErrReadInput, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"read state", ErrReadState, ExitIO},
		{"output dir", fileutil.ErrOutputDirectory, ExitIO},

		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"config value", config.ErrInvalidValue, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"empty title", md2wx.ErrEmptyTitle, ExitUsage},
		{"empty content", md2wx.ErrEmptyContent, ExitUsage},
		{"count", md2wx.ErrInvalidCount, ExitUsage},
		{"strategy", md2wx.ErrInvalidStrategy, ExitUsage},
		{"style", md2wx.ErrInvalidImageStyle, ExitUsage},
		{"no generator", md2wx.ErrNoImageGenerator, ExitUsage},
		{"unknown id", md2wx.ErrIllustrationNotFound, ExitUsage},
		{"theme", md2wx.ErrThemeNotFound, ExitUsage},
		{"theme path", md2wx.ErrInvalidThemePath, ExitUsage},
		{"aspect ratio", imagegen.ErrInvalidAspectRatio, ExitUsage},
		{"usage", ErrUsage, ExitUsage},
		{"unknown command", ErrUnknownCommand, ExitUsage},

		// A failed upstream call that also wraps a read error is upstream.
		{"upstream wins", fmt.Errorf("%w: %w", md2wx.ErrGeneration, os.ErrNotExist), ExitUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
