package fileutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-md2wx/internal/fileutil"
)

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.md")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"regular file", file, true},
		{"directory", dir, false},
		{"missing", filepath.Join(dir, "nope"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.FileExists(tt.path); got != tt.want {
				t.Errorf("FileExists(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestIsFilePathAndURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		wantPath bool
		wantURL  bool
	}{
		{"wechat-tech", false, false},
		{"./house.yaml", true, false},
		{`C:\themes\x.yaml`, true, false},
		{"https://example.com/a.png", true, true},
		{"http://example.com", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.IsFilePath(tt.input); got != tt.wantPath {
				t.Errorf("IsFilePath(%q) = %v, want %v", tt.input, got, tt.wantPath)
			}
			if got := fileutil.IsURL(tt.input); got != tt.wantURL {
				t.Errorf("IsURL(%q) = %v, want %v", tt.input, got, tt.wantURL)
			}
		})
	}
}

func TestSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"ascii title", "Hello, World!", "hello-world"},
		{"punctuation only", "!!!", "fallback"},
		{"empty", "", "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.Slug(tt.title, "fallback"); got != tt.want {
				t.Errorf("Slug(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestSlug_TransliteratesNonLatin(t *testing.T) {
	t.Parallel()

	got := fileutil.Slug("深度报道", "fallback")
	if got == "fallback" || got == "" {
		t.Fatalf("Slug() = %q, want transliterated name", got)
	}
	for _, r := range got {
		if r > 127 {
			t.Errorf("Slug() = %q, want ASCII only", got)
			break
		}
	}
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		title string
		dir   string
		want  string
	}{
		{"title wins", "/in/draft.md", "My Post", "", filepath.Join("/in", "my-post.html")},
		{"input base name", "/in/draft.md", "", "", filepath.Join("/in", "draft.html")},
		{"explicit dir", "/in/draft.md", "", "/out", filepath.Join("/out", "draft.html")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fileutil.OutputPath(tt.input, tt.title, tt.dir, ".html"); got != tt.want {
				t.Errorf("OutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "out.html")
	if err := fileutil.WriteFile(path, []byte("<p>x</p>")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "<p>x</p>" {
		t.Errorf("ReadFile() = %q, %v", data, err)
	}
}

func TestWriteFile_BlockedDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	err := fileutil.WriteFile(filepath.Join(blocker, "out.html"), []byte("x"))
	if !errors.Is(err, fileutil.ErrOutputDirectory) {
		t.Errorf("WriteFile() error = %v, want ErrOutputDirectory", err)
	}
	if err != nil && !strings.Contains(err.Error(), "output directory") {
		t.Errorf("error = %q, want readable message", err)
	}
}
