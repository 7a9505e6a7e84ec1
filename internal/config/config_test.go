package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/alnah/go-md2wx/internal/yamlutil"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
	if cfg.Generation.Count != 4 {
		t.Errorf("Generation.Count = %d, want 4", cfg.Generation.Count)
	}
	if cfg.Generation.Strategy != "assisted" {
		t.Errorf("Generation.Strategy = %q, want assisted", cfg.Generation.Strategy)
	}
	if cfg.Theme.Name != "wechat-default" {
		t.Errorf("Theme.Name = %q, want wechat-default", cfg.Theme.Name)
	}
	if cfg.Gemini.ThinkingBudget != 16000 {
		t.Errorf("Gemini.ThinkingBudget = %d, want 16000", cfg.Gemini.ThinkingBudget)
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		max     int
		wantErr bool
	}{
		{"empty value", "", 10, false},
		{"at limit", "1234567890", 10, false},
		{"over limit", "12345678901", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("field", tt.value, tt.max)
			if tt.wantErr && !errors.Is(err, ErrFieldTooLong) {
				t.Errorf("error = %v, want ErrFieldTooLong", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"defaults", func(*Config) {}, nil},
		{"negative count", func(c *Config) { c.Generation.Count = -1 }, ErrInvalidValue},
		{"count too high", func(c *Config) { c.Generation.Count = MaxCount + 1 }, ErrInvalidValue},
		{"unknown strategy", func(c *Config) { c.Generation.Strategy = "random" }, ErrInvalidValue},
		{"even spacing", func(c *Config) { c.Generation.Strategy = "even-spacing" }, nil},
		{"long custom style", func(c *Config) { c.Generation.CustomStyle = strings.Repeat("x", MaxPromptLength+1) }, ErrFieldTooLong},
		{"thinking budget", func(c *Config) { c.Gemini.ThinkingBudget = -5 }, ErrInvalidValue},
		{"log level", func(c *Config) { c.Logging.Level = "verbose" }, ErrInvalidValue},
		{"log mode", func(c *Config) { c.Logging.Mode = "rotate" }, ErrInvalidValue},
		{"closing text", func(c *Config) { c.Export.ClosingText = strings.Repeat("x", MaxTextLength+1) }, ErrFieldTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig_FromPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "work.yaml")
	data := "generation:\n  count: 6\ntheme:\n  name: wechat-tech\nexport:\n  highlightCode: true\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Generation.Count != 6 || cfg.Theme.Name != "wechat-tech" || !cfg.Export.HighlightCode {
		t.Errorf("LoadConfig() = %+v, want file values applied", cfg)
	}
	if cfg.Generation.AspectRatio != "16:9" {
		t.Errorf("AspectRatio = %q, want default kept", cfg.Generation.AspectRatio)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	unknown := filepath.Join(dir, "unknown.yaml")
	if err := os.WriteFile(unknown, []byte("page:\n  size: a4\n"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("generation:\n  strategy: random\n"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"empty name", "", ErrEmptyConfigName},
		{"missing path", filepath.Join(dir, "missing.yaml"), ErrConfigNotFound},
		{"missing name", "no-such-config-xyz", ErrConfigNotFound},
		{"unknown field", unknown, ErrConfigParse},
		{"invalid value", invalid, ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := LoadConfig(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadConfig(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("work")
	if len(paths) < 2 || paths[0] != "work.yaml" || paths[1] != "work.yml" {
		t.Errorf("SearchPaths() = %v, want local candidates first", paths)
	}
}

func TestSecretString(t *testing.T) {
	t.Parallel()

	s := SecretString("key-123")
	if s.String() != SecretValue || s.Reveal() != "key-123" {
		t.Errorf("String() = %q, Reveal() = %q", s.String(), s.Reveal())
	}

	j, err := json.Marshal(struct{ Key SecretString }{s})
	if err != nil || strings.Contains(string(j), "key-123") {
		t.Errorf("json.Marshal() = %s, %v; want value hidden", j, err)
	}

	y, err := yamlutil.Marshal(GeminiConfig{APIKey: s})
	if err != nil || strings.Contains(string(y), "key-123") {
		t.Errorf("yaml Marshal() = %s, %v; want value hidden", y, err)
	}

	var g GeminiConfig
	if err := yamlutil.Unmarshal([]byte("apiKey: abc"), &g); err != nil || g.APIKey.Reveal() != "abc" {
		t.Errorf("Unmarshal() = %q, %v; want abc", g.APIKey.Reveal(), err)
	}
}

func TestLoggingConfig_Logger(t *testing.T) {
	t.Parallel()

	t.Run("normal writes info but not debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger, closeFn, err := LoggingConfig{Level: LevelNormal}.Logger(&buf)
		if err != nil {
			t.Fatalf("Logger() error = %v", err)
		}
		logger.Debug("hidden")
		logger.Info("shown")
		if err := closeFn(); err != nil {
			t.Errorf("close error = %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, "shown") || strings.Contains(out, "hidden") {
			t.Errorf("log output = %q", out)
		}
	})

	t.Run("none is silent", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger, _, err := LoggingConfig{Level: LevelNone}.Logger(&buf)
		if err != nil {
			t.Fatalf("Logger() error = %v", err)
		}
		logger.Error("nothing")
		if buf.Len() != 0 {
			t.Errorf("log output = %q, want empty", buf.String())
		}
	})

	t.Run("file destination", func(t *testing.T) {
		t.Parallel()

		dest := filepath.Join(t.TempDir(), "md2wx.log")
		logger, closeFn, err := LoggingConfig{Level: LevelDebug, Destination: dest}.Logger(&bytes.Buffer{})
		if err != nil {
			t.Fatalf("Logger() error = %v", err)
		}
		logger.Debug("to file")
		if err := closeFn(); err != nil {
			t.Fatalf("close error = %v", err)
		}
		data, _ := os.ReadFile(dest)
		if !strings.Contains(string(data), "to file") {
			t.Errorf("log file = %q, want entry", data)
		}
	})

	t.Run("errors are printed without verbose chain", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger, _, _ := LoggingConfig{Level: LevelNormal}.Logger(&buf)
		logger.Error("failed", zap.Error(errors.New("boom")))
		if !strings.Contains(buf.String(), "boom") {
			t.Errorf("log output = %q, want error text", buf.String())
		}
	})
}
