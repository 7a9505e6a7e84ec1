package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alnah/go-md2wx/internal/config"
	"github.com/alnah/go-md2wx/internal/hints"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath  string // MD2WX_CONFIG: config file name or path
	Theme       string // MD2WX_THEME: theme name
	ThemePath   string // MD2WX_THEME_PATH: custom theme directory
	ImageStyle  string // MD2WX_IMAGE_STYLE: illustration style
	Strategy    string // MD2WX_STRATEGY: assisted or even-spacing
	Count       int    // MD2WX_COUNT: illustrations per article
	AspectRatio string // MD2WX_ASPECT_RATIO: e.g. 4:3
	OutputDir   string // MD2WX_OUTPUT_DIR: default output directory
	LogLevel    string // MD2WX_LOG_LEVEL: none, normal, debug

	// APIKey is the first non-empty credential variable.
	APIKey string
}

// knownEnvVars lists valid MD2WX_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2WX_CONFIG":       true,
	"MD2WX_THEME":        true,
	"MD2WX_THEME_PATH":   true,
	"MD2WX_IMAGE_STYLE":  true,
	"MD2WX_STRATEGY":     true,
	"MD2WX_COUNT":        true,
	"MD2WX_ASPECT_RATIO": true,
	"MD2WX_OUTPUT_DIR":   true,
	"MD2WX_LOG_LEVEL":    true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig(env *Environment) *envConfig {
	cfg := &envConfig{
		ConfigPath:  env.Getenv("MD2WX_CONFIG"),
		Theme:       env.Getenv("MD2WX_THEME"),
		ThemePath:   env.Getenv("MD2WX_THEME_PATH"),
		ImageStyle:  env.Getenv("MD2WX_IMAGE_STYLE"),
		Strategy:    env.Getenv("MD2WX_STRATEGY"),
		AspectRatio: env.Getenv("MD2WX_ASPECT_RATIO"),
		OutputDir:   env.Getenv("MD2WX_OUTPUT_DIR"),
		LogLevel:    env.Getenv("MD2WX_LOG_LEVEL"),
	}

	// Invalid counts are ignored, config validation covers the range.
	if count := env.Getenv("MD2WX_COUNT"); count != "" {
		if n, err := strconv.Atoi(count); err == nil && n > 0 {
			cfg.Count = n
		}
	}

	for _, name := range hints.CredentialEnvVars {
		if v := strings.TrimSpace(env.Getenv(name)); v != "" {
			cfg.APIKey = v
			break
		}
	}
	return cfg
}

// warnUnknownEnvVars prints warnings for unrecognized MD2WX_* variables.
// Helps catch typos like MD2WX_THEMES instead of MD2WX_THEME.
func warnUnknownEnvVars(env *Environment) {
	for _, kv := range env.Environ() {
		if strings.HasPrefix(kv, "MD2WX_") {
			name := strings.SplitN(kv, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(env.Stderr, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment values on top of the loaded config.
// Priority: CLI flags > front matter > env vars > config file > defaults
// (front matter and flags are applied later).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Theme != "" {
		cfg.Theme.Name = env.Theme
	}
	if env.ThemePath != "" {
		cfg.Theme.BasePath = env.ThemePath
	}
	if env.ImageStyle != "" {
		cfg.Generation.ImageStyle = env.ImageStyle
	}
	if env.Strategy != "" {
		cfg.Generation.Strategy = env.Strategy
	}
	if env.Count > 0 {
		cfg.Generation.Count = env.Count
	}
	if env.AspectRatio != "" {
		cfg.Generation.AspectRatio = env.AspectRatio
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.LogLevel != "" {
		cfg.Logging.Level = env.LogLevel
	}
	if env.APIKey != "" {
		cfg.Gemini.APIKey = config.SecretString(env.APIKey)
	}
}
