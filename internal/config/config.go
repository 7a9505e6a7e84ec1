package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2wx/internal/fileutil"
	"github.com/alnah/go-md2wx/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// appDir is the directory under the user config dir searched by name.
const appDir = "go-md2wx"

// Field length limits.
const (
	MaxNameLength        = 100
	MaxModelLength       = 100
	MaxPromptLength      = 2000
	MaxTextLength        = 500
	MaxPathLength        = 4096
	MaxAspectRatioLength = 10
	MaxCount             = 20
	MaxThinkingBudget    = 32768
)

// Config holds all configuration for article generation and export.
type Config struct {
	Generation GenerationConfig `yaml:"generation"`
	Theme      ThemeConfig      `yaml:"theme"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	Export     ExportConfig     `yaml:"export"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GenerationConfig defines illustration planning and image options.
type GenerationConfig struct {
	Count       int    `yaml:"count"`       // illustrations per article (default 4)
	Strategy    string `yaml:"strategy"`    // "assisted" or "even-spacing"
	ImageStyle  string `yaml:"imageStyle"`  // catalog key, see md2wx.ImageStyles
	CustomStyle string `yaml:"customStyle"` // descriptor when imageStyle is "custom"
	AspectRatio string `yaml:"aspectRatio"` // e.g. "16:9"
}

// ThemeConfig selects the document theme.
type ThemeConfig struct {
	Name     string `yaml:"name"`     // theme identifier
	BasePath string `yaml:"basePath"` // directory holding themes/*.yaml overrides
}

// GeminiConfig configures the generation service.
type GeminiConfig struct {
	APIKey         SecretString `yaml:"apiKey"` // prefer the environment
	AnalysisModel  string       `yaml:"analysisModel"`
	ImageModel     string       `yaml:"imageModel"`
	ThinkingBudget int          `yaml:"thinkingBudget"`
}

// ExportConfig defines export markup options.
type ExportConfig struct {
	HighlightCode bool   `yaml:"highlightCode"`
	CodeStyle     string `yaml:"codeStyle"`   // chroma style name
	ClosingText   string `yaml:"closingText"` // footer under the closing marker
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = same as source
}

// Validate checks field lengths and enumerations.
// Called automatically by LoadConfig.
func (c *Config) Validate() error {
	g := c.Generation
	if g.Count < 0 || g.Count > MaxCount {
		return fmt.Errorf("%w: generation.count must be between 0 and %d, got %d", ErrInvalidValue, MaxCount, g.Count)
	}
	switch g.Strategy {
	case "", "assisted", "even-spacing":
	default:
		return fmt.Errorf("%w: generation.strategy %q (must be assisted or even-spacing)", ErrInvalidValue, g.Strategy)
	}
	if err := validateFieldLength("generation.imageStyle", g.ImageStyle, MaxNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("generation.customStyle", g.CustomStyle, MaxPromptLength); err != nil {
		return err
	}
	if err := validateFieldLength("generation.aspectRatio", g.AspectRatio, MaxAspectRatioLength); err != nil {
		return err
	}

	if err := validateFieldLength("theme.name", c.Theme.Name, MaxNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("theme.basePath", c.Theme.BasePath, MaxPathLength); err != nil {
		return err
	}

	if err := validateFieldLength("gemini.analysisModel", c.Gemini.AnalysisModel, MaxModelLength); err != nil {
		return err
	}
	if err := validateFieldLength("gemini.imageModel", c.Gemini.ImageModel, MaxModelLength); err != nil {
		return err
	}
	if b := c.Gemini.ThinkingBudget; b < 0 || b > MaxThinkingBudget {
		return fmt.Errorf("%w: gemini.thinkingBudget must be between 0 and %d, got %d", ErrInvalidValue, MaxThinkingBudget, b)
	}

	if err := validateFieldLength("export.codeStyle", c.Export.CodeStyle, MaxNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("export.closingText", c.Export.ClosingText, MaxTextLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}

	return c.Logging.validate()
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Generation: GenerationConfig{
			Count:       4,
			Strategy:    "assisted",
			ImageStyle:  "modern-tech-3d",
			AspectRatio: "16:9",
		},
		Theme: ThemeConfig{Name: "wechat-default"},
		Gemini: GeminiConfig{
			AnalysisModel:  "gemini-3-pro-preview",
			ImageModel:     "gemini-3-pro-image-preview",
			ThinkingBudget: 16000,
		},
		Export: ExportConfig{
			CodeStyle:   "monokai",
			ClosingText: "Powered by md2wx",
		},
		Logging: LoggingConfig{Level: LevelNormal},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Fields absent from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths lists the files LoadConfig tries for a config name.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, appDir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches the current directory, then the user
// config directory.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
