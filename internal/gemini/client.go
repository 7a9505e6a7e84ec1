// Package gemini implements the content analyzer and image generator on
// top of the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	md2wx "github.com/alnah/go-md2wx"
)

// ErrNoAPIKey is returned by New when no API key is configured.
var ErrNoAPIKey = errors.New("no Gemini API key")

// Default model settings.
const (
	DefaultAnalysisModel  = "gemini-3-pro-preview"
	DefaultImageModel     = "gemini-3-pro-image-preview"
	DefaultThinkingBudget = 16000
	DefaultImageSize      = "1K"
	DefaultTextLanguage   = "Chinese"
)

// Compile-time interface implementation checks.
var (
	_ md2wx.Analyzer       = (*Client)(nil)
	_ md2wx.ImageGenerator = (*Client)(nil)
	_ contentGenerator     = (*genai.Models)(nil)
)

// Config holds the client settings. Zero values select the defaults.
type Config struct {
	APIKey         string
	AnalysisModel  string
	ImageModel     string
	ThinkingBudget int32
	ImageSize      string

	// TextLanguage is the only language allowed for text drawn inside
	// generated images.
	TextLanguage string
}

func (c Config) withDefaults() Config {
	if c.AnalysisModel == "" {
		c.AnalysisModel = DefaultAnalysisModel
	}
	if c.ImageModel == "" {
		c.ImageModel = DefaultImageModel
	}
	if c.ThinkingBudget <= 0 {
		c.ThinkingBudget = DefaultThinkingBudget
	}
	if c.ImageSize == "" {
		c.ImageSize = DefaultImageSize
	}
	if c.TextLanguage == "" {
		c.TextLanguage = DefaultTextLanguage
	}
	return c
}

// contentGenerator is the subset of *genai.Models the client calls.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client talks to Gemini. It is safe for concurrent use.
type Client struct {
	models contentGenerator
	cfg    Config
	logger *zap.Logger
}

// New creates a Client for the Gemini Developer API. A nil logger is
// replaced by a no-op one.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: %w", md2wx.ErrCredential, ErrNoAPIKey)
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", classify(err))
	}
	return newClient(gc.Models, cfg, logger), nil
}

func newClient(models contentGenerator, cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		models: models,
		cfg:    cfg.withDefaults(),
		logger: logger.Named("gemini"),
	}
}

// credentialMessages mark upstream failures caused by the API key.
var credentialMessages = []string{
	"API key not valid",
	"API_KEY_INVALID",
	"Requested entity was not found",
	"PERMISSION_DENIED",
	"UNAUTHENTICATED",
}

// classify marks credential failures with md2wx.ErrCredential.
func classify(err error) error {
	if err == nil || errors.Is(err, md2wx.ErrCredential) {
		return err
	}
	if isCredentialError(err) {
		return fmt.Errorf("%w: %w", md2wx.ErrCredential, err)
	}
	return err
}

func isCredentialError(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && (apiErr.Code == 401 || apiErr.Code == 403) {
		return true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil && (apiErrPtr.Code == 401 || apiErrPtr.Code == 403) {
		return true
	}

	msg := err.Error()
	for _, m := range credentialMessages {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
