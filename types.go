package md2wx

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-md2wx/internal/blocks"
)

// Paragraph is one non-empty source line. LogicalIndex is the coordinate
// analyzers answer in.
type Paragraph = blocks.Paragraph

// Strategy selects how illustration positions are chosen.
type Strategy string

// Placement strategies.
const (
	StrategyAssisted    Strategy = "assisted"
	StrategyEvenSpacing Strategy = "even-spacing"
)

// ParseStrategy accepts "assisted" or "even-spacing" in any case. Empty
// selects assisted.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyAssisted:
		return StrategyAssisted, nil
	case StrategyEvenSpacing:
		return StrategyEvenSpacing, nil
	default:
		return "", fmt.Errorf("%w: %q (must be assisted or even-spacing)", ErrInvalidStrategy, s)
	}
}

// Default generation settings.
const (
	DefaultCount       = 4
	MaxCount           = 20
	DefaultAspectRatio = "16:9"
	coverAspectRatio   = "16:9"
)

// Suggestion is an analyzer hint: a paragraph worth illustrating and a
// prompt for it. Index is a logical paragraph index.
type Suggestion struct {
	Index     int
	Prompt    string
	Rationale string
}

// AnalysisRequest is the input to an Analyzer.
type AnalysisRequest struct {
	Title      string
	Content    string
	Paragraphs []Paragraph
	Count      int
	Strategy   Strategy
}

// Analyzer proposes illustration positions for an article.
// Its answer is a hint only: out-of-range or duplicate indexes are
// repaired by the scheduler, and a failure triggers even spacing.
type Analyzer interface {
	Analyze(ctx context.Context, req AnalysisRequest) ([]Suggestion, error)
}

// ImageRequest is the input to an ImageGenerator.
type ImageRequest struct {
	Prompt          string
	StyleDescriptor string
	AspectRatio     string
}

// ImageGenerator produces one image per call and returns its URI, usually
// a data URI.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, req ImageRequest) (string, error)
}

// Stage tags the progress of a generation run.
type Stage string

// Generation stages, in the order a run visits them.
const (
	StageIdle         Stage = ""
	StageAnalyzing    Stage = "analyzing"
	StageCover        Stage = "cover"
	StageIllustration Stage = "illustration"
	StageReady        Stage = "ready"
	StageFailed       Stage = "failed"
)

// Status is the progress of the latest generation run.
// Current and Total are set during the illustration stage only.
type Status struct {
	Stage   Stage  `yaml:"stage,omitempty" json:"stage,omitempty"`
	Current int    `yaml:"current,omitempty" json:"current,omitempty"`
	Total   int    `yaml:"total,omitempty" json:"total,omitempty"`
	Message string `yaml:"message,omitempty" json:"message,omitempty"`
}

// String returns a one-line progress message.
func (s Status) String() string {
	switch s.Stage {
	case StageIdle:
		return "idle"
	case StageAnalyzing:
		return "analyzing content"
	case StageCover:
		return "generating cover"
	case StageIllustration:
		return fmt.Sprintf("illustration %d/%d", s.Current, s.Total)
	case StageReady:
		return "ready"
	case StageFailed:
		if s.Message != "" {
			return "failed: " + s.Message
		}
		return "failed"
	default:
		return string(s.Stage)
	}
}

// ProgressFunc receives every status change of a generation run.
type ProgressFunc func(Status)

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithAnalyzer sets the content analyzer used by assisted placement.
// Without one, every run uses even spacing.
func WithAnalyzer(a Analyzer) Option {
	return func(c *Converter) {
		c.analyzer = a
	}
}

// WithImageGenerator sets the image generator. Generate and Regenerate
// fail with ErrNoImageGenerator without one.
func WithImageGenerator(g ImageGenerator) Option {
	return func(c *Converter) {
		c.images = g
	}
}

// WithProgress registers a callback for status changes.
func WithProgress(fn ProgressFunc) Option {
	return func(c *Converter) {
		c.progress = fn
	}
}

// WithThemePath adds a directory of custom themes, looked up before the
// built-in ones. The directory must contain a themes/ subdirectory.
func WithThemePath(path string) Option {
	return func(c *Converter) {
		c.themePath = path
	}
}

// WithCodeHighlighting colours fenced code with the named chroma style.
// An empty name selects the default style.
func WithCodeHighlighting(styleName string) Option {
	return func(c *Converter) {
		c.highlight = true
		c.codeStyle = styleName
	}
}

// WithClosingText sets the footer line under the closing marker.
func WithClosingText(text string) Option {
	return func(c *Converter) {
		c.closingText = text
	}
}
