package md2wx

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alnah/go-md2wx/internal/blocks"
	"github.com/alnah/go-md2wx/internal/placement"
	"github.com/alnah/go-md2wx/internal/render"
	"github.com/alnah/go-md2wx/internal/theme"
)

// Compile-time interface implementation checks.
var (
	_ theme.Loader = (*theme.Resolver)(nil)
	_ theme.Loader = (*theme.EmbeddedLoader)(nil)
	_ theme.Loader = (*theme.FilesystemLoader)(nil)
)

// PreviewPage is the interactive render target returned by Preview.
type PreviewPage = render.Page

// Converter orchestrates analysis, image generation and rendering.
// Create with NewConverter. A Converter is safe for concurrent use; at
// most one Regenerate call runs at a time.
type Converter struct {
	analyzer    Analyzer
	images      ImageGenerator
	logger      *zap.Logger
	progress    ProgressFunc
	themePath   string
	catalog     *theme.Catalog
	highlight   bool
	codeStyle   string
	highlighter *render.Highlighter
	closingText string
	newID       func() string

	// busy is the ID under regeneration, or "".
	mu   sync.Mutex
	busy string
}

// NewConverter creates a Converter. Without options it renders with the
// built-in themes and places illustrations by even spacing.
// Returns an error if the theme path is unusable.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		logger: zap.NewNop(),
		newID:  uuid.NewString,
	}

	for _, opt := range opts {
		opt(c)
	}

	resolver, err := theme.NewResolver(c.themePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidThemePath, err)
	}
	c.catalog = theme.NewCatalog(resolver)

	if c.highlight {
		c.highlighter = render.NewHighlighter(c.codeStyle)
	}

	return c, nil
}

// Themes lists the themes available to Export and Preview.
func (c *Converter) Themes() ([]string, error) {
	return c.catalog.Names()
}

// Busy returns the ID of the illustration or cover being regenerated,
// or "" when none is.
func (c *Converter) Busy() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Plan schedules illustration positions for state and returns the state
// with its assignments replaced. Analyzer failures are logged and
// replaced by even spacing.
func (c *Converter) Plan(ctx context.Context, state ArticleState) (ArticleState, error) {
	if err := validateArticle(state); err != nil {
		return state, err
	}
	return c.plan(ctx, state, c.logger)
}

func (c *Converter) plan(ctx context.Context, state ArticleState, log *zap.Logger) (ArticleState, error) {
	if err := ctx.Err(); err != nil {
		return state, err
	}

	paras := state.Paragraphs()
	mode := placement.ModeAssisted
	if state.Strategy == StrategyEvenSpacing {
		mode = placement.ModeEvenSpacing
	}

	scheduled := placement.Schedule(placement.Request{
		Title:       state.Title,
		Paragraphs:  paras,
		Count:       state.Count,
		Mode:        mode,
		Suggestions: c.suggestions(ctx, state, paras, log),
	})

	assignments := make([]Assignment, len(scheduled))
	for i, a := range scheduled {
		assignments[i] = Assignment{
			Line:      a.PhysicalLine,
			Index:     a.LogicalIndex,
			Prompt:    a.Prompt,
			Rationale: a.Rationale,
			Excerpt:   a.Excerpt,
		}
	}
	log.Debug("illustrations scheduled",
		zap.Int("paragraphs", len(paras)),
		zap.Int("requested", state.Count),
		zap.Int("scheduled", len(assignments)))
	return state.WithAssignments(assignments), nil
}

// suggestions asks the analyzer for hints. A nil result selects even
// spacing in the scheduler.
func (c *Converter) suggestions(ctx context.Context, state ArticleState, paras []Paragraph, log *zap.Logger) []placement.Suggestion {
	if c.analyzer == nil || state.Strategy == StrategyEvenSpacing || len(paras) <= state.Count {
		return nil
	}

	hints, err := c.analyzer.Analyze(context.WithoutCancel(ctx), AnalysisRequest{
		Title:      state.Title,
		Content:    state.Content,
		Paragraphs: paras,
		Count:      state.Count,
		Strategy:   state.Strategy,
	})
	if err != nil {
		log.Warn("content analysis failed, using even spacing", zap.Error(err))
		return nil
	}
	if len(hints) == 0 {
		log.Warn("content analysis returned no suggestions, using even spacing")
		return nil
	}

	out := make([]placement.Suggestion, len(hints))
	for i, h := range hints {
		out[i] = placement.Suggestion{
			LogicalIndex: h.Index,
			Prompt:       h.Prompt,
			Rationale:    h.Rationale,
		}
	}
	return out
}

// Generate runs a full generation: analysis, cover, then each
// illustration in order, one at a time. Illustrations and covers are
// committed only when every image succeeds; on failure the returned
// state keeps its previous images and carries a failed status.
//
// Cancelling ctx stops the run at the next stage boundary. A call to the
// image generator already in flight is allowed to finish.
func (c *Converter) Generate(ctx context.Context, state ArticleState) (ArticleState, error) {
	if err := validateArticle(state); err != nil {
		return state, err
	}
	if c.images == nil {
		return state, ErrNoImageGenerator
	}
	descriptor, err := state.ImageStyle.Descriptor(state.CustomStyle)
	if err != nil {
		return state, err
	}

	state = state.clone()
	state.RunID = c.newID()
	log := c.logger.With(zap.String("run", state.RunID))

	state = c.report(log, state, Status{Stage: StageAnalyzing})
	state, err = c.plan(ctx, state, log)
	if err != nil {
		return c.fail(log, state, err)
	}

	if err := ctx.Err(); err != nil {
		return c.fail(log, state, err)
	}
	state = c.report(log, state, Status{Stage: StageCover})
	prompt := coverPrompt(state.Title)
	uri, err := c.generate(ctx, ImageRequest{
		Prompt:          prompt,
		StyleDescriptor: descriptor,
		AspectRatio:     coverAspectRatio,
	})
	if err != nil {
		return c.fail(log, state, fmt.Errorf("cover: %w", err))
	}
	cover := Cover{ID: coverID(0), URI: uri, Prompt: prompt, Revision: c.newID()}

	total := len(state.Assignments)
	ills := make([]Illustration, 0, total)
	for i, a := range state.Assignments {
		if err := ctx.Err(); err != nil {
			return c.fail(log, state, err)
		}
		state = c.report(log, state, Status{Stage: StageIllustration, Current: i + 1, Total: total})

		uri, err := c.generate(ctx, ImageRequest{
			Prompt:          a.Prompt,
			StyleDescriptor: descriptor,
			AspectRatio:     aspectRatio(state),
		})
		if err != nil {
			return c.fail(log, state, fmt.Errorf("illustration %d/%d: %w", i+1, total, err))
		}
		ills = append(ills, Illustration{
			ID:       illustrationID(i),
			Line:     a.Line,
			URI:      uri,
			Prompt:   a.Prompt,
			Revision: c.newID(),
		})
	}

	state = state.WithIllustrations(ills).WithCovers([]Cover{cover})
	return c.report(log, state, Status{Stage: StageReady}), nil
}

// Regenerate replaces one illustration ("img-N") or cover ("cover-N").
// An empty customPrompt reuses the stored prompt for illustrations and a
// fixed cover prompt for covers. On success an illustration's prompt is
// replaced by the one used. Siblings are never touched.
//
// Only one regeneration runs at a time per Converter: a call made while
// another is outstanding fails with ErrRegenerationInFlight and leaves
// the outstanding one alone.
func (c *Converter) Regenerate(ctx context.Context, state ArticleState, id, customPrompt string) (ArticleState, error) {
	if c.images == nil {
		return state, ErrNoImageGenerator
	}
	if busy, ok := c.acquire(id); !ok {
		c.logger.Debug("regeneration rejected", zap.String("id", id), zap.String("busy", busy))
		return state, fmt.Errorf("%w: %s", ErrRegenerationInFlight, busy)
	}
	defer c.release()

	descriptor, err := state.ImageStyle.Descriptor(state.CustomStyle)
	if err != nil {
		return state, err
	}
	customPrompt = strings.TrimSpace(customPrompt)

	if cover, ok := state.Cover(id); ok && strings.HasPrefix(id, coverPrefix) {
		prompt := customPrompt
		if prompt == "" {
			prompt = coverRegenerationPrompt(state.Title)
		}
		uri, err := c.generate(ctx, ImageRequest{Prompt: prompt, StyleDescriptor: descriptor, AspectRatio: coverAspectRatio})
		if err != nil {
			c.logger.Error("cover regeneration failed", zap.String("id", id), zap.Error(err))
			return state, fmt.Errorf("regenerating %s: %w", id, err)
		}
		cover.URI, cover.Prompt, cover.Revision = uri, prompt, c.newID()
		c.logger.Info("cover regenerated", zap.String("id", id))
		return state.WithCover(cover), nil
	}

	ill, ok := state.Illustration(id)
	if !ok {
		return state, fmt.Errorf("%w: %q", ErrIllustrationNotFound, id)
	}
	prompt := customPrompt
	if prompt == "" {
		prompt = ill.Prompt
	}
	uri, err := c.generate(ctx, ImageRequest{Prompt: prompt, StyleDescriptor: descriptor, AspectRatio: aspectRatio(state)})
	if err != nil {
		c.logger.Error("illustration regeneration failed", zap.String("id", id), zap.Error(err))
		return state, fmt.Errorf("regenerating %s: %w", id, err)
	}
	ill.URI, ill.Prompt, ill.Revision = uri, prompt, c.newID()
	c.logger.Info("illustration regenerated", zap.String("id", id))
	return state.WithIllustration(ill), nil
}

// Export renders state as a static inline-styled fragment. Illustrations
// without an image are left out. Recovers from internal panics to
// prevent crashes from propagating to callers.
func (c *Converter) Export(state ArticleState) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	doc, err := c.document(state)
	if err != nil {
		return "", err
	}
	return render.Export(doc)
}

// Preview renders state as a node tree with illustration actions.
func (c *Converter) Preview(state ArticleState) (page PreviewPage, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	doc, err := c.document(state)
	if err != nil {
		return PreviewPage{}, err
	}
	doc.Busy = c.Busy()
	return render.Preview(doc), nil
}

func (c *Converter) document(state ArticleState) (render.Document, error) {
	t, fellBack, err := c.catalog.Lookup(state.Theme)
	if err != nil {
		if errors.Is(err, theme.ErrThemeNotFound) {
			return render.Document{}, fmt.Errorf("%w: %w", ErrThemeNotFound, err)
		}
		return render.Document{}, fmt.Errorf("loading theme %q: %w", state.Theme, err)
	}
	if fellBack {
		c.logger.Warn("theme not found, using default",
			zap.String("theme", state.Theme),
			zap.String("default", theme.DefaultName))
	}

	ills := make([]render.Illustration, len(state.Illustrations))
	for i, ill := range state.Illustrations {
		ills[i] = render.Illustration{ID: ill.ID, Line: ill.Line, URI: ill.URI, Prompt: ill.Prompt}
	}

	return render.Document{
		Nodes:         blocks.Parse(state.Content),
		Illustrations: ills,
		Styles:        t.Styles,
		Cover:         state.SelectedCoverURI(),
		ClosingText:   c.closingText,
		Highlighter:   c.highlighter,
	}, nil
}

// generate calls the image generator outside ctx's cancellation and
// classifies the failure.
func (c *Converter) generate(ctx context.Context, req ImageRequest) (string, error) {
	uri, err := c.images.GenerateImage(context.WithoutCancel(ctx), req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	if uri == "" {
		return "", fmt.Errorf("%w: empty image", ErrGeneration)
	}
	return uri, nil
}

func (c *Converter) report(log *zap.Logger, state ArticleState, st Status) ArticleState {
	log.Debug(st.String(), zap.String("stage", string(st.Stage)))
	if c.progress != nil {
		c.progress(st)
	}
	return state.WithStatus(st)
}

func (c *Converter) fail(log *zap.Logger, state ArticleState, err error) (ArticleState, error) {
	st := Status{Stage: StageFailed, Message: err.Error()}
	log.Error("generation failed",
		zap.Bool("credential", errors.Is(err, ErrCredential)),
		zap.Error(err))
	if c.progress != nil {
		c.progress(st)
	}
	return state.WithStatus(st), err
}

func (c *Converter) acquire(id string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy != "" {
		return c.busy, false
	}
	c.busy = id
	return "", true
}

func (c *Converter) release() {
	c.mu.Lock()
	c.busy = ""
	c.mu.Unlock()
}

// validateArticle checks the inputs a generation run needs.
// This is the TRUST BOUNDARY for article state coming from callers.
func validateArticle(state ArticleState) error {
	if strings.TrimSpace(state.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(state.Content) == "" {
		return ErrEmptyContent
	}
	if state.Count < 1 || state.Count > MaxCount {
		return fmt.Errorf("%w: %d (must be 1-%d)", ErrInvalidCount, state.Count, MaxCount)
	}
	if _, err := ParseStrategy(string(state.Strategy)); err != nil {
		return err
	}
	return nil
}

func aspectRatio(state ArticleState) string {
	if state.AspectRatio == "" {
		return DefaultAspectRatio
	}
	return state.AspectRatio
}

func coverPrompt(title string) string {
	return fmt.Sprintf("Grand cinematic cover art for %q. Visual metaphor, 16:9.", title)
}

func coverRegenerationPrompt(title string) string {
	return fmt.Sprintf("Epic cinematic visual metaphor for article titled %q.", title)
}
