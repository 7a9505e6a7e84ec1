package md2wx

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/alnah/go-md2wx/internal/blocks"
	"github.com/alnah/go-md2wx/internal/pipeline"
	"github.com/alnah/go-md2wx/internal/theme"
)

// Identity prefixes for illustrations and covers.
const (
	illustrationPrefix = "img-"
	coverPrefix        = "cover-"
)

// Assignment is a scheduled illustration position.
type Assignment struct {
	Line      int    `yaml:"line" json:"line"`
	Index     int    `yaml:"index" json:"index"`
	Prompt    string `yaml:"prompt" json:"prompt"`
	Rationale string `yaml:"rationale,omitempty" json:"rationale,omitempty"`
	Excerpt   string `yaml:"excerpt,omitempty" json:"excerpt,omitempty"`
}

// Illustration is a generated image anchored after a physical line.
// Revision changes every time the image is (re)generated.
type Illustration struct {
	ID       string `yaml:"id" json:"id"`
	Line     int    `yaml:"line" json:"line"`
	URI      string `yaml:"uri" json:"uri"`
	Prompt   string `yaml:"prompt" json:"prompt"`
	Revision string `yaml:"revision,omitempty" json:"revision,omitempty"`
}

// Cover is a generated cover image.
type Cover struct {
	ID       string `yaml:"id" json:"id"`
	URI      string `yaml:"uri" json:"uri"`
	Prompt   string `yaml:"prompt" json:"prompt"`
	Revision string `yaml:"revision,omitempty" json:"revision,omitempty"`
}

// ArticleState is the whole state of one article. Values are never
// mutated in place: every With method returns a modified copy that shares
// no slices with the receiver.
type ArticleState struct {
	RunID         string         `yaml:"runId,omitempty" json:"runId,omitempty"`
	Title         string         `yaml:"title" json:"title"`
	Content       string         `yaml:"content" json:"content"`
	Count         int            `yaml:"count" json:"count"`
	Strategy      Strategy       `yaml:"strategy" json:"strategy"`
	ImageStyle    ImageStyle     `yaml:"imageStyle" json:"imageStyle"`
	CustomStyle   string         `yaml:"customStyle,omitempty" json:"customStyle,omitempty"`
	AspectRatio   string         `yaml:"aspectRatio" json:"aspectRatio"`
	Theme         string         `yaml:"theme" json:"theme"`
	Assignments   []Assignment   `yaml:"assignments,omitempty" json:"assignments,omitempty"`
	Illustrations []Illustration `yaml:"illustrations,omitempty" json:"illustrations,omitempty"`
	Covers        []Cover        `yaml:"covers,omitempty" json:"covers,omitempty"`
	SelectedCover int            `yaml:"selectedCover" json:"selectedCover"`
	Status        Status         `yaml:"status,omitempty" json:"status,omitempty"`
}

// NewArticle returns a state with default settings. Line endings in
// content are normalised.
func NewArticle(title, content string) ArticleState {
	return ArticleState{
		Title:       strings.TrimSpace(title),
		Content:     normalize(content),
		Count:       DefaultCount,
		Strategy:    StrategyAssisted,
		ImageStyle:  DefaultImageStyle,
		AspectRatio: DefaultAspectRatio,
		Theme:       theme.DefaultName,
	}
}

func normalize(content string) string {
	return pipeline.TextPreprocessor{}.Preprocess(context.Background(), content)
}

// clone returns a copy with its own slices.
func (s ArticleState) clone() ArticleState {
	s.Assignments = slices.Clone(s.Assignments)
	s.Illustrations = slices.Clone(s.Illustrations)
	s.Covers = slices.Clone(s.Covers)
	return s
}

// Paragraphs returns the paragraph records of the current content.
func (s ArticleState) Paragraphs() []Paragraph {
	return blocks.Paragraphs(s.Content)
}

// WithTitle replaces the title.
func (s ArticleState) WithTitle(title string) ArticleState {
	s = s.clone()
	s.Title = strings.TrimSpace(title)
	return s
}

// WithContent replaces the content. Existing illustrations keep their
// physical lines.
func (s ArticleState) WithContent(content string) ArticleState {
	s = s.clone()
	s.Content = normalize(content)
	return s
}

// WithCount sets the requested number of illustrations.
func (s ArticleState) WithCount(n int) ArticleState {
	s = s.clone()
	s.Count = n
	return s
}

// WithStrategy sets the placement strategy.
func (s ArticleState) WithStrategy(st Strategy) ArticleState {
	s = s.clone()
	s.Strategy = st
	return s
}

// WithImageStyle sets the illustration style. custom is kept only for
// StyleCustom.
func (s ArticleState) WithImageStyle(style ImageStyle, custom string) ArticleState {
	s = s.clone()
	s.ImageStyle = style
	s.CustomStyle = ""
	if style == StyleCustom {
		s.CustomStyle = strings.TrimSpace(custom)
	}
	return s
}

// WithAspectRatio sets the illustration aspect ratio, e.g. "16:9".
func (s ArticleState) WithAspectRatio(ratio string) ArticleState {
	s = s.clone()
	s.AspectRatio = ratio
	return s
}

// WithTheme selects the export theme.
func (s ArticleState) WithTheme(name string) ArticleState {
	s = s.clone()
	s.Theme = name
	return s
}

// WithStatus records a progress change.
func (s ArticleState) WithStatus(st Status) ArticleState {
	s = s.clone()
	s.Status = st
	return s
}

// WithAssignments replaces the scheduled positions.
func (s ArticleState) WithAssignments(a []Assignment) ArticleState {
	s = s.clone()
	s.Assignments = slices.Clone(a)
	return s
}

// WithIllustrations replaces all illustrations.
func (s ArticleState) WithIllustrations(ills []Illustration) ArticleState {
	s = s.clone()
	s.Illustrations = slices.Clone(ills)
	return s
}

// WithIllustration replaces the illustration with the same ID, or
// appends it. Siblings are untouched.
func (s ArticleState) WithIllustration(ill Illustration) ArticleState {
	s = s.clone()
	if i := s.illustrationIndex(ill.ID); i >= 0 {
		s.Illustrations[i] = ill
		return s
	}
	s.Illustrations = append(s.Illustrations, ill)
	return s
}

// WithCovers replaces all covers and selects the first.
func (s ArticleState) WithCovers(covers []Cover) ArticleState {
	s = s.clone()
	s.Covers = slices.Clone(covers)
	s.SelectedCover = 0
	return s
}

// WithCover replaces the cover with the same ID, or appends it.
func (s ArticleState) WithCover(c Cover) ArticleState {
	s = s.clone()
	for i := range s.Covers {
		if s.Covers[i].ID == c.ID {
			s.Covers[i] = c
			return s
		}
	}
	s.Covers = append(s.Covers, c)
	return s
}

// WithSelectedCover selects a cover by position. Out-of-range positions
// leave the selection unchanged.
func (s ArticleState) WithSelectedCover(i int) ArticleState {
	s = s.clone()
	if i >= 0 && i < len(s.Covers) {
		s.SelectedCover = i
	}
	return s
}

// Illustration returns the illustration with the given ID.
func (s ArticleState) Illustration(id string) (Illustration, bool) {
	if i := s.illustrationIndex(id); i >= 0 {
		return s.Illustrations[i], true
	}
	return Illustration{}, false
}

// Cover returns the cover with the given ID.
func (s ArticleState) Cover(id string) (Cover, bool) {
	for _, c := range s.Covers {
		if c.ID == id {
			return c, true
		}
	}
	return Cover{}, false
}

// SelectedCoverURI returns the URI of the selected cover, or "".
func (s ArticleState) SelectedCoverURI() string {
	if s.SelectedCover < 0 || s.SelectedCover >= len(s.Covers) {
		return ""
	}
	return s.Covers[s.SelectedCover].URI
}

// IDs returns the cover IDs followed by the illustration IDs.
func (s ArticleState) IDs() []string {
	ids := make([]string, 0, len(s.Covers)+len(s.Illustrations))
	for _, c := range s.Covers {
		ids = append(ids, c.ID)
	}
	for _, ill := range s.Illustrations {
		ids = append(ids, ill.ID)
	}
	return ids
}

func (s ArticleState) illustrationIndex(id string) int {
	return slices.IndexFunc(s.Illustrations, func(ill Illustration) bool {
		return ill.ID == id
	})
}

func illustrationID(i int) string {
	return illustrationPrefix + strconv.Itoa(i)
}

func coverID(i int) string {
	return coverPrefix + strconv.Itoa(i)
}
