package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
)

// FrontMatter holds per-article settings. Zero values mean "not set";
// Count is a pointer so an explicit 0 can be told apart.
type FrontMatter struct {
	Title      string `yaml:"title" json:"title" toml:"title"`
	Count      *int   `yaml:"count" json:"count" toml:"count"`
	Theme      string `yaml:"theme" json:"theme" toml:"theme"`
	ImageStyle string `yaml:"imageStyle" json:"imageStyle" toml:"imageStyle"`
	Strategy   string `yaml:"strategy" json:"strategy" toml:"strategy"`
}

// Article is parsed article input.
type Article struct {
	Meta FrontMatter
	// Body is the normalised content without the front matter block.
	Body string
}

// Title returns the front matter title, falling back to the first
// level-1 heading of the body.
func (a Article) Title() string {
	if t := strings.TrimSpace(a.Meta.Title); t != "" {
		return t
	}
	return FirstHeading(a.Body)
}

// Load splits optional front matter from source and normalises the body.
// Input without front matter is returned whole.
func Load(ctx context.Context, source []byte, pre Preprocessor) (Article, error) {
	if pre == nil {
		pre = TextPreprocessor{}
	}
	source = bytes.TrimPrefix(source, []byte(byteOrderMark))
	source = []byte(normalizeLineEndings(string(source)))

	var meta FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return Article{}, fmt.Errorf("parse front matter: %w", err)
	}

	return Article{
		Meta: meta,
		Body: pre.Preprocess(ctx, string(body)),
	}, nil
}
