package main

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	md2wx "github.com/alnah/go-md2wx"
	"github.com/alnah/go-md2wx/internal/config"
	"github.com/alnah/go-md2wx/internal/fileutil"
	"github.com/alnah/go-md2wx/internal/imagegen"
	"github.com/alnah/go-md2wx/internal/pipeline"
)

// stdinName stands in for the input file name when reading stdin.
const stdinName = "article.md"

// runGenerate illustrates one article and writes its export.
func runGenerate(ctx context.Context, args []string, env *Environment) (err error) {
	f, positional, err := parseGenerateFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) == 0 {
		return fmt.Errorf("%w: generate needs an input file (use - for stdin)", ErrNoInput)
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: generate takes one input, got %d", ErrUsage, len(positional))
	}
	input := positional[0]

	source, err := readInput(input, env)
	if err != nil {
		return err
	}
	article, err := pipeline.Load(ctx, source, nil)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUsage, input, err)
	}

	cfg, logger, closeLog, err := setup(f.common, env,
		frontMatterLayer(article.Meta),
		mergeThemeFlags(f.theme),
		mergeRenderFlags(f.render),
		mergeArticleFlags(f.article),
	)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, closeLog()) }()

	state, err := buildArticle(article, f.article.title, cfg)
	if err != nil {
		return err
	}

	genOpts, err := generatorOptions(ctx, cfg, f.offline, logger)
	if err != nil {
		return err
	}
	conv, err := newConverter(cfg, logger, append(genOpts, md2wx.WithProgress(progressPrinter(env.Stderr, f.common.quiet)))...)
	if err != nil {
		return err
	}

	start := env.Now()
	state, err = conv.Generate(ctx, state)
	logger.Debug("generation finished",
		zap.String("stage", string(state.Status.Stage)),
		zap.Duration("elapsed", env.Now().Sub(start)))
	if err != nil {
		return withHint(err, hintFor(err))
	}

	if f.state != "" {
		if err := writeState(f.state, state); err != nil {
			return err
		}
	}

	out, err := conv.Export(state)
	if err != nil {
		return themeHint(conv, err)
	}

	outPath := f.output
	if outPath == "" {
		name := input
		if input == "-" {
			name = stdinName
		}
		outPath = fileutil.OutputPath(name, state.Title, cfg.Output.DefaultDir, ".html")
	}
	if err := writeOutput(outPath, []byte(out), env); err != nil {
		return err
	}

	if !f.common.quiet && outPath != "-" {
		fmt.Fprintf(env.Stdout, "Created %s\n", outPath)
		if f.state != "" {
			fmt.Fprintf(env.Stdout, "Saved state %s\n", f.state)
		}
	}
	return nil
}

// frontMatterLayer applies per-article settings. They override the
// config and environment but not flags.
func frontMatterLayer(m pipeline.FrontMatter) mergeFunc {
	return func(cfg *config.Config) error {
		if m.Count != nil {
			if *m.Count < 1 {
				return fmt.Errorf("%w: front matter count %d", md2wx.ErrInvalidCount, *m.Count)
			}
			cfg.Generation.Count = *m.Count
		}
		if m.Theme != "" {
			cfg.Theme.Name = m.Theme
		}
		if m.ImageStyle != "" {
			cfg.Generation.ImageStyle = m.ImageStyle
		}
		if m.Strategy != "" {
			cfg.Generation.Strategy = m.Strategy
		}
		return nil
	}
}

func mergeArticleFlags(f articleFlags) mergeFunc {
	return func(cfg *config.Config) error {
		if f.count != 0 {
			cfg.Generation.Count = f.count
		}
		if f.strategy != "" {
			cfg.Generation.Strategy = f.strategy
		}
		if f.style != "" {
			cfg.Generation.ImageStyle = f.style
		}
		if f.customStyle != "" {
			cfg.Generation.CustomStyle = f.customStyle
		}
		if f.aspectRatio != "" {
			cfg.Generation.AspectRatio = f.aspectRatio
		}
		return nil
	}
}

// buildArticle creates the initial article state. The title comes from
// the flag, then front matter, then the first level-1 heading.
func buildArticle(a pipeline.Article, title string, cfg *config.Config) (md2wx.ArticleState, error) {
	g := cfg.Generation
	if title == "" {
		title = a.Title()
	}

	strategy, err := md2wx.ParseStrategy(g.Strategy)
	if err != nil {
		return md2wx.ArticleState{}, err
	}
	style, err := md2wx.ParseImageStyle(g.ImageStyle)
	if err != nil {
		return md2wx.ArticleState{}, err
	}
	if _, err := style.Descriptor(g.CustomStyle); err != nil {
		return md2wx.ArticleState{}, err
	}
	if _, _, err := imagegen.ParseAspectRatio(g.AspectRatio); err != nil {
		return md2wx.ArticleState{}, err
	}

	count := g.Count
	if count == 0 {
		count = md2wx.DefaultCount
	}

	return md2wx.NewArticle(title, a.Body).
		WithCount(count).
		WithStrategy(strategy).
		WithImageStyle(style, g.CustomStyle).
		WithAspectRatio(g.AspectRatio).
		WithTheme(cfg.Theme.Name), nil
}
