package main

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	md2wx "github.com/alnah/go-md2wx"
	"github.com/alnah/go-md2wx/internal/fileutil"
	"github.com/alnah/go-md2wx/internal/imagegen"
)

// runExport writes the styled markup of a saved article.
func runExport(_ context.Context, args []string, env *Environment) (err error) {
	f, positional, err := parseExportFlags("export", args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: export takes no arguments, got %q", ErrUsage, positional)
	}

	state, err := readState(f.state)
	if err != nil {
		return err
	}
	cfg, logger, closeLog, err := setup(f.common, env, mergeThemeFlags(f.theme), mergeRenderFlags(f.render))
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, closeLog()) }()

	if f.theme.name != "" {
		state = state.WithTheme(f.theme.name)
	}
	conv, err := newConverter(cfg, logger)
	if err != nil {
		return err
	}

	out, err := conv.Export(state)
	if err != nil {
		return themeHint(conv, err)
	}
	if err := writeOutput(f.output, []byte(out), env); err != nil {
		return err
	}

	if f.extract != "" {
		n, err := extractImages(state, f.extract, logger)
		if err != nil {
			return err
		}
		if !f.common.quiet {
			fmt.Fprintf(env.Stderr, "Extracted %d images to %s\n", n, f.extract)
		}
	}
	return nil
}

// runPreview prints the preview node tree of a saved article as JSON.
func runPreview(_ context.Context, args []string, env *Environment) (err error) {
	f, positional, err := parseExportFlags("preview", args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: preview takes no arguments, got %q", ErrUsage, positional)
	}

	state, err := readState(f.state)
	if err != nil {
		return err
	}
	cfg, logger, closeLog, err := setup(f.common, env, mergeThemeFlags(f.theme), mergeRenderFlags(f.render))
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, closeLog()) }()

	if f.theme.name != "" {
		state = state.WithTheme(f.theme.name)
	}
	conv, err := newConverter(cfg, logger)
	if err != nil {
		return err
	}

	page, err := conv.Preview(state)
	if err != nil {
		return themeHint(conv, err)
	}
	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding preview: %w", err)
	}
	return writeOutput(f.output, append(data, '\n'), env)
}

// extractImages writes every cover and illustration held as a data URI
// to dir, named by ID. Remote URIs are logged and skipped.
func extractImages(state md2wx.ArticleState, dir string, logger *zap.Logger) (int, error) {
	var n int
	write := func(id, uri string) error {
		if fileutil.IsURL(uri) {
			logger.Warn("remote image not extracted", zap.String("id", id), zap.String("uri", uri))
			return nil
		}
		if !strings.HasPrefix(uri, "data:") {
			return nil
		}
		data, ext, err := imagegen.Decode(uri)
		if err != nil {
			return fmt.Errorf("extracting %s: %w", id, err)
		}
		if err := fileutil.WriteFile(filepath.Join(dir, id+"."+ext), data); err != nil {
			return withHint(fmt.Errorf("%w: %w", ErrWriteOutput, err), hintFor(err))
		}
		n++
		return nil
	}

	for _, c := range state.Covers {
		if err := write(c.ID, c.URI); err != nil {
			return n, err
		}
	}
	for _, ill := range state.Illustrations {
		if err := write(ill.ID, ill.URI); err != nil {
			return n, err
		}
	}
	return n, nil
}
