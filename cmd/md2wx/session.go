package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	md2wx "github.com/alnah/go-md2wx"
	"github.com/alnah/go-md2wx/internal/config"
	"github.com/alnah/go-md2wx/internal/fileutil"
	"github.com/alnah/go-md2wx/internal/gemini"
	"github.com/alnah/go-md2wx/internal/hints"
	"github.com/alnah/go-md2wx/internal/imagegen"
	"github.com/alnah/go-md2wx/internal/yamlutil"
)

// maxStateSize caps state files, which embed every generated image.
const maxStateSize = 64 << 20

// mergeFunc applies one configuration layer.
type mergeFunc func(*config.Config) error

// setup loads the config, layers environment variables and the merge
// functions over it in order, validates the result and builds the
// logger. The returned close function flushes the log file.
func setup(common commonFlags, env *Environment, layers ...mergeFunc) (*config.Config, *zap.Logger, func() error, error) {
	ec := loadEnvConfig(env)
	cfg, err := loadConfig(common.config, ec)
	if err != nil {
		return nil, nil, nil, err
	}
	applyEnvConfig(ec, cfg)
	for _, layer := range layers {
		if err := layer(cfg); err != nil {
			return nil, nil, nil, err
		}
	}
	mergeCommonFlags(common, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	logger, closeLog, err := cfg.Logging.Logger(env.Stderr)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, closeLog, nil
}

// loadConfig resolves the config from the flag, then MD2WX_CONFIG.
// Without either the defaults are used.
func loadConfig(flagValue string, ec *envConfig) (*config.Config, error) {
	name := flagValue
	if name == "" {
		name = ec.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
			return nil, withHint(err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, err
	}
	return cfg, nil
}

func mergeCommonFlags(f commonFlags, cfg *config.Config) {
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}
	if f.verbose {
		cfg.Logging.Level = config.LevelDebug
	}
}

func mergeThemeFlags(f themeFlags) mergeFunc {
	return func(cfg *config.Config) error {
		if f.name != "" {
			cfg.Theme.Name = f.name
		}
		if f.path != "" {
			cfg.Theme.BasePath = f.path
		}
		return nil
	}
}

func mergeRenderFlags(f renderFlags) mergeFunc {
	return func(cfg *config.Config) error {
		if f.highlight && f.noHighlight {
			return fmt.Errorf("%w: --highlight and --no-highlight are exclusive", ErrUsage)
		}
		if f.highlight {
			cfg.Export.HighlightCode = true
		}
		if f.noHighlight {
			cfg.Export.HighlightCode = false
		}
		if f.codeStyle != "" {
			cfg.Export.CodeStyle = f.codeStyle
		}
		if f.closingText != "" {
			cfg.Export.ClosingText = f.closingText
		}
		return nil
	}
}

// newConverter builds a Converter from the merged config. extra options
// carry the generators and progress reporting.
func newConverter(cfg *config.Config, logger *zap.Logger, extra ...md2wx.Option) (*md2wx.Converter, error) {
	opts := []md2wx.Option{
		md2wx.WithLogger(logger),
		md2wx.WithThemePath(cfg.Theme.BasePath),
		md2wx.WithClosingText(cfg.Export.ClosingText),
	}
	if cfg.Export.HighlightCode {
		opts = append(opts, md2wx.WithCodeHighlighting(cfg.Export.CodeStyle))
	}
	return md2wx.NewConverter(append(opts, extra...)...)
}

// generatorOptions wires the generation collaborators. Offline mode uses
// placeholder images and no analyzer, so placement falls back to even
// spacing.
func generatorOptions(ctx context.Context, cfg *config.Config, offline bool, logger *zap.Logger) ([]md2wx.Option, error) {
	if offline {
		logger.Debug("offline mode: placeholder images, even spacing")
		return []md2wx.Option{
			md2wx.WithImageGenerator(imagegen.NewPlaceholder(imagegen.DefaultWidth, logger)),
		}, nil
	}

	client, err := gemini.New(ctx, gemini.Config{
		APIKey:         cfg.Gemini.APIKey.Reveal(),
		AnalysisModel:  cfg.Gemini.AnalysisModel,
		ImageModel:     cfg.Gemini.ImageModel,
		ThinkingBudget: int32(cfg.Gemini.ThinkingBudget), // #nosec G115 -- bounded by config validation
	}, logger)
	if err != nil {
		return nil, withHint(err, hintFor(err))
	}
	return []md2wx.Option{
		md2wx.WithAnalyzer(client),
		md2wx.WithImageGenerator(client),
	}, nil
}

// progressPrinter reports generation stages on w unless quiet.
func progressPrinter(w io.Writer, quiet bool) md2wx.ProgressFunc {
	return func(st md2wx.Status) {
		if quiet && st.Stage != md2wx.StageFailed {
			return
		}
		fmt.Fprintln(w, st.String())
	}
}

// readInput reads path, or stdin when path is "-".
func readInput(path string, env *Environment) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(env.Stdin)
		if err != nil {
			return nil, fmt.Errorf("%w: stdin: %w", ErrReadInput, err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	return data, nil
}

// writeOutput writes data to path, or stdout when path is "" or "-".
func writeOutput(path string, data []byte, env *Environment) error {
	if path == "" || path == "-" {
		if _, err := env.Stdout.Write(data); err != nil {
			return fmt.Errorf("%w: stdout: %w", ErrWriteOutput, err)
		}
		return nil
	}
	if err := fileutil.WriteFile(path, data); err != nil {
		return withHint(fmt.Errorf("%w: %w", ErrWriteOutput, err), hintFor(err))
	}
	return nil
}

// readState loads a state file written by generate or regenerate.
func readState(path string) (md2wx.ArticleState, error) {
	var state md2wx.ArticleState
	if path == "" {
		return state, withHint(fmt.Errorf("%w: --state is required", ErrUsage), hints.ForStateFile())
	}
	if err := yamlutil.ReadFile(path, &state, yamlutil.Strict(), yamlutil.WithLimit(maxStateSize)); err != nil {
		return state, withHint(fmt.Errorf("%w: %s: %w", ErrReadState, path, err), hints.ForStateFile())
	}
	return state, nil
}

// writeState saves state to path, readable by the owner only.
func writeState(path string, state md2wx.ArticleState) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return withHint(fmt.Errorf("%w: %w", fileutil.ErrOutputDirectory, err), hints.ForOutputDirectory())
	}
	if err := yamlutil.WriteFile(path, state, statePermissions); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteOutput, path, err)
	}
	return nil
}

// hintFor returns the hint matching err's kind, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, md2wx.ErrCredential):
		return hints.ForCredential()
	case errors.Is(err, md2wx.ErrRegenerationInFlight):
		return hints.ForRegenerationInFlight()
	case errors.Is(err, fileutil.ErrOutputDirectory):
		return hints.ForOutputDirectory()
	}
	return ""
}

// withHint appends hint to err's message, keeping the chain intact.
func withHint(err error, hint string) error {
	if err == nil || hint == "" {
		return err
	}
	return fmt.Errorf("%w%s", err, hint)
}

// themeHint lists the available themes for a theme error.
func themeHint(conv *md2wx.Converter, err error) error {
	if !errors.Is(err, md2wx.ErrThemeNotFound) {
		return err
	}
	names, lerr := conv.Themes()
	if lerr != nil {
		return err
	}
	return withHint(err, hints.ForThemeNotFound(names))
}
