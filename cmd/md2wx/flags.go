package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config   string
	quiet    bool
	verbose  bool
	logLevel string
}

// themeFlags selects the document theme.
type themeFlags struct {
	name string
	path string
}

// renderFlags holds export markup options.
type renderFlags struct {
	highlight   bool
	noHighlight bool
	codeStyle   string
	closingText string
}

// articleFlags holds the per-article generation settings.
type articleFlags struct {
	title       string
	count       int
	strategy    string
	style       string
	customStyle string
	aspectRatio string
}

// generateFlags holds all flags for the generate command.
type generateFlags struct {
	common  commonFlags
	theme   themeFlags
	render  renderFlags
	article articleFlags
	output  string
	state   string
	offline bool
}

// exportFlags holds flags for the export and preview commands.
type exportFlags struct {
	common  commonFlags
	theme   themeFlags
	render  renderFlags
	state   string
	output  string
	extract string
}

// regenerateFlags holds flags for the regenerate command.
type regenerateFlags struct {
	common  commonFlags
	theme   themeFlags
	state   string
	prompt  string
	offline bool
}

// importFlags holds flags for the import command.
type importFlags struct {
	common commonFlags
	output string
}

// themesFlags holds flags for the themes command.
type themesFlags struct {
	common commonFlags
	theme  themeFlags
}

type doctorFlags struct {
	common commonFlags
	theme  themeFlags
	json   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logging")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: none, normal, debug")
}

// addThemeFlags adds theme selection flags to a FlagSet.
func addThemeFlags(fs *flag.FlagSet, f *themeFlags) {
	fs.StringVarP(&f.name, "theme", "t", "", "theme name")
	fs.StringVar(&f.path, "theme-path", "", "directory with custom themes/*.yaml")
}

// addRenderFlags adds export markup flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.BoolVar(&f.highlight, "highlight", false, "colour fenced code blocks")
	fs.BoolVar(&f.noHighlight, "no-highlight", false, "disable code colouring")
	fs.StringVar(&f.codeStyle, "code-style", "", "code colouring style name")
	fs.StringVar(&f.closingText, "closing-text", "", "footer line under the closing marker")
}

// addArticleFlags adds generation setting flags to a FlagSet.
func addArticleFlags(fs *flag.FlagSet, f *articleFlags) {
	fs.StringVar(&f.title, "title", "", "article title (\"\" = front matter or first heading)")
	fs.IntVarP(&f.count, "count", "n", 0, "illustrations per article (1-20)")
	fs.StringVar(&f.strategy, "strategy", "", "placement: assisted, even-spacing")
	fs.StringVarP(&f.style, "style", "s", "", "illustration style (see 'md2wx help styles')")
	fs.StringVar(&f.customStyle, "custom-style", "", "style description when --style custom")
	fs.StringVarP(&f.aspectRatio, "aspect-ratio", "a", "", "illustration aspect ratio, e.g. 16:9")
}

// newFlagSet creates a FlagSet whose usage goes to w.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parse runs fs.Parse, marking failures as usage errors.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	return nil
}

// parseGenerateFlags parses generate command flags and returns positional args.
func parseGenerateFlags(args []string, w io.Writer) (*generateFlags, []string, error) {
	fs := newFlagSet("generate", w, printGenerateUsage)
	f := &generateFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file")
	fs.StringVar(&f.state, "state", "", "save the article state to this file")
	fs.BoolVar(&f.offline, "offline", false, "use placeholder images, no network")

	addCommonFlags(fs, &f.common)
	addThemeFlags(fs, &f.theme)
	addRenderFlags(fs, &f.render)
	addArticleFlags(fs, &f.article)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseExportFlags parses export and preview flags.
func parseExportFlags(name string, args []string, w io.Writer) (*exportFlags, []string, error) {
	usage := printExportUsage
	if name == "preview" {
		usage = printPreviewUsage
	}
	fs := newFlagSet(name, w, usage)
	f := &exportFlags{}

	fs.StringVar(&f.state, "state", "", "article state file")
	fs.StringVarP(&f.output, "output", "o", "", "output file (default stdout)")
	if name == "export" {
		fs.StringVar(&f.extract, "extract", "", "also write images to this directory")
	}

	addCommonFlags(fs, &f.common)
	addThemeFlags(fs, &f.theme)
	addRenderFlags(fs, &f.render)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseRegenerateFlags parses regenerate command flags.
func parseRegenerateFlags(args []string, w io.Writer) (*regenerateFlags, []string, error) {
	fs := newFlagSet("regenerate", w, printRegenerateUsage)
	f := &regenerateFlags{}

	fs.StringVar(&f.state, "state", "", "article state file")
	fs.StringVarP(&f.prompt, "prompt", "p", "", "replacement prompt")
	fs.BoolVar(&f.offline, "offline", false, "use placeholder images, no network")

	addCommonFlags(fs, &f.common)
	addThemeFlags(fs, &f.theme)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseImportFlags parses import command flags.
func parseImportFlags(args []string, w io.Writer) (*importFlags, []string, error) {
	fs := newFlagSet("import", w, printImportUsage)
	f := &importFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file (default stdout)")
	addCommonFlags(fs, &f.common)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseThemesFlags parses themes command flags.
func parseThemesFlags(args []string, w io.Writer) (*themesFlags, []string, error) {
	fs := newFlagSet("themes", w, printThemesUsage)
	f := &themesFlags{}

	addCommonFlags(fs, &f.common)
	addThemeFlags(fs, &f.theme)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func parseDoctorFlags(args []string, w io.Writer) (*doctorFlags, []string, error) {
	fs := newFlagSet("doctor", w, printDoctorUsage)
	f := &doctorFlags{}

	addCommonFlags(fs, &f.common)
	addThemeFlags(fs, &f.theme)
	fs.BoolVar(&f.json, "json", false, "print the report as JSON")

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
