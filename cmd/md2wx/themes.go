package main

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
)

// runThemes lists the theme names the export can use.
func runThemes(_ context.Context, args []string, env *Environment) (err error) {
	f, positional, err := parseThemesFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: themes takes no arguments", ErrUsage)
	}

	cfg, logger, closeLog, err := setup(f.common, env, mergeThemeFlags(f.theme))
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, closeLog()) }()

	conv, err := newConverter(cfg, logger)
	if err != nil {
		return err
	}
	names, err := conv.Themes()
	if err != nil {
		return fmt.Errorf("listing themes: %w", err)
	}
	for _, name := range names {
		if name == cfg.Theme.Name {
			fmt.Fprintf(env.Stdout, "%s (selected)\n", name)
			continue
		}
		fmt.Fprintln(env.Stdout, name)
	}
	return nil
}
