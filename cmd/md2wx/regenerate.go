package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/multierr"

	md2wx "github.com/alnah/go-md2wx"
	"github.com/alnah/go-md2wx/internal/hints"
)

// runRegenerate regenerates one image of a saved article and saves the
// state back in place.
func runRegenerate(ctx context.Context, args []string, env *Environment) (err error) {
	f, positional, err := parseRegenerateFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: regenerate takes one illustration or cover id", ErrUsage)
	}
	id := positional[0]

	state, err := readState(f.state)
	if err != nil {
		return err
	}
	cfg, logger, closeLog, err := setup(f.common, env, mergeThemeFlags(f.theme))
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, closeLog()) }()

	genOpts, err := generatorOptions(ctx, cfg, f.offline, logger)
	if err != nil {
		return err
	}
	conv, err := newConverter(cfg, logger, genOpts...)
	if err != nil {
		return err
	}

	next, err := conv.Regenerate(ctx, state, id, f.prompt)
	if err != nil {
		if errors.Is(err, md2wx.ErrIllustrationNotFound) {
			return withHint(err, hints.ForIllustrationNotFound(state.IDs()))
		}
		return withHint(err, hintFor(err))
	}
	if err := writeState(f.state, next); err != nil {
		return err
	}

	if !f.common.quiet {
		fmt.Fprintf(env.Stdout, "Regenerated %s in %s\n", id, f.state)
	}
	return nil
}
