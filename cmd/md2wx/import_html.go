package main

import (
	"bytes"
	"context"
	"fmt"

	"github.com/alnah/go-md2wx/internal/htmlimport"
)

// runImport converts rich-text HTML into article markdown.
func runImport(_ context.Context, args []string, env *Environment) error {
	f, positional, err := parseImportFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: import takes at most one input, got %d", ErrUsage, len(positional))
	}

	input := "-"
	if len(positional) == 1 {
		input = positional[0]
	}
	data, err := readInput(input, env)
	if err != nil {
		return err
	}

	md, err := htmlimport.Convert(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	if err := writeOutput(f.output, []byte(md), env); err != nil {
		return err
	}
	if f.output != "" && f.output != "-" && !f.common.quiet {
		fmt.Fprintf(env.Stderr, "Created %s\n", f.output)
	}
	return nil
}
