package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches args[1] to its command and returns the exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	if !isCommand(cmd) {
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	setMaxProcs(env, hasVerbose(rest))
	warnUnknownEnvVars(env)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	err := dispatch(ctx, cmd, rest, env)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintln(env.Stderr, "error:", err)
	}
	return exitCodeFor(err)
}

func dispatch(ctx context.Context, cmd string, args []string, env *Environment) error {
	switch cmd {
	case "generate":
		return runGenerate(ctx, args, env)
	case "export":
		return runExport(ctx, args, env)
	case "preview":
		return runPreview(ctx, args, env)
	case "regenerate":
		return runRegenerate(ctx, args, env)
	case "import":
		return runImport(ctx, args, env)
	case "themes":
		return runThemes(ctx, args, env)
	case "doctor":
		return runDoctor(ctx, args, env)
	case "version":
		fmt.Fprintf(env.Stdout, "md2wx %s\n", Version)
		return nil
	case "help":
		return runHelp(args, env)
	}
	return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
}

var commands = []string{"generate", "export", "preview", "regenerate", "import", "themes", "doctor", "version", "help"}

func isCommand(name string) bool {
	for _, c := range commands {
		if c == name {
			return true
		}
	}
	return false
}

// hasVerbose reports whether -v or --verbose appears before flag
// parsing proper, so GOMAXPROCS logging can follow it.
func hasVerbose(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}

// setMaxProcs configures GOMAXPROCS, logging the decision when verbose.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply.
func setMaxProcs(env *Environment, verbose bool) {
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(env.Stderr, format+"\n", args...)
		}))
		return
	}
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
}
