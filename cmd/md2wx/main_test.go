package main

// Notes:
// - runMain: we test dispatch and exit codes. Full command runs live in
//   commands_test.go and use offline mode, so no test touches the network.
// - setMaxProcs is called by runMain but its effect is not asserted.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"sort"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Test Infrastructure
// ---------------------------------------------------------------------------

// testEnv returns an Environment with captured output and vars as the
// only environment variables.
func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:    func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) },
		Stdout: &stdout,
		Stderr: &stderr,
		Stdin:  strings.NewReader(""),
		Getenv: func(k string) string { return vars[k] },
		Environ: func() []string {
			out := make([]string, 0, len(vars))
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			sort.Strings(out)
			return out
		},
	}
	return env, &stdout, &stderr
}

// ---------------------------------------------------------------------------
// TestRunMain - Dispatch and exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{
			name:       "no command",
			args:       []string{"md2wx"},
			wantCode:   ExitUsage,
			wantStderr: "Usage: md2wx",
		},
		{
			name:       "unknown command",
			args:       []string{"md2wx", "convert"},
			wantCode:   ExitUsage,
			wantStderr: "Unknown command: convert",
		},
		{
			name:       "version",
			args:       []string{"md2wx", "version"},
			wantCode:   ExitSuccess,
			wantStdout: "md2wx dev",
		},
		{
			name:       "help",
			args:       []string{"md2wx", "help"},
			wantCode:   ExitSuccess,
			wantStdout: "Commands:",
		},
		{
			name:       "help for unknown topic",
			args:       []string{"md2wx", "help", "nope"},
			wantCode:   ExitUsage,
			wantStderr: "unknown command: nope",
		},
		{
			name:       "command help flag",
			args:       []string{"md2wx", "generate", "--help"},
			wantCode:   ExitSuccess,
			wantStderr: "Usage: md2wx generate",
		},
		{
			name:       "bad flag",
			args:       []string{"md2wx", "generate", "--bogus"},
			wantCode:   ExitUsage,
			wantStderr: "invalid usage",
		},
		{
			name:       "generate without input",
			args:       []string{"md2wx", "generate"},
			wantCode:   ExitIO,
			wantStderr: "no input specified",
		},
		{
			name:       "export without state",
			args:       []string{"md2wx", "export"},
			wantCode:   ExitUsage,
			wantStderr: "md2wx generate --state",
		},
		{
			name:       "missing input file",
			args:       []string{"md2wx", "generate", "--offline", "/nonexistent/article.md"},
			wantCode:   ExitIO,
			wantStderr: "failed to read input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv(nil)
			code := runMain(tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runMain() = %d, want %d (stderr: %s)", code, tt.wantCode, stderr.String())
			}
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want to contain %q", stdout.String(), tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want to contain %q", stderr.String(), tt.wantStderr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsCommand - Command name matching
// ---------------------------------------------------------------------------

func TestIsCommand(t *testing.T) {
	t.Parallel()

	for _, name := range commands {
		if !isCommand(name) {
			t.Errorf("isCommand(%q) = false, want true", name)
		}
	}
	for _, name := range []string{"", "convert", "Generate", "--help"} {
		if isCommand(name) {
			t.Errorf("isCommand(%q) = true, want false", name)
		}
	}
}

// ---------------------------------------------------------------------------
// TestHasVerbose - Early verbose detection
// ---------------------------------------------------------------------------

func TestHasVerbose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"-v"}, true},
		{[]string{"in.md", "--verbose"}, true},
		{[]string{"--", "-v"}, false},
		{[]string{"-q", "in.md"}, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := hasVerbose(tt.args); got != tt.want {
			t.Errorf("hasVerbose(%q) = %v, want %v", tt.args, got, tt.want)
		}
	}
}
