package main

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestDefaultEnv(t *testing.T) {
	t.Parallel()

	env := DefaultEnv()

	before := time.Now()
	if got := env.Now(); got.Before(before) || got.After(time.Now()) {
		t.Errorf("Now() = %v, want the wall clock", got)
	}
	if env.Stdout != os.Stdout || env.Stderr != os.Stderr || env.Stdin != os.Stdin {
		t.Error("streams should be the process streams")
	}
	if env.Getenv == nil || env.Environ == nil {
		t.Fatal("Getenv and Environ must be set")
	}
	if got, want := env.Getenv("PATH"), os.Getenv("PATH"); got != want {
		t.Errorf("Getenv(PATH) = %q, want %q", got, want)
	}
}

// ---------------------------------------------------------------------------
// TestEnvironmentInjection - Commands only touch the injected environment
// ---------------------------------------------------------------------------

func TestEnvironmentInjection(t *testing.T) {
	t.Parallel()

	t.Run("stdout receives command output", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := testEnv(nil)
		if code := runMain([]string{"md2wx", "version"}, env); code != ExitSuccess {
			t.Fatalf("exit = %d, want %d", code, ExitSuccess)
		}
		if got := stdout.String(); got != "md2wx "+Version+"\n" {
			t.Errorf("stdout = %q", got)
		}
		if stderr.Len() != 0 {
			t.Errorf("stderr = %q, want empty", stderr.String())
		}
	})

	t.Run("getenv feeds the config layer", func(t *testing.T) {
		t.Parallel()

		env, _, _ := testEnv(map[string]string{
			"MD2WX_THEME": "nikkei",
			"API_KEY":     " injected ",
		})
		ec := loadEnvConfig(env)
		if ec.Theme != "nikkei" || ec.APIKey != "injected" {
			t.Errorf("envConfig = %+v", ec)
		}
	})

	t.Run("environ feeds unknown variable warnings", func(t *testing.T) {
		t.Parallel()

		env, _, stderr := testEnv(map[string]string{"MD2WX_THEM": "nikkei"})
		warnUnknownEnvVars(env)
		if !strings.Contains(stderr.String(), "MD2WX_THEM") {
			t.Errorf("stderr = %q, want a warning naming MD2WX_THEM", stderr.String())
		}
	})
}
