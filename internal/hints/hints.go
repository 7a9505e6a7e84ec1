// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"
)

// CredentialEnvVars are the environment variables read for the API key,
// in lookup order.
var CredentialEnvVars = []string{"GEMINI_API_KEY", "API_KEY"}

// ForCredential returns the hint shown when the generation service
// rejects or lacks a credential. It distinguishes a missing key from a
// rejected one.
func ForCredential() string {
	for _, name := range CredentialEnvVars {
		if os.Getenv(name) != "" {
			return format("the key in " + name + " was rejected; select a valid key or rerun with --offline")
		}
	}
	return format("set " + strings.Join(CredentialEnvVars, " or ") + ", or rerun with --offline")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-md2wx/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-md2wx") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForThemeNotFound lists the themes that can be used instead.
func ForThemeNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForIllustrationNotFound lists the illustration IDs held by the state.
func ForIllustrationNotFound(ids []string) string {
	if len(ids) == 0 {
		return format("the article has no illustrations yet; run generate first")
	}
	return format("known ids: " + strings.Join(ids, ", "))
}

// ForRegenerationInFlight tells the user to wait for the running job.
func ForRegenerationInFlight() string {
	return format("another regeneration is running; retry when it finishes")
}

// ForStateFile points at the command that produces a state file.
func ForStateFile() string {
	return format("create one with: md2wx generate --state FILE article.md")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
