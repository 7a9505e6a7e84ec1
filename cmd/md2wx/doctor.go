package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	md2wx "github.com/alnah/go-md2wx"
	"github.com/alnah/go-md2wx/internal/config"
	"github.com/alnah/go-md2wx/internal/hints"
	"github.com/alnah/go-md2wx/internal/imagegen"
)

// Doctor report statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status     string        `json:"status"`
	Env        doctorEnv     `json:"environment"`
	Credential credentialDoc `json:"credential"`
	Themes     []themeCheck  `json:"themes"`
	System     systemInfo    `json:"system"`
	Warnings   []string      `json:"warnings,omitempty"`
	Errors     []string      `json:"errors,omitempty"`
}

type doctorEnv struct {
	OS      string `json:"os"`
	Arch    string `json:"arch"`
	Version string `json:"version"`
	Config  string `json:"config"`
}

type credentialDoc struct {
	Present bool   `json:"present"`
	Source  string `json:"source,omitempty"`
}

type themeCheck struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type systemInfo struct {
	TempWritable   bool   `json:"temp_writable"`
	OutputDir      string `json:"output_dir,omitempty"`
	OutputWritable bool   `json:"output_writable"`
	Placeholder    bool   `json:"placeholder"`
}

// runDoctor reports whether generation and export can run here.
// Warnings keep exit code 0; any error fails the command.
func runDoctor(ctx context.Context, args []string, env *Environment) (err error) {
	f, positional, err := parseDoctorFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: doctor takes no arguments", ErrUsage)
	}

	result := &doctorResult{
		Status: statusReady,
		Env: doctorEnv{
			OS:      runtime.GOOS,
			Arch:    runtime.GOARCH,
			Version: Version,
			Config:  "defaults",
		},
	}

	cfg, logger, closeLog, setupErr := setup(f.common, env, mergeThemeFlags(f.theme))
	if setupErr != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("config: %v", setupErr))
		cfg, logger, closeLog = config.DefaultConfig(), zap.NewNop(), func() error { return nil }
	} else if name := configName(f.common, env); name != "" {
		result.Env.Config = name
	}
	defer func() { err = multierr.Append(err, closeLog()) }()

	checkCredential(result, cfg, env)
	checkThemes(result, cfg, logger)
	checkSystem(ctx, result, cfg, logger)

	switch {
	case len(result.Errors) > 0:
		result.Status = statusErrors
	case len(result.Warnings) > 0:
		result.Status = statusWarnings
	}

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return fmt.Errorf("%w: %d problem(s)", ErrDoctorFailed, len(result.Errors))
	}
	return nil
}

func configName(common commonFlags, env *Environment) string {
	if common.config != "" {
		return common.config
	}
	return strings.TrimSpace(env.Getenv("MD2WX_CONFIG"))
}

// checkCredential looks for the API key in the environment first, then
// in the loaded config.
func checkCredential(result *doctorResult, cfg *config.Config, env *Environment) {
	for _, name := range hints.CredentialEnvVars {
		if strings.TrimSpace(env.Getenv(name)) != "" {
			result.Credential = credentialDoc{Present: true, Source: name}
			return
		}
	}
	if cfg.Gemini.APIKey.Reveal() != "" {
		result.Credential = credentialDoc{Present: true, Source: "config"}
		return
	}
	result.Warnings = append(result.Warnings, fmt.Sprintf(
		"no API key in %s; generate and regenerate need --offline",
		strings.Join(hints.CredentialEnvVars, " or ")))
}

// checkThemes exports a one-line article with every known theme.
func checkThemes(result *doctorResult, cfg *config.Config, logger *zap.Logger) {
	conv, err := newConverter(cfg, logger)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("themes: %v", err))
		return
	}
	names, err := conv.Themes()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("themes: %v", err))
		return
	}

	sample := md2wx.NewArticle("md2wx doctor", "Theme check.\n")
	for _, name := range names {
		check := themeCheck{Name: name, OK: true}
		if _, err := conv.Export(sample.WithTheme(name)); err != nil {
			check.OK = false
			check.Error = err.Error()
			result.Errors = append(result.Errors, fmt.Sprintf("theme %s: %v", name, err))
		}
		result.Themes = append(result.Themes, check)
	}
}

// checkSystem verifies the writable directories and the offline
// image renderer.
func checkSystem(ctx context.Context, result *doctorResult, cfg *config.Config, logger *zap.Logger) {
	result.System.TempWritable = dirWritable(os.TempDir())
	if !result.System.TempWritable {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("temp directory %s is not writable", os.TempDir()))
	}

	if dir := cfg.Output.DefaultDir; dir != "" {
		result.System.OutputDir = dir
		result.System.OutputWritable = dirWritable(dir)
		if !result.System.OutputWritable {
			result.Errors = append(result.Errors,
				fmt.Sprintf("output directory %s is not writable", dir))
		}
	} else {
		result.System.OutputWritable = dirWritable(".")
	}

	uri, err := imagegen.NewPlaceholder(0, logger).GenerateImage(ctx, md2wx.ImageRequest{
		Prompt:      "doctor",
		AspectRatio: md2wx.DefaultAspectRatio,
	})
	if err == nil {
		_, _, err = imagegen.Decode(uri)
	}
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("placeholder renderer: %v", err))
		return
	}
	result.System.Placeholder = true
}

// dirWritable reports whether a file can be created in dir. A missing
// dir counts as writable when its parent is, since outputs create it.
func dirWritable(dir string) bool {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return dirWritable(filepath.Dir(dir))
	}
	if err != nil || !info.IsDir() {
		return false
	}
	f, err := os.CreateTemp(dir, ".md2wx-doctor-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true
}

// printDoctorResult prints human-readable diagnostic output.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "md2wx doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  Platform:     %s/%s\n", r.Env.OS, r.Env.Arch)
	fmt.Fprintf(w, "  Version:      %s\n", r.Env.Version)
	fmt.Fprintf(w, "  Config:       %s\n", r.Env.Config)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Credential")
	if r.Credential.Present {
		fmt.Fprintf(w, "  [OK] API key from %s\n", r.Credential.Source)
	} else {
		fmt.Fprintln(w, "  [WARN] No API key (offline only)")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Themes")
	for _, t := range r.Themes {
		if t.OK {
			fmt.Fprintf(w, "  [OK] %s\n", t.Name)
			continue
		}
		fmt.Fprintf(w, "  [ERROR] %s: %s\n", t.Name, t.Error)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	fmt.Fprintf(w, "  %s Temp directory writable\n", mark(r.System.TempWritable))
	if r.System.OutputDir != "" {
		fmt.Fprintf(w, "  %s Output directory %s writable\n", mark(r.System.OutputWritable), r.System.OutputDir)
	}
	fmt.Fprintf(w, "  %s Placeholder images render\n", mark(r.System.Placeholder))
	fmt.Fprintln(w)

	for _, msg := range r.Warnings {
		fmt.Fprintf(w, "Warning: %s\n", msg)
	}
	for _, msg := range r.Errors {
		fmt.Fprintf(w, "Error: %s\n", msg)
	}
	if len(r.Warnings)+len(r.Errors) > 0 {
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: READY")
	case statusWarnings:
		fmt.Fprintln(w, "Status: READY (with warnings)")
	default:
		fmt.Fprintln(w, "Status: NOT READY")
	}
}

func mark(ok bool) string {
	if ok {
		return "[OK]"
	}
	return "[ERROR]"
}
