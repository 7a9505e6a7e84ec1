package main

// Notes:
// - All command runs use --offline: placeholder images, no analyzer, no
//   network. Gemini wiring is covered by internal/gemini tests.
// - The happy path is one sequential test (generate, export, preview,
//   regenerate) because each step consumes the state file of the last.

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	md2wx "github.com/alnah/go-md2wx"
	"github.com/alnah/go-md2wx/internal/imagegen"
	"github.com/alnah/go-md2wx/internal/yamlutil"
)

// ---------------------------------------------------------------------------
// Test Infrastructure
// ---------------------------------------------------------------------------

const harbourArticle = `---
title: Quiet Harbours
count: 2
---
# Quiet Harbours

The boats come in before dawn.

Tides set the rhythm of the town.

Gulls argue over the nets.

Rope dries on every railing.

Fog lifts by noon.
`

func writeArticle(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "article.md")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing article: %v", err)
	}
	return path
}

func readStateFile(t *testing.T, path string) md2wx.ArticleState {
	t.Helper()
	var state md2wx.ArticleState
	if err := yamlutil.ReadFile(path, &state, yamlutil.WithLimit(maxStateSize)); err != nil {
		t.Fatalf("reading state: %v", err)
	}
	return state
}

// ---------------------------------------------------------------------------
// TestOfflineWorkflow - generate, export, preview, regenerate
// ---------------------------------------------------------------------------

func TestOfflineWorkflow(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeArticle(t, dir, harbourArticle)
	statePath := filepath.Join(dir, "state", "harbour.yaml")
	outPath := filepath.Join(dir, "out.html")

	// generate
	env, stdout, stderr := testEnv(nil)
	code := runMain([]string{"md2wx", "generate", "--offline", "--state", statePath, "-o", outPath, input}, env)
	if code != ExitSuccess {
		t.Fatalf("generate exit = %d, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Created "+outPath) {
		t.Errorf("stdout = %q, want Created line", stdout.String())
	}
	for _, stage := range []string{"analyzing content", "generating cover", "illustration 1/2", "illustration 2/2", "ready"} {
		if !strings.Contains(stderr.String(), stage) {
			t.Errorf("stderr missing progress %q", stage)
		}
	}

	html, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if got := strings.Count(string(html), `src="data:image/png;base64,`); got != 3 {
		t.Errorf("export holds %d images, want 3 (cover + 2)", got)
	}

	state := readStateFile(t, statePath)
	if state.Title != "Quiet Harbours" {
		t.Errorf("state title = %q, want front matter title", state.Title)
	}
	if len(state.Illustrations) != 2 || len(state.Covers) != 1 {
		t.Fatalf("state has %d illustrations and %d covers, want 2 and 1", len(state.Illustrations), len(state.Covers))
	}
	if state.Status.Stage != md2wx.StageReady {
		t.Errorf("state stage = %q, want ready", state.Status.Stage)
	}
	if info, err := os.Stat(statePath); err == nil && info.Mode().Perm() != statePermissions {
		t.Errorf("state file mode = %v, want %v", info.Mode().Perm(), os.FileMode(statePermissions))
	}

	// export with extraction
	imgDir := filepath.Join(dir, "images")
	env, stdout, stderr = testEnv(nil)
	code = runMain([]string{"md2wx", "export", "--state", statePath, "--extract", imgDir, "--theme", "nikkei"}, env)
	if code != ExitSuccess {
		t.Fatalf("export exit = %d, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "THE END") {
		t.Error("export stdout missing closing marker")
	}
	for _, name := range []string{"cover-0.png", "img-0.png", "img-1.png"} {
		if _, err := os.Stat(filepath.Join(imgDir, name)); err != nil {
			t.Errorf("extracted %s: %v", name, err)
		}
	}

	// preview
	env, stdout, stderr = testEnv(nil)
	code = runMain([]string{"md2wx", "preview", "--state", statePath}, env)
	if code != ExitSuccess {
		t.Fatalf("preview exit = %d, stderr: %s", code, stderr.String())
	}
	for _, want := range []string{`"nodes"`, `"id": "img-0"`, `"regenerate"`} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("preview output missing %s", want)
		}
	}

	// regenerate with a custom prompt
	env, stdout, stderr = testEnv(nil)
	code = runMain([]string{"md2wx", "regenerate", "--offline", "--state", statePath, "-p", "gulls at dusk", "img-1"}, env)
	if code != ExitSuccess {
		t.Fatalf("regenerate exit = %d, stderr: %s", code, stderr.String())
	}
	next := readStateFile(t, statePath)
	ill, ok := next.Illustration("img-1")
	if !ok {
		t.Fatal("img-1 missing after regeneration")
	}
	if ill.Prompt != "gulls at dusk" {
		t.Errorf("img-1 prompt = %q, want custom prompt", ill.Prompt)
	}
	if ill.Revision == mustIllustration(t, state, "img-1").Revision {
		t.Error("img-1 revision unchanged after regeneration")
	}
	if old, _ := state.Illustration("img-0"); old.URI != mustIllustration(t, next, "img-0").URI {
		t.Error("regenerating img-1 changed img-0")
	}

	// unknown id
	env, _, stderr = testEnv(nil)
	code = runMain([]string{"md2wx", "regenerate", "--offline", "--state", statePath, "img-9"}, env)
	if code != ExitUsage {
		t.Errorf("regenerate unknown id exit = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "known ids: cover-0, img-0, img-1") {
		t.Errorf("stderr = %q, want known ids hint", stderr.String())
	}
}

func mustIllustration(t *testing.T, s md2wx.ArticleState, id string) md2wx.Illustration {
	t.Helper()
	ill, ok := s.Illustration(id)
	if !ok {
		t.Fatalf("illustration %s missing", id)
	}
	return ill
}

// ---------------------------------------------------------------------------
// TestGenerate_DefaultOutputPath - Slugged name in the env output dir
// ---------------------------------------------------------------------------

func TestGenerate_DefaultOutputPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeArticle(t, dir, harbourArticle)
	outDir := filepath.Join(dir, "dist")

	env, stdout, stderr := testEnv(map[string]string{"MD2WX_OUTPUT_DIR": outDir})
	code := runMain([]string{"md2wx", "generate", "--offline", "-q", input}, env)
	if code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, stderr.String())
	}
	if _, err := os.Stat(filepath.Join(outDir, "quiet-harbours.html")); err != nil {
		t.Errorf("default output: %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("quiet run wrote stdout: %q", stdout.String())
	}
	if strings.Contains(stderr.String(), "illustration 1/2") {
		t.Error("quiet run printed progress")
	}
}

// ---------------------------------------------------------------------------
// TestGenerate_Errors - Validation and credential failures
// ---------------------------------------------------------------------------

func TestGenerate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		content    string
		args       []string
		wantCode   int
		wantStderr string
	}{
		{
			name:       "no credential",
			content:    harbourArticle,
			wantCode:   ExitUpstream,
			wantStderr: "--offline",
		},
		{
			name:       "unknown style",
			content:    harbourArticle,
			args:       []string{"--offline", "--style", "oil-painting"},
			wantCode:   ExitUsage,
			wantStderr: "invalid image style",
		},
		{
			name:       "custom style without text",
			content:    harbourArticle,
			args:       []string{"--offline", "--style", "custom"},
			wantCode:   ExitUsage,
			wantStderr: "invalid image style",
		},
		{
			name:       "bad aspect ratio",
			content:    harbourArticle,
			args:       []string{"--offline", "-a", "wide"},
			wantCode:   ExitUsage,
			wantStderr: "invalid aspect ratio",
		},
		{
			name:       "count out of range",
			content:    harbourArticle,
			args:       []string{"--offline", "-n", "40"},
			wantCode:   ExitUsage,
			wantStderr: "generation.count",
		},
		{
			name:       "front matter count zero",
			content:    "---\ncount: 0\n---\n# T\n\nbody\n",
			args:       []string{"--offline"},
			wantCode:   ExitUsage,
			wantStderr: "front matter count 0",
		},
		{
			name:       "no title",
			content:    "just a paragraph\n\nand another\n",
			args:       []string{"--offline"},
			wantCode:   ExitUsage,
			wantStderr: "title",
		},
		{
			name:       "exclusive highlight flags",
			content:    harbourArticle,
			args:       []string{"--offline", "--highlight", "--no-highlight"},
			wantCode:   ExitUsage,
			wantStderr: "exclusive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			input := writeArticle(t, dir, tt.content)
			args := append([]string{"md2wx", "generate", "-o", filepath.Join(dir, "out.html")}, tt.args...)
			args = append(args, input)

			env, _, stderr := testEnv(nil)
			code := runMain(args, env)
			if code != tt.wantCode {
				t.Errorf("exit = %d, want %d (stderr: %s)", code, tt.wantCode, stderr.String())
			}
			if !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want to contain %q", stderr.String(), tt.wantStderr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestImport - HTML paste to markdown
// ---------------------------------------------------------------------------

func TestImport(t *testing.T) {
	t.Parallel()

	env, stdout, stderr := testEnv(nil)
	env.Stdin = strings.NewReader("<h1>Harbours</h1><p>Hello <b>world</b></p>")

	if code := runMain([]string{"md2wx", "import"}, env); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, stderr.String())
	}
	for _, want := range []string{"# Harbours", "**world**"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("stdout = %q, want to contain %q", stdout.String(), want)
		}
	}
}

func TestImport_ToFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "paste.html")
	if err := os.WriteFile(src, []byte("<ul><li>one</li><li>two</li></ul>"), 0o600); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "paste.md")

	env, _, stderr := testEnv(nil)
	if code := runMain([]string{"md2wx", "import", "-o", out, src}, env); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, stderr.String())
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "- one") {
		t.Errorf("markdown = %q, want list item", data)
	}
}

// ---------------------------------------------------------------------------
// TestThemes - Theme listing
// ---------------------------------------------------------------------------

func TestThemes(t *testing.T) {
	t.Parallel()

	env, stdout, stderr := testEnv(nil)
	if code := runMain([]string{"md2wx", "themes"}, env); code != ExitSuccess {
		t.Fatalf("exit = %d, stderr: %s", code, stderr.String())
	}
	out := stdout.String()
	for _, want := range []string{"wechat-default (selected)", "nikkei", "latepost-depth"} {
		if !strings.Contains(out, want) {
			t.Errorf("themes output = %q, want to contain %q", out, want)
		}
	}
}

func TestThemes_ConfigNotFound(t *testing.T) {
	t.Parallel()

	env, _, stderr := testEnv(nil)
	code := runMain([]string{"md2wx", "themes", "--config", "no-such-config-name"}, env)
	if code != ExitUsage {
		t.Errorf("exit = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "hint: use --config") {
		t.Errorf("stderr = %q, want config hint", stderr.String())
	}
}

// ---------------------------------------------------------------------------
// TestExtractImages - Remote references are skipped
// ---------------------------------------------------------------------------

func TestExtractImages_SkipsRemote(t *testing.T) {
	t.Parallel()

	uri, err := imagegen.NewPlaceholder(32, nil).GenerateImage(context.Background(), md2wx.ImageRequest{Prompt: "tide"})
	if err != nil {
		t.Fatalf("placeholder: %v", err)
	}
	state := md2wx.ArticleState{
		Covers:        []md2wx.Cover{{ID: "cover-0", URI: "https://cdn.example.com/cover.png"}},
		Illustrations: []md2wx.Illustration{{ID: "img-0", Line: 3, URI: uri}},
	}

	core, logs := observer.New(zap.WarnLevel)
	dir := t.TempDir()
	n, err := extractImages(state, dir, zap.New(core))
	if err != nil {
		t.Fatalf("extractImages: %v", err)
	}
	if n != 1 {
		t.Errorf("extracted %d, want 1", n)
	}
	if _, err := os.Stat(filepath.Join(dir, "img-0.png")); err != nil {
		t.Errorf("img-0.png: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "cover-0.png")); !os.IsNotExist(err) {
		t.Error("remote cover should not be written")
	}
	if got := logs.FilterMessage("remote image not extracted").Len(); got != 1 {
		t.Errorf("remote warnings = %d, want 1", got)
	}
}
