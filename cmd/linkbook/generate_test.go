package main

// Notes:
// - mergeFlags, resolvePayload, resolveTimeouts, ensureOutputDir: pure
//   helpers tested directly.
// - resolveRepositoryURL and the end-to-end runGenerate tests use t.Setenv
//   and os.Chdir, so they cannot run in parallel.
// - End-to-end tests use the markdown and json formats only: no browser,
//   no pandoc, no network.
// - Reachability checking (--validate) is not exercised end-to-end because
//   it probes real hosts; printWarnings and hasTimeoutWarning cover the
//   reporting side.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	linkbook "github.com/alnah/go-linkbook"
	"github.com/alnah/go-linkbook/internal/config"
)

// testEnv returns an Environment writing to fresh buffers.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Environment{
		Now:    time.Now,
		Stdout: &stdout,
		Stderr: &stderr,
	}, &stdout, &stderr
}

// ---------------------------------------------------------------------------
// TestMergeFlags - CLI flags override config values
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	t.Run("flags override config", func(t *testing.T) {
		t.Parallel()

		flags := &generateFlags{
			output: "cli-out",
			format: "pdf",
			repo:   "https://github.com/cli/repo",
		}
		flags.document.title = "CLI Title"
		flags.document.subtitle = "CLI Subtitle"
		flags.document.description = "CLI Description"
		flags.assets.template = "cli.html"
		flags.assets.assets = "cli-assets"
		flags.validation.validate = true
		flags.validation.timeout = "3s"
		flags.validation.delay = "100ms"

		cfg := &config.Config{
			Title:      "Config Title",
			Format:     "html",
			Output:     "config-out",
			Repository: "https://github.com/config/repo",
			Timeout:    "10s",
		}

		mergeFlags(flags, cfg)

		if cfg.Title != "CLI Title" {
			t.Errorf("Title = %q, want CLI Title", cfg.Title)
		}
		if cfg.Subtitle != "CLI Subtitle" {
			t.Errorf("Subtitle = %q, want CLI Subtitle", cfg.Subtitle)
		}
		if cfg.Description != "CLI Description" {
			t.Errorf("Description = %q, want CLI Description", cfg.Description)
		}
		if cfg.Format != "pdf" {
			t.Errorf("Format = %q, want pdf", cfg.Format)
		}
		if cfg.Output != "cli-out" {
			t.Errorf("Output = %q, want cli-out", cfg.Output)
		}
		if cfg.Repository != "https://github.com/cli/repo" {
			t.Errorf("Repository = %q, want the CLI URL", cfg.Repository)
		}
		if cfg.Template != "cli.html" {
			t.Errorf("Template = %q, want cli.html", cfg.Template)
		}
		if cfg.Assets != "cli-assets" {
			t.Errorf("Assets = %q, want cli-assets", cfg.Assets)
		}
		if !cfg.CheckLinks {
			t.Error("CheckLinks = false, want true")
		}
		if cfg.Timeout != "3s" {
			t.Errorf("Timeout = %q, want 3s", cfg.Timeout)
		}
		if cfg.Delay != "100ms" {
			t.Errorf("Delay = %q, want 100ms", cfg.Delay)
		}
	})

	t.Run("empty flags keep config", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{
			Title:      "Config Title",
			Format:     "html",
			Output:     "config-out",
			CheckLinks: true,
		}

		mergeFlags(&generateFlags{}, cfg)

		if cfg.Title != "Config Title" {
			t.Errorf("Title = %q, want Config Title", cfg.Title)
		}
		if cfg.Format != "html" {
			t.Errorf("Format = %q, want html", cfg.Format)
		}
		if cfg.Output != "config-out" {
			t.Errorf("Output = %q, want config-out", cfg.Output)
		}
		if !cfg.CheckLinks {
			t.Error("CheckLinks flipped to false by empty flags")
		}
	})
}

// ---------------------------------------------------------------------------
// TestResolvePayload - Inline payloads vs file paths
// ---------------------------------------------------------------------------

func TestResolvePayload(t *testing.T) {
	t.Parallel()

	t.Run("empty stays empty", func(t *testing.T) {
		t.Parallel()

		got, err := resolvePayload("")
		if err != nil {
			t.Fatalf("resolvePayload(\"\") returned error: %v", err)
		}
		if got != "" {
			t.Errorf("payload = %q, want empty", got)
		}
	})

	t.Run("inline JSON object passes through", func(t *testing.T) {
		t.Parallel()

		payload := `{"Go": "https://go.dev"}`
		got, err := resolvePayload(payload)
		if err != nil {
			t.Fatalf("resolvePayload returned error: %v", err)
		}
		if got != payload {
			t.Errorf("payload = %q, want unchanged", got)
		}
	})

	t.Run("inline JSON array passes through", func(t *testing.T) {
		t.Parallel()

		payload := `[{"name": "Go", "url": "https://go.dev"}]`
		got, err := resolvePayload(payload)
		if err != nil {
			t.Fatalf("resolvePayload returned error: %v", err)
		}
		if got != payload {
			t.Errorf("payload = %q, want unchanged", got)
		}
	})

	t.Run("existing file is read", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "links.yaml")
		content := "Go: https://go.dev\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}

		got, err := resolvePayload(path)
		if err != nil {
			t.Fatalf("resolvePayload returned error: %v", err)
		}
		if got != content {
			t.Errorf("payload = %q, want file contents %q", got, content)
		}
	})

	t.Run("missing path with separator fails", func(t *testing.T) {
		t.Parallel()

		_, err := resolvePayload("missing/links.yaml")
		if !errors.Is(err, ErrReadLinks) {
			t.Fatalf("resolvePayload = %v, want ErrReadLinks", err)
		}
	})

	t.Run("bare name without separator is inline", func(t *testing.T) {
		t.Parallel()

		got, err := resolvePayload("Go: https://go.dev")
		if err != nil {
			t.Fatalf("resolvePayload returned error: %v", err)
		}
		if got != "Go: https://go.dev" {
			t.Errorf("payload = %q, want unchanged", got)
		}
	})
}

// ---------------------------------------------------------------------------
// TestResolveTimeouts - Duration parsing with CLI defaults
// ---------------------------------------------------------------------------

func TestResolveTimeouts(t *testing.T) {
	t.Parallel()

	t.Run("defaults when unset", func(t *testing.T) {
		t.Parallel()

		timeout, delay, err := resolveTimeouts(&config.Config{})
		if err != nil {
			t.Fatalf("resolveTimeouts returned error: %v", err)
		}
		if timeout != defaultProbeTimeout {
			t.Errorf("timeout = %v, want %v", timeout, defaultProbeTimeout)
		}
		if delay != defaultProbeDelay {
			t.Errorf("delay = %v, want %v", delay, defaultProbeDelay)
		}
	})

	t.Run("configured values parse", func(t *testing.T) {
		t.Parallel()

		timeout, delay, err := resolveTimeouts(&config.Config{Timeout: "30s", Delay: "1s"})
		if err != nil {
			t.Fatalf("resolveTimeouts returned error: %v", err)
		}
		if timeout != 30*time.Second {
			t.Errorf("timeout = %v, want 30s", timeout)
		}
		if delay != time.Second {
			t.Errorf("delay = %v, want 1s", delay)
		}
	})

	t.Run("zero delay is allowed", func(t *testing.T) {
		t.Parallel()

		_, delay, err := resolveTimeouts(&config.Config{Delay: "0s"})
		if err != nil {
			t.Fatalf("resolveTimeouts returned error: %v", err)
		}
		if delay != 0 {
			t.Errorf("delay = %v, want 0", delay)
		}
	})

	tests := []struct {
		name string
		cfg  config.Config
	}{
		{name: "unparseable timeout", cfg: config.Config{Timeout: "ten seconds"}},
		{name: "unparseable delay", cfg: config.Config{Delay: "soon"}},
		{name: "zero timeout", cfg: config.Config{Timeout: "0s"}},
		{name: "negative timeout", cfg: config.Config{Timeout: "-5s"}},
		{name: "negative delay", cfg: config.Config{Delay: "-1s"}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := resolveTimeouts(&tt.cfg)
			if !errors.Is(err, ErrInvalidDuration) {
				t.Fatalf("resolveTimeouts = %v, want ErrInvalidDuration", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestResolveRepositoryURL - Repository fallback chain
// ---------------------------------------------------------------------------

func TestResolveRepositoryURL(t *testing.T) {
	t.Run("config wins over GITHUB_REPOSITORY", func(t *testing.T) {
		t.Setenv("GITHUB_REPOSITORY", "ci/repo")

		got := resolveRepositoryURL(&config.Config{Repository: "https://github.com/alnah/links"})
		if got != "https://github.com/alnah/links" {
			t.Errorf("url = %q, want the config URL", got)
		}
	})

	t.Run("GITHUB_REPOSITORY owner/name expands", func(t *testing.T) {
		t.Setenv("GITHUB_REPOSITORY", "alnah/links")

		got := resolveRepositoryURL(&config.Config{})
		if got != "https://github.com/alnah/links" {
			t.Errorf("url = %q, want https://github.com/alnah/links", got)
		}
	})

	t.Run("GITHUB_REPOSITORY full URL passes through", func(t *testing.T) {
		t.Setenv("GITHUB_REPOSITORY", "https://example.com/repo")

		got := resolveRepositoryURL(&config.Config{})
		if got != "https://example.com/repo" {
			t.Errorf("url = %q, want https://example.com/repo", got)
		}
	})

	t.Run("empty everywhere yields empty", func(t *testing.T) {
		t.Setenv("GITHUB_REPOSITORY", "")

		got := resolveRepositoryURL(&config.Config{})
		if got != "" {
			t.Errorf("url = %q, want empty", got)
		}
	})
}

func TestExpandGitHubRepository(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		repo string
		want string
	}{
		{name: "owner/name", repo: "alnah/links", want: "https://github.com/alnah/links"},
		{name: "https URL unchanged", repo: "https://gitlab.com/alnah/links", want: "https://gitlab.com/alnah/links"},
		{name: "http URL unchanged", repo: "http://internal/repo", want: "http://internal/repo"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := expandGitHubRepository(tt.repo); got != tt.want {
				t.Errorf("expandGitHubRepository(%q) = %q, want %q", tt.repo, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestEnsureOutputDir - Directory creation for output paths
// ---------------------------------------------------------------------------

func TestEnsureOutputDir(t *testing.T) {
	t.Parallel()

	t.Run("directory path is created", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "artifacts")
		if err := ensureOutputDir(dir); err != nil {
			t.Fatalf("ensureOutputDir returned error: %v", err)
		}
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("output dir not created: %v", err)
		}
	})

	t.Run("file path creates parent only", func(t *testing.T) {
		t.Parallel()

		parent := filepath.Join(t.TempDir(), "out")
		path := filepath.Join(parent, "links.md")
		if err := ensureOutputDir(path); err != nil {
			t.Fatalf("ensureOutputDir returned error: %v", err)
		}
		if info, err := os.Stat(parent); err != nil || !info.IsDir() {
			t.Errorf("parent dir not created: %v", err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("file path should not exist yet, stat: %v", err)
		}
	})

	t.Run("nested directories are created", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "a", "b", "c")
		if err := ensureOutputDir(dir); err != nil {
			t.Fatalf("ensureOutputDir returned error: %v", err)
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("nested dir not created: %v", err)
		}
	})

	t.Run("existing directory with dot in name", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "links.backup")
		if err := os.Mkdir(dir, 0o750); err != nil {
			t.Fatalf("Mkdir: %v", err)
		}
		if err := ensureOutputDir(dir); err != nil {
			t.Fatalf("ensureOutputDir returned error: %v", err)
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("directory clobbered: %v", err)
		}
	})

	t.Run("empty and dot are no-ops", func(t *testing.T) {
		t.Parallel()

		if err := ensureOutputDir(""); err != nil {
			t.Errorf("ensureOutputDir(\"\") = %v, want nil", err)
		}
		if err := ensureOutputDir("."); err != nil {
			t.Errorf("ensureOutputDir(\".\") = %v, want nil", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestPrintWarnings - Skipped entry reporting
// ---------------------------------------------------------------------------

func TestPrintWarnings(t *testing.T) {
	t.Parallel()

	t.Run("no warnings prints nothing", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		printWarnings(&buf, nil)
		if buf.Len() != 0 {
			t.Errorf("output = %q, want empty", buf.String())
		}
	})

	t.Run("each warning on its own line", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		printWarnings(&buf, []string{
			"Skipping item: Name must be a non-empty string",
			"Skipping 'Bad': Invalid URL scheme 'ftp': only http, https, or relative paths allowed",
		})

		output := buf.String()
		if !strings.Contains(output, "Warning: 2 item(s) skipped due to validation errors:") {
			t.Errorf("missing count header, got: %s", output)
		}
		if !strings.Contains(output, "  - Skipping item: Name must be a non-empty string") {
			t.Errorf("missing first warning line, got: %s", output)
		}
		if !strings.Contains(output, "  - Skipping 'Bad':") {
			t.Errorf("missing second warning line, got: %s", output)
		}
		if strings.Contains(output, "--timeout") {
			t.Errorf("timeout hint should not appear without timeout warnings, got: %s", output)
		}
	})

	t.Run("timeout warnings add a hint", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		printWarnings(&buf, []string{"Skipping 'Slow': Timeout error"})

		output := buf.String()
		if !strings.Contains(output, "Warning: 1 item(s) skipped") {
			t.Errorf("missing count header, got: %s", output)
		}
		if !strings.Contains(output, "--timeout") {
			t.Errorf("missing timeout hint, got: %s", output)
		}
	})
}

func TestHasTimeoutWarning(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		warnings []string
		want     bool
	}{
		{name: "empty", warnings: nil, want: false},
		{name: "no timeout", warnings: []string{"Skipping 'X': Connection error"}, want: false},
		{name: "timeout present", warnings: []string{"Skipping 'X': Timeout error"}, want: true},
		{name: "timeout among others", warnings: []string{"Skipping 'A': HTTP error 404", "Skipping 'B': Timeout error"}, want: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := hasTimeoutWarning(tt.warnings); got != tt.want {
				t.Errorf("hasTimeoutWarning = %v, want %v", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestErrorWithHint - Recovery hints per error class
// ---------------------------------------------------------------------------

func TestErrorWithHint(t *testing.T) {
	t.Run("missing pandoc suggests pandoc install", func(t *testing.T) {
		err := fmt.Errorf("%w: pandoc not found in PATH", linkbook.ErrMissingDependency)
		msg := errorWithHint(err)
		if !strings.Contains(msg, "hint:") || !strings.Contains(msg, "pandoc.org") {
			t.Errorf("message = %q, want a pandoc install hint", msg)
		}
	})

	t.Run("missing browser suggests chromium install", func(t *testing.T) {
		err := fmt.Errorf("%w: no chrome or chromium binary found", linkbook.ErrMissingDependency)
		msg := errorWithHint(err)
		if !strings.Contains(msg, "hint:") || !strings.Contains(msg, "chromium") {
			t.Errorf("message = %q, want a chromium install hint", msg)
		}
	})

	t.Run("browser connect suggests environment fixes", func(t *testing.T) {
		t.Setenv("ROD_BROWSER_BIN", "")

		err := fmt.Errorf("%w: handshake failed", linkbook.ErrBrowserConnect)
		msg := errorWithHint(err)
		if !strings.Contains(msg, "hint:") {
			t.Errorf("message = %q, want a hint", msg)
		}
	})

	t.Run("config not found suggests --config", func(t *testing.T) {
		err := fmt.Errorf("loading config: %w", config.ErrConfigNotFound)
		msg := errorWithHint(err)
		if !strings.Contains(msg, "--config") {
			t.Errorf("message = %q, want a --config hint", msg)
		}
	})

	t.Run("write output suggests checking the directory", func(t *testing.T) {
		err := fmt.Errorf("%w: permission denied", linkbook.ErrWriteOutput)
		msg := errorWithHint(err)
		if !strings.Contains(msg, "writable") {
			t.Errorf("message = %q, want a writability hint", msg)
		}
	})

	t.Run("unknown error passes through unchanged", func(t *testing.T) {
		err := errors.New("something else")
		msg := errorWithHint(err)
		if msg != "something else" {
			t.Errorf("message = %q, want unchanged", msg)
		}
		if strings.Contains(msg, "hint:") {
			t.Errorf("unexpected hint in %q", msg)
		}
	})
}

// ---------------------------------------------------------------------------
// TestLoadGenerateConfig - Config resolution order
// ---------------------------------------------------------------------------

func TestLoadGenerateConfig(t *testing.T) {
	writeConfig := func(t *testing.T, dir, name, content string) string {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		return path
	}

	t.Run("flag path loads", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "team.yaml", "title: Team Links\nformat: markdown\n")

		cfg, err := loadGenerateConfig(path, "")
		if err != nil {
			t.Fatalf("loadGenerateConfig returned error: %v", err)
		}
		if cfg.Title != "Team Links" {
			t.Errorf("Title = %q, want Team Links", cfg.Title)
		}
		if cfg.Format != "markdown" {
			t.Errorf("Format = %q, want markdown", cfg.Format)
		}
	})

	t.Run("env path loads when flag empty", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "ci.yaml", "format: json\n")

		cfg, err := loadGenerateConfig("", path)
		if err != nil {
			t.Fatalf("loadGenerateConfig returned error: %v", err)
		}
		if cfg.Format != "json" {
			t.Errorf("Format = %q, want json", cfg.Format)
		}
	})

	t.Run("flag wins over env path", func(t *testing.T) {
		dir := t.TempDir()
		flagPath := writeConfig(t, dir, "flag.yaml", "format: html\n")
		envPath := writeConfig(t, dir, "env.yaml", "format: pdf\n")

		cfg, err := loadGenerateConfig(flagPath, envPath)
		if err != nil {
			t.Fatalf("loadGenerateConfig returned error: %v", err)
		}
		if cfg.Format != "html" {
			t.Errorf("Format = %q, want html (flag wins)", cfg.Format)
		}
	})

	t.Run("explicit missing path errors", func(t *testing.T) {
		_, err := loadGenerateConfig(filepath.Join(t.TempDir(), "absent.yaml"), "")
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Fatalf("loadGenerateConfig = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("missing default config falls back to defaults", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

		originalWd, _ := os.Getwd()
		defer os.Chdir(originalWd)
		if err := os.Chdir(dir); err != nil {
			t.Fatalf("Chdir: %v", err)
		}

		cfg, err := loadGenerateConfig("", "")
		if err != nil {
			t.Fatalf("loadGenerateConfig returned error: %v", err)
		}
		if cfg.Title != "" || cfg.Format != "" {
			t.Errorf("cfg = %+v, want zero-valued defaults", cfg)
		}
	})

	t.Run("default config in working directory loads", func(t *testing.T) {
		dir := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
		writeConfig(t, dir, "linkbook.yaml", "title: From CWD\n")

		originalWd, _ := os.Getwd()
		defer os.Chdir(originalWd)
		if err := os.Chdir(dir); err != nil {
			t.Fatalf("Chdir: %v", err)
		}

		cfg, err := loadGenerateConfig("", "")
		if err != nil {
			t.Fatalf("loadGenerateConfig returned error: %v", err)
		}
		if cfg.Title != "From CWD" {
			t.Errorf("Title = %q, want From CWD", cfg.Title)
		}
	})
}

// ---------------------------------------------------------------------------
// TestConfigSearchPaths - Hint path construction
// ---------------------------------------------------------------------------

func TestConfigSearchPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	paths := configSearchPaths()
	if len(paths) == 0 {
		t.Fatal("configSearchPaths returned nothing")
	}
	want := filepath.Join("/tmp/xdg-test", "linkbook", "linkbook.yaml")
	if paths[0] != want {
		t.Errorf("paths[0] = %q, want %q", paths[0], want)
	}
}

// ---------------------------------------------------------------------------
// TestRunGenerate - End-to-end generation through the CLI path
// ---------------------------------------------------------------------------

// setupGenerateTest isolates cwd and user config for an end-to-end run.
func setupGenerateTest(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("GITHUB_REPOSITORY", "")

	originalWd, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(originalWd) })
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	return dir
}

func TestRunGenerate_MarkdownHappyPath(t *testing.T) {
	dir := setupGenerateTest(t)

	flags, _, err := parseGenerateFlags([]string{
		"--title", "Team Links",
		"--links", `{"Go Blog": "https://go.dev/blog"}`,
		"--format", "markdown",
		"--output", "out",
	})
	if err != nil {
		t.Fatalf("parseGenerateFlags: %v", err)
	}

	env, stdout, stderr := testEnv()
	code := runGenerate(context.Background(), flags, env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d; stderr: %s", code, ExitSuccess, stderr.String())
	}

	output := stdout.String()
	if !strings.Contains(output, "Parsing links:") {
		t.Errorf("stdout missing parsing message, got: %s", output)
	}
	if !strings.Contains(output, "MARKDOWN linkbook created successfully:") {
		t.Errorf("stdout missing success message, got: %s", output)
	}

	artifact := filepath.Join(dir, "out", "links.md")
	data, err := os.ReadFile(artifact)
	if err != nil {
		t.Fatalf("artifact not written: %v", err)
	}
	if !strings.Contains(string(data), "Go Blog") {
		t.Errorf("artifact missing link name, got: %s", data)
	}
}

func TestRunGenerate_OutputFilePath(t *testing.T) {
	dir := setupGenerateTest(t)

	flags, _, err := parseGenerateFlags([]string{
		"--links", `{"Go": "https://go.dev"}`,
		"--format", "json",
		"--output", filepath.Join("out", "mylinks.json"),
	})
	if err != nil {
		t.Fatalf("parseGenerateFlags: %v", err)
	}

	env, stdout, stderr := testEnv()
	code := runGenerate(context.Background(), flags, env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d; stderr: %s", code, ExitSuccess, stderr.String())
	}
	if !strings.Contains(stdout.String(), "JSON linkbook created successfully:") {
		t.Errorf("stdout missing success message, got: %s", stdout.String())
	}

	data, err := os.ReadFile(filepath.Join(dir, "out", "mylinks.json"))
	if err != nil {
		t.Fatalf("artifact not written: %v", err)
	}
	if !strings.Contains(string(data), "https://go.dev") {
		t.Errorf("artifact missing link URL, got: %s", data)
	}
}

func TestRunGenerate_NoLinks(t *testing.T) {
	setupGenerateTest(t)

	flags, _, err := parseGenerateFlags(nil)
	if err != nil {
		t.Fatalf("parseGenerateFlags: %v", err)
	}

	env, stdout, stderr := testEnv()
	code := runGenerate(context.Background(), flags, env)
	if code != ExitGeneral {
		t.Fatalf("exit code = %d, want %d", code, ExitGeneral)
	}
	if !strings.Contains(stderr.String(), "No links provided. Exiting.") {
		t.Errorf("stderr = %q, want the no-links message", stderr.String())
	}
	if strings.Contains(stdout.String(), "Parsing links:") {
		t.Errorf("stdout should not report parsing, got: %s", stdout.String())
	}
}

func TestRunGenerate_NoValidLinks(t *testing.T) {
	setupGenerateTest(t)

	flags, _, err := parseGenerateFlags([]string{
		"--links", `{"Bad": "ftp://example.com/file"}`,
		"--format", "markdown",
		"--output", "out",
	})
	if err != nil {
		t.Fatalf("parseGenerateFlags: %v", err)
	}

	env, _, stderr := testEnv()
	code := runGenerate(context.Background(), flags, env)
	if code != ExitGeneral {
		t.Fatalf("exit code = %d, want %d", code, ExitGeneral)
	}

	output := stderr.String()
	if !strings.Contains(output, "Warning: 1 item(s) skipped due to validation errors:") {
		t.Errorf("stderr missing warning block, got: %s", output)
	}
	if !strings.Contains(output, "Error: No valid links to process.") {
		t.Errorf("stderr missing error message, got: %s", output)
	}
	if !strings.Contains(output, "hint:") {
		t.Errorf("stderr missing recovery hint, got: %s", output)
	}
}

func TestRunGenerate_QuietSuppressesOutput(t *testing.T) {
	dir := setupGenerateTest(t)

	flags, _, err := parseGenerateFlags([]string{
		"--links", `{"Go": "https://go.dev"}`,
		"--format", "markdown",
		"--output", "out",
		"--quiet",
	})
	if err != nil {
		t.Fatalf("parseGenerateFlags: %v", err)
	}

	env, stdout, _ := testEnv()
	code := runGenerate(context.Background(), flags, env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d", code, ExitSuccess)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want silence in quiet mode", stdout.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "out", "links.md")); err != nil {
		t.Errorf("artifact not written in quiet mode: %v", err)
	}
}

func TestRunGenerate_VerboseReportsProgress(t *testing.T) {
	setupGenerateTest(t)

	flags, _, err := parseGenerateFlags([]string{
		"--links", `{"Go": "https://go.dev"}`,
		"--format", "markdown",
		"--output", "out",
		"--verbose",
	})
	if err != nil {
		t.Fatalf("parseGenerateFlags: %v", err)
	}

	env, _, stderr := testEnv()
	code := runGenerate(context.Background(), flags, env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d; stderr: %s", code, ExitSuccess, stderr.String())
	}

	output := stderr.String()
	if !strings.Contains(output, "Format: markdown") {
		t.Errorf("stderr missing format line, got: %s", output)
	}
	if !strings.Contains(output, "Output: out") {
		t.Errorf("stderr missing output line, got: %s", output)
	}
	if !strings.Contains(output, "Generated in") {
		t.Errorf("stderr missing timing line, got: %s", output)
	}
}

func TestRunGenerate_InvalidDuration(t *testing.T) {
	setupGenerateTest(t)

	flags, _, err := parseGenerateFlags([]string{
		"--links", `{"Go": "https://go.dev"}`,
		"--timeout", "ten seconds",
	})
	if err != nil {
		t.Fatalf("parseGenerateFlags: %v", err)
	}

	env, _, stderr := testEnv()
	code := runGenerate(context.Background(), flags, env)
	if code != ExitUsage {
		t.Fatalf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "invalid duration") {
		t.Errorf("stderr = %q, want an invalid duration message", stderr.String())
	}
}

func TestRunGenerate_UnsupportedFormat(t *testing.T) {
	setupGenerateTest(t)

	flags, _, err := parseGenerateFlags([]string{
		"--links", `{"Go": "https://go.dev"}`,
		"--format", "docx",
		"--output", "out",
	})
	if err != nil {
		t.Fatalf("parseGenerateFlags: %v", err)
	}

	env, _, stderr := testEnv()
	code := runGenerate(context.Background(), flags, env)
	if code != ExitUsage {
		t.Fatalf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "available formats") {
		t.Errorf("stderr = %q, want the format list", stderr.String())
	}
}

func TestRunGenerate_ConfigFileDrivesRun(t *testing.T) {
	dir := setupGenerateTest(t)

	configPath := filepath.Join(dir, "team.yaml")
	content := "title: Config Driven\nformat: markdown\noutput: from-config\n"
	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	flags, _, err := parseGenerateFlags([]string{
		"--links", `{"Go": "https://go.dev"}`,
		"--config", configPath,
	})
	if err != nil {
		t.Fatalf("parseGenerateFlags: %v", err)
	}

	env, stdout, stderr := testEnv()
	code := runGenerate(context.Background(), flags, env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d; stderr: %s", code, ExitSuccess, stderr.String())
	}
	if !strings.Contains(stdout.String(), "MARKDOWN linkbook created successfully:") {
		t.Errorf("stdout missing success message, got: %s", stdout.String())
	}

	data, err := os.ReadFile(filepath.Join(dir, "from-config", "links.md"))
	if err != nil {
		t.Fatalf("artifact not written to configured output: %v", err)
	}
	if !strings.Contains(string(data), "Config Driven") {
		t.Errorf("artifact missing configured title, got: %s", data)
	}
}

func TestRunGenerate_MissingConfigFlag(t *testing.T) {
	setupGenerateTest(t)

	flags, _, err := parseGenerateFlags([]string{
		"--links", `{"Go": "https://go.dev"}`,
		"--config", "does-not-exist.yaml",
	})
	if err != nil {
		t.Fatalf("parseGenerateFlags: %v", err)
	}

	env, _, stderr := testEnv()
	code := runGenerate(context.Background(), flags, env)
	if code != ExitUsage {
		t.Fatalf("exit code = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "--config") {
		t.Errorf("stderr = %q, want a --config hint", stderr.String())
	}
}

func TestRunGenerate_CanceledContext(t *testing.T) {
	setupGenerateTest(t)

	flags, _, err := parseGenerateFlags([]string{
		"--links", `{"Go": "https://go.dev"}`,
		"--format", "markdown",
		"--output", "out",
	})
	if err != nil {
		t.Fatalf("parseGenerateFlags: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	env, _, _ := testEnv()
	code := runGenerate(ctx, flags, env)
	if code != ExitGeneral {
		t.Fatalf("exit code = %d, want %d", code, ExitGeneral)
	}
}

// ---------------------------------------------------------------------------
// TestRunGenerateCmd - Flag parsing wrapper
// ---------------------------------------------------------------------------

func TestRunGenerateCmd_Help(t *testing.T) {
	t.Parallel()

	env, _, _ := testEnv()
	code := runGenerateCmd([]string{"--help"}, env)
	if code != ExitSuccess {
		t.Errorf("exit code = %d, want %d", code, ExitSuccess)
	}
}

func TestRunGenerateCmd_UnknownFlag(t *testing.T) {
	t.Parallel()

	env, _, stderr := testEnv()
	code := runGenerateCmd([]string{"--no-such-flag"}, env)
	if code != ExitUsage {
		t.Errorf("exit code = %d, want %d", code, ExitUsage)
	}
	if stderr.Len() == 0 {
		t.Error("stderr empty, want a parse error")
	}
}
