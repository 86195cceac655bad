package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"

	linkbook "github.com/alnah/go-linkbook"
	"github.com/alnah/go-linkbook/internal/config"
	"github.com/alnah/go-linkbook/internal/fileutil"
	"github.com/alnah/go-linkbook/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoLinks         = errors.New("No links provided. Exiting.")
	ErrReadLinks       = errors.New("failed to read links file")
	ErrInvalidDuration = errors.New("invalid duration")
)

// Defaults applied when neither flags, environment, nor config set a value.
const (
	defaultTitle        = "My Links"
	defaultOutputDir    = "artifacts"
	defaultProbeTimeout = 10 * time.Second
	defaultProbeDelay   = 500 * time.Millisecond
)

// dirPermissions is rwxr-x---: owner full, group read+execute.
const dirPermissions = 0o750

// runGenerateCmd parses flags and executes the generate command, returning
// the process exit code.
func runGenerateCmd(args []string, env *Environment) int {
	flags, _, err := parseGenerateFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	return runGenerate(ctx, flags, env)
}

// runGenerate orchestrates one generation: resolve settings, build the
// service, run the pipeline, and report the outcome.
func runGenerate(ctx context.Context, flags *generateFlags, env *Environment) int {
	start := env.Now()

	// A .env file supplies LINKBOOK_* and GITHUB_REPOSITORY values without
	// overriding the real environment.
	loadDotEnv()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	envCfg := loadEnvConfig()
	cfg, err := loadGenerateConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		fmt.Fprintln(env.Stderr, errorWithHint(err))
		return exitCodeFor(err)
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)

	payload, err := resolvePayload(flags.links)
	if err != nil {
		fmt.Fprintln(env.Stderr, errorWithHint(err))
		return exitCodeFor(err)
	}
	if strings.TrimSpace(payload) == "" {
		fmt.Fprintln(env.Stderr, ErrNoLinks)
		return ExitGeneral
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Parsing links: %s\n", flags.links)
	}

	timeout, delay, err := resolveTimeouts(cfg)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}

	title := cfg.Title
	if title == "" {
		title = defaultTitle
	}
	format := cfg.Format
	if format == "" {
		format = linkbook.DefaultFormat
	}
	output := cfg.Output
	if output == "" {
		output = defaultOutputDir
	}

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Format: %s\n", format)
		fmt.Fprintf(env.Stderr, "Output: %s\n", output)
	}

	if err := ensureOutputDir(output); err != nil {
		fmt.Fprintln(env.Stderr, errorWithHint(err))
		return exitCodeFor(err)
	}

	opts := []linkbook.Option{
		linkbook.WithTimeout(timeout),
		linkbook.WithDelay(delay),
	}
	if cfg.Assets != "" {
		opts = append(opts, linkbook.WithAssetsDir(cfg.Assets))
	}
	svc, err := linkbook.New(opts...)
	if err != nil {
		fmt.Fprintln(env.Stderr, errorWithHint(err))
		return exitCodeFor(err)
	}
	defer func() { _ = svc.Close() }()

	if cfg.CheckLinks && !flags.common.quiet {
		fmt.Fprintln(env.Stdout, "Validating links...")
	}

	result, err := svc.Run(ctx, linkbook.Input{
		Title:         title,
		Subtitle:      cfg.Subtitle,
		Description:   cfg.Description,
		Payload:       payload,
		Format:        format,
		Output:        output,
		TemplatePath:  cfg.Template,
		CheckLinks:    cfg.CheckLinks,
		RepositoryURL: resolveRepositoryURL(cfg),
	})
	if result != nil {
		printWarnings(env.Stderr, result.Warnings)
	}
	if err != nil {
		if errors.Is(err, linkbook.ErrNoValidLinks) {
			fmt.Fprintln(env.Stderr, "Error: No valid links to process."+hints.ForNoValidLinks())
			return ExitGeneral
		}
		fmt.Fprintln(env.Stderr, errorWithHint(err))
		return exitCodeFor(err)
	}

	if cfg.CheckLinks && len(result.Warnings) == 0 && !flags.common.quiet {
		fmt.Fprintln(env.Stdout, "All links are valid!")
	}

	if !flags.common.quiet {
		absPath, err := filepath.Abs(result.Path)
		if err != nil {
			absPath = result.Path
		}
		fmt.Fprintf(env.Stdout, "%s linkbook created successfully: %s\n", strings.ToUpper(format), absPath)
	}
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Generated in %s\n", env.Now().Sub(start).Round(time.Millisecond))
	}
	return ExitSuccess
}

// loadGenerateConfig loads the config file named by the flag, then the
// environment, then the default name. A missing default config is not an
// error; a missing explicitly-named one is.
func loadGenerateConfig(flagConfig, envConfig string) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = envConfig
	}
	if name != "" {
		cfg, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.LoadConfig(config.DefaultConfigName)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return config.DefaultConfig(), nil
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *generateFlags, cfg *config.Config) {
	if flags.document.title != "" {
		cfg.Title = flags.document.title
	}
	if flags.document.subtitle != "" {
		cfg.Subtitle = flags.document.subtitle
	}
	if flags.document.description != "" {
		cfg.Description = flags.document.description
	}
	if flags.format != "" {
		cfg.Format = flags.format
	}
	if flags.output != "" {
		cfg.Output = flags.output
	}
	if flags.repo != "" {
		cfg.Repository = flags.repo
	}
	if flags.assets.template != "" {
		cfg.Template = flags.assets.template
	}
	if flags.assets.assets != "" {
		cfg.Assets = flags.assets.assets
	}
	if flags.validation.validate {
		cfg.CheckLinks = true
	}
	if flags.validation.timeout != "" {
		cfg.Timeout = flags.validation.timeout
	}
	if flags.validation.delay != "" {
		cfg.Delay = flags.validation.delay
	}
}

// resolvePayload returns the links payload, reading it from a file when the
// flag names one. Inline payloads starting with a brace or bracket are never
// treated as paths.
func resolvePayload(links string) (string, error) {
	if links == "" {
		return "", nil
	}
	trimmed := strings.TrimSpace(links)
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		return links, nil
	}
	if fileutil.FileExists(links) {
		data, err := os.ReadFile(links) // #nosec G304 -- links file path is user-provided
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrReadLinks, err)
		}
		return string(data), nil
	}
	if fileutil.IsFilePath(links) {
		return "", fmt.Errorf("%w: %s", ErrReadLinks, links)
	}
	return links, nil
}

// resolveTimeouts parses the configured probe durations, applying the CLI
// defaults for unset fields.
func resolveTimeouts(cfg *config.Config) (timeout, delay time.Duration, err error) {
	timeout = defaultProbeTimeout
	delay = defaultProbeDelay
	if cfg.Timeout != "" {
		timeout, err = time.ParseDuration(cfg.Timeout)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: --timeout %q (e.g. 10s, 1m)", ErrInvalidDuration, cfg.Timeout)
		}
	}
	if cfg.Delay != "" {
		delay, err = time.ParseDuration(cfg.Delay)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: --delay %q (e.g. 500ms)", ErrInvalidDuration, cfg.Delay)
		}
	}
	if timeout <= 0 {
		return 0, 0, fmt.Errorf("%w: --timeout must be positive", ErrInvalidDuration)
	}
	if delay < 0 {
		return 0, 0, fmt.Errorf("%w: --delay must not be negative", ErrInvalidDuration)
	}
	return timeout, delay, nil
}

// resolveRepositoryURL picks the repository link for artifact footers.
// Flags and LINKBOOK_REPOSITORY were already merged into cfg; after those,
// GITHUB_REPOSITORY covers CI runs. Empty means the built-in fallback.
func resolveRepositoryURL(cfg *config.Config) string {
	if cfg.Repository != "" {
		return cfg.Repository
	}
	if repo := os.Getenv("GITHUB_REPOSITORY"); repo != "" {
		return expandGitHubRepository(repo)
	}
	return ""
}

// expandGitHubRepository turns the Actions-style "owner/name" value into a
// browsable URL. Values already carrying a scheme pass through unchanged.
func expandGitHubRepository(repo string) string {
	if fileutil.IsURL(repo) {
		return repo
	}
	return "https://github.com/" + repo
}

// loadDotEnv loads a .env file from the working directory into the process
// environment. Existing variables are never overridden.
func loadDotEnv() {
	if !fileutil.FileExists(".env") {
		return
	}
	_ = godotenv.Load()
}

// ensureOutputDir creates the directory that will receive the artifact,
// mirroring output path resolution: paths without an extension are
// directories, anything else is a file inside its parent.
func ensureOutputDir(output string) error {
	dir := output
	if filepath.Ext(output) != "" && !fileutil.DirExists(output) {
		dir = filepath.Dir(output)
	}
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return fmt.Errorf("%w: %v", linkbook.ErrWriteOutput, err)
	}
	return nil
}

// printWarnings reports skipped entries on stderr: a count line followed by
// one indented line per entry.
func printWarnings(w io.Writer, warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Fprintf(w, "\nWarning: %d item(s) skipped due to validation errors:\n", len(warnings))
	for _, warning := range warnings {
		fmt.Fprintf(w, "  - %s\n", warning)
	}
	if hasTimeoutWarning(warnings) {
		fmt.Fprintln(w, strings.TrimPrefix(hints.ForTimeout(), "\n"))
	}
}

// hasTimeoutWarning reports whether any skipped entry failed on a probe
// timeout.
func hasTimeoutWarning(warnings []string) bool {
	for _, warning := range warnings {
		if strings.Contains(warning, "Timeout error") {
			return true
		}
	}
	return false
}

// errorWithHint renders an error with a recovery hint when one is known.
func errorWithHint(err error) string {
	msg := err.Error()
	switch {
	case errors.Is(err, linkbook.ErrMissingDependency):
		if strings.Contains(msg, "pandoc") {
			return msg + hints.ForPandocInstall()
		}
		return msg + hints.ForBrowserInstall()
	case errors.Is(err, linkbook.ErrBrowserConnect):
		return msg + hints.ForBrowserConnect()
	case errors.Is(err, config.ErrConfigNotFound):
		return msg + hints.ForConfigNotFound(configSearchPaths())
	case errors.Is(err, linkbook.ErrWriteOutput):
		return msg + hints.ForOutputDirectory()
	}
	return msg
}

// configSearchPaths reproduces the loader's user-level search location for
// hint text.
func configSearchPaths() []string {
	var paths []string
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "linkbook", config.DefaultConfigName+".yaml"))
	}
	return paths
}
