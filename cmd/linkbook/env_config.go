package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-linkbook/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // LINKBOOK_CONFIG: config file name or path
	Format     string // LINKBOOK_FORMAT: output format name or alias
	Output     string // LINKBOOK_OUTPUT: output file or directory
	Template   string // LINKBOOK_TEMPLATE: HTML template override path
	Assets     string // LINKBOOK_ASSETS: custom assets directory
	Repository string // LINKBOOK_REPOSITORY: repository URL for footers
	Timeout    string // LINKBOOK_TIMEOUT: per-probe timeout, e.g. "10s"
	Delay      string // LINKBOOK_DELAY: pause between probes, e.g. "500ms"
}

// knownEnvVars lists valid LINKBOOK_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"LINKBOOK_CONFIG":     true,
	"LINKBOOK_FORMAT":     true,
	"LINKBOOK_OUTPUT":     true,
	"LINKBOOK_TEMPLATE":   true,
	"LINKBOOK_ASSETS":     true,
	"LINKBOOK_REPOSITORY": true,
	"LINKBOOK_TIMEOUT":    true,
	"LINKBOOK_DELAY":      true,
	"LINKBOOK_CONTAINER":  true, // read by doctor's container detection
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized LINKBOOK_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("LINKBOOK_CONFIG"),
		Format:     os.Getenv("LINKBOOK_FORMAT"),
		Output:     os.Getenv("LINKBOOK_OUTPUT"),
		Template:   os.Getenv("LINKBOOK_TEMPLATE"),
		Assets:     os.Getenv("LINKBOOK_ASSETS"),
		Repository: os.Getenv("LINKBOOK_REPOSITORY"),
	}

	// Durations must parse; invalid values are dropped rather than fatal.
	if timeout := os.Getenv("LINKBOOK_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = timeout
		}
	}
	if delay := os.Getenv("LINKBOOK_DELAY"); delay != "" {
		if d, err := time.ParseDuration(delay); err == nil && d >= 0 {
			cfg.Delay = delay
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized LINKBOOK_* variables.
// Helps catch typos like LINKBOOK_REPO instead of LINKBOOK_REPOSITORY.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "LINKBOOK_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig fills config fields the file left empty. Explicit config
// values win over the ambient environment; flags are merged later and win
// over both.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Format != "" && cfg.Format == "" {
		cfg.Format = env.Format
	}
	if env.Output != "" && cfg.Output == "" {
		cfg.Output = env.Output
	}
	if env.Template != "" && cfg.Template == "" {
		cfg.Template = env.Template
	}
	if env.Assets != "" && cfg.Assets == "" {
		cfg.Assets = env.Assets
	}
	if env.Repository != "" && cfg.Repository == "" {
		cfg.Repository = env.Repository
	}
	if env.Timeout != "" && cfg.Timeout == "" {
		cfg.Timeout = env.Timeout
	}
	if env.Delay != "" && cfg.Delay == "" {
		cfg.Delay = env.Delay
	}
}
