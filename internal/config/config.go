// Package config loads and validates linkbook configuration files.
//
// A configuration file provides defaults for the generate command so that
// recurring invocations do not need to repeat flags. Files are YAML, parsed
// in strict mode so typos in key names fail loudly instead of being ignored.
// Configs are resolved by name (searched in the current directory, then the
// user config directory) or loaded directly from an explicit path.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-linkbook/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// Field length limits guard against malformed or hostile config files.
const (
	MaxTitleLength       = 300  // Document title
	MaxSubtitleLength    = 300  // Document subtitle
	MaxDescriptionLength = 1000 // Free-form description
	MaxFormatLength      = 30   // "html", "markdown", "restructuredtext"
	MaxPathLength        = 2048 // Output/template/assets paths
	MaxURLLength         = 2048 // Browser limit
)

// DefaultConfigName is the config searched for when no --config flag is
// given. A missing default config is not an error.
const DefaultConfigName = "linkbook"

// appConfigDir is the subdirectory of os.UserConfigDir searched for named
// configs.
const appConfigDir = "linkbook"

// Config carries file-provided defaults for document generation. Every
// field maps to a generate flag; flags set explicitly on the command line
// take precedence over config values.
type Config struct {
	Title       string `yaml:"title"`       // Document title
	Subtitle    string `yaml:"subtitle"`    // Document subtitle
	Description string `yaml:"description"` // Document description
	Format      string `yaml:"format"`      // Output format name or alias
	Output      string `yaml:"output"`      // Output path (empty = format default)
	Template    string `yaml:"template"`    // HTML template override path
	Assets      string `yaml:"assets"`      // Custom assets directory
	CheckLinks  bool   `yaml:"validate"`    // Probe link reachability over the network
	Timeout     string `yaml:"timeout"`     // Per-request timeout, e.g. "10s"
	Delay       string `yaml:"delay"`       // Pause between probes, e.g. "500ms"
	Repository  string `yaml:"repository"`  // Repository URL for artifact footers
}

// DefaultConfig returns an empty configuration. Zero values mean "not set";
// the command layer falls back to flag defaults for anything left empty.
func DefaultConfig() *Config {
	return &Config{}
}

// Validate checks field lengths, duration syntax, and the assets directory.
func (c *Config) Validate() error {
	lengths := []struct {
		name  string
		value string
		max   int
	}{
		{"title", c.Title, MaxTitleLength},
		{"subtitle", c.Subtitle, MaxSubtitleLength},
		{"description", c.Description, MaxDescriptionLength},
		{"format", c.Format, MaxFormatLength},
		{"output", c.Output, MaxPathLength},
		{"template", c.Template, MaxPathLength},
		{"assets", c.Assets, MaxPathLength},
		{"repository", c.Repository, MaxURLLength},
	}
	for _, f := range lengths {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if err := validateDuration("timeout", c.Timeout); err != nil {
		return err
	}
	if err := validateDuration("delay", c.Delay); err != nil {
		return err
	}

	return c.validateAssets()
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateDuration accepts anything time.ParseDuration accepts, except
// negative values. Empty means "not set" and is always valid.
func validateDuration(fieldName, value string) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %v", fieldName, value, err)
	}
	if d < 0 {
		return fmt.Errorf("invalid %s %q: must not be negative", fieldName, value)
	}
	return nil
}

func (c *Config) validateAssets() error {
	if c.Assets == "" {
		return nil
	}
	info, err := os.Stat(c.Assets)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("assets directory does not exist: %s", c.Assets)
		}
		return fmt.Errorf("assets directory inaccessible: %v", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("assets path is not a directory: %s", c.Assets)
	}
	return nil
}

// Timeouts returns the parsed timeout and delay durations, substituting the
// given fallbacks for unset fields. A config that passed Validate never
// hits a parse error here.
func (c *Config) Timeouts(defaultTimeout, defaultDelay time.Duration) (timeout, delay time.Duration) {
	timeout = defaultTimeout
	delay = defaultDelay
	if c.Timeout != "" {
		if d, err := time.ParseDuration(c.Timeout); err == nil {
			timeout = d
		}
	}
	if c.Delay != "" {
		if d, err := time.ParseDuration(c.Delay); err == nil {
			delay = d
		}
	}
	return timeout, delay
}

// LoadConfig loads a configuration by name or path. A value containing a
// path separator is treated as an explicit file path; otherwise it is a
// config name resolved against the search directories.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		resolved, err := resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
		configPath = resolved
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("failed to read config file %s: %v", configPath, err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ResolvePath returns the file LoadConfig would read for a config name, or
// the explicit path itself. Diagnostics use it to report which config file
// is in effect.
func ResolvePath(nameOrPath string) (string, error) {
	if nameOrPath == "" {
		return "", ErrEmptyConfigName
	}
	if isFilePath(nameOrPath) {
		return nameOrPath, nil
	}
	return resolveConfigPath(nameOrPath)
}

// isFilePath reports whether the argument looks like a path rather than a
// bare config name.
func isFilePath(nameOrPath string) bool {
	return strings.ContainsAny(nameOrPath, "/\\")
}

// resolveConfigPath searches for a named config in the current directory,
// then in the user config directory, trying .yaml before .yml.
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}

	var searchDirs []string
	searchDirs = append(searchDirs, ".")
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		searchDirs = append(searchDirs, filepath.Join(userConfigDir, appConfigDir))
	}

	var triedPaths []string
	for _, dir := range searchDirs {
		for _, ext := range extensions {
			candidate := filepath.Join(dir, name+ext)
			if fileExists(candidate) {
				return candidate, nil
			}
			triedPaths = append(triedPaths, candidate)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
