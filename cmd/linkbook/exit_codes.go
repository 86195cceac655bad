package main

import (
	"errors"
	"os"

	linkbook "github.com/alnah/go-linkbook"
	"github.com/alnah/go-linkbook/internal/config"
)

// Exit codes for the linkbook CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess    = 0 // Artifact generated
	ExitGeneral    = 1 // General/unexpected error
	ExitUsage      = 2 // Invalid flags, config, or format
	ExitIO         = 3 // File not found, permission denied
	ExitDependency = 4 // Missing external tool or browser failure
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Missing tools and browser failures (exit 4)
	if errors.Is(err, linkbook.ErrMissingDependency) ||
		errors.Is(err, linkbook.ErrBrowserConnect) ||
		errors.Is(err, linkbook.ErrPageCreate) ||
		errors.Is(err, linkbook.ErrPageLoad) {
		return ExitDependency
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadLinks) ||
		errors.Is(err, linkbook.ErrReadInput) ||
		errors.Is(err, linkbook.ErrWriteOutput) ||
		errors.Is(err, linkbook.ErrTemplateNotFound) {
		return ExitIO
	}

	// Usage, config, and format errors (exit 2)
	if errors.Is(err, ErrInvalidDuration) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, linkbook.ErrUnsupportedFormat) ||
		errors.Is(err, linkbook.ErrInvalidAssetPath) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrEmptyConfigName) {
		return ExitUsage
	}

	return ExitGeneral
}
