package linkbook

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyPayload      = errors.New("links payload cannot be empty")
	ErrParse             = errors.New("failed to parse links payload")
	ErrNoValidLinks      = errors.New("no valid links to process")
	ErrUnsupportedFormat = errors.New("unknown output format")

	// Generation errors.
	ErrGenerate          = errors.New("artifact generation failed")
	ErrMissingDependency = errors.New("missing required dependency")
	ErrBrowserConnect    = errors.New("failed to connect to browser")
	ErrPageCreate        = errors.New("failed to create browser page")
	ErrPageLoad          = errors.New("failed to load page")

	// Asset and template errors.
	ErrTemplateNotFound = errors.New("template file not found")
	ErrInvalidAssetPath = errors.New("invalid assets path")

	// Filesystem errors.
	ErrReadInput   = errors.New("failed to read input")
	ErrWriteOutput = errors.New("failed to write output artifact")
)
