package linkbook

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alnah/go-linkbook/internal/fileutil"
)

// Generator produces one artifact for one output format.
type Generator interface {
	// Generate renders rc and writes the artifact to outputPath, returning
	// the path actually written. Writes are atomic: on error no partial
	// artifact remains on disk.
	Generate(ctx context.Context, rc RenderContext, outputPath string) (string, error)
}

// resolveOutputPath maps the caller's output request to a concrete file
// path. A directory (existing, or a path without an extension) gets the
// format's default filename appended. An explicit file path is kept, with
// its extension normalized to the format's own.
func resolveOutputPath(output string, desc PluginDescriptor) string {
	if output == "" {
		return desc.DefaultFilename
	}
	ext := filepath.Ext(output)
	if fileutil.DirExists(output) || ext == "" {
		return filepath.Join(output, desc.DefaultFilename)
	}
	if ext != desc.Extension {
		return strings.TrimSuffix(output, ext) + desc.Extension
	}
	return output
}

// writeArtifact persists rendered artifact bytes with an atomic rename.
func writeArtifact(path string, data []byte) error {
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}
