package linkbook

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/alnah/go-linkbook/internal/fileutil"
)

// CommandRunner abstracts subprocess execution to enable testing without
// real subprocesses. Entries in env are appended to the inherited
// environment.
type CommandRunner interface {
	Run(ctx context.Context, env []string, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, env []string, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}

	// On cancellation, take down the child's whole process group. Pandoc can
	// spawn helpers that CommandContext's default kill would orphan.
	setProcessGroup(cmd)
	cmd.Cancel = func() error {
		if cmd.Process != nil {
			killProcessGroup(cmd.Process.Pid)
		}
		return nil
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// epubGenerator renders the Markdown document to EPUB3 by invoking pandoc.
type epubGenerator struct {
	runner   CommandRunner
	lookPath func(string) (string, error) // exec.LookPath, injectable for tests
}

// Compile-time interface check
var _ Generator = (*epubGenerator)(nil)

func newEPUBGenerator() *epubGenerator {
	return &epubGenerator{runner: &ExecRunner{}, lookPath: exec.LookPath}
}

func (g *epubGenerator) Generate(ctx context.Context, rc RenderContext, outputPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := g.lookPath("pandoc"); err != nil {
		return "", fmt.Errorf("%w: pandoc is required for epub output", ErrMissingDependency)
	}

	srcPath, cleanup, err := fileutil.WriteTempFile(buildMarkdownDocument(rc), "md")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerate, err)
	}
	defer cleanup()

	// Pandoc writes the output file itself. Point it at a temp name in the
	// destination directory first, then rename into place, so a failed run
	// leaves no partial artifact.
	tmpOut, err := tempOutputPath(outputPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	defer func() { _ = os.Remove(tmpOut) }()

	// SOURCE_DATE_EPOCH pins the timestamps pandoc embeds in the archive.
	env := []string{fmt.Sprintf("SOURCE_DATE_EPOCH=%d", rc.GeneratedAt.Unix())}
	args := []string{srcPath, "-f", "gfm", "-t", "epub3", "--metadata", "title=" + rc.Title}
	if rc.DocumentID != "" {
		// Pandoc mints a random package identifier when none is supplied,
		// which would defeat the SOURCE_DATE_EPOCH pinning above.
		args = append(args, "--metadata", "identifier="+rc.DocumentID)
	}
	args = append(args, "-o", tmpOut)
	if _, stderr, err := g.runner.Run(ctx, env, "pandoc", args...); err != nil {
		return "", fmt.Errorf("%w: pandoc: %s: %v", ErrGenerate, strings.TrimSpace(stderr), err)
	}

	if err := os.Rename(tmpOut, outputPath); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return outputPath, nil
}

// tempOutputPath reserves a temporary file next to the destination so the
// final rename stays on one filesystem.
func tempOutputPath(outputPath string) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(outputPath), ".linkbook-*.epub")
	if err != nil {
		return "", err
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return "", err
	}
	return name, nil
}
