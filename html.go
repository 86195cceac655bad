package linkbook

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"

	"github.com/alnah/go-linkbook/internal/assets"
	"github.com/alnah/go-linkbook/internal/fileutil"
)

// htmlGenerator renders the hypertext artifact from the page template.
//
// TRUST BOUNDARY: link names and titles come from untrusted payloads.
// Rendering goes through html/template, which escapes every interpolated
// value for its context, so a hostile name cannot break out of its element
// or attribute. Custom templates get the same treatment.
type htmlGenerator struct {
	loader assets.AssetLoader
}

// Compile-time interface check
var _ Generator = (*htmlGenerator)(nil)

func newHTMLGenerator(loader assets.AssetLoader) *htmlGenerator {
	return &htmlGenerator{loader: loader}
}

// pageData is the template payload for one rendered page.
type pageData struct {
	Title         string
	Subtitle      string
	Description   string
	Links         []Link
	Nonce         string
	RepositoryURL string
	Timestamp     string
}

func (g *htmlGenerator) Generate(ctx context.Context, rc RenderContext, outputPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	source, err := g.templateSource(rc.TemplatePath)
	if err != nil {
		return "", err
	}
	tmpl, err := template.New("page").Parse(source)
	if err != nil {
		return "", fmt.Errorf("%w: parsing page template: %v", ErrGenerate, err)
	}

	nonce := rc.Nonce
	if nonce == "" {
		nonce = NewNonce()
	}
	data := pageData{
		Title:         rc.Title,
		Subtitle:      rc.Subtitle,
		Description:   rc.Description,
		Links:         rc.Links,
		Nonce:         nonce,
		RepositoryURL: rc.RepositoryURL,
		Timestamp:     rc.GeneratedAt.Format(timestampLayout),
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: rendering page template: %v", ErrGenerate, err)
	}
	if err := writeArtifact(outputPath, buf.Bytes()); err != nil {
		return "", err
	}
	return outputPath, nil
}

// templateSource returns the page template text: the caller's file when a
// custom path is set, the loader's built-in template otherwise.
func (g *htmlGenerator) templateSource(path string) (string, error) {
	if path == "" {
		source, err := g.loader.LoadTemplate(assets.DefaultTemplateName)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrGenerate, err)
		}
		return source, nil
	}
	if !fileutil.FileExists(path) {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
	}
	raw, err := os.ReadFile(path) // #nosec G304 -- template path is caller-provided
	if err != nil {
		return "", fmt.Errorf("%w: reading template %s: %v", ErrReadInput, path, err)
	}
	return string(raw), nil
}
