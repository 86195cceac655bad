package linkbook

import (
	"context"
	"strings"
)

// asciidocGenerator renders the AsciiDoc artifact.
type asciidocGenerator struct{}

// Compile-time interface check
var _ Generator = (*asciidocGenerator)(nil)

func (asciidocGenerator) Generate(ctx context.Context, rc RenderContext, outputPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	lines := []string{
		"= " + escapeAsciiDoc(rc.Title),
		"",
	}
	if rc.Subtitle != "" {
		lines = append(lines, "_"+escapeAsciiDoc(rc.Subtitle)+"_", "")
	}
	lines = append(lines, "== Links", "")
	for _, link := range rc.Links {
		lines = append(lines, "- link:"+escapeAsciiDocURL(link.URL)+"["+escapeAsciiDoc(link.Name)+"]")
	}
	lines = append(lines,
		"",
		"'''",
		"",
		"_Generated by "+projectName+" on "+rc.GeneratedAt.Format(timestampLayout)+"_",
		"",
	)

	if err := writeArtifact(outputPath, []byte(strings.Join(lines, "\n"))); err != nil {
		return "", err
	}
	return outputPath, nil
}
