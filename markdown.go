package linkbook

import (
	"context"
	"strings"
)

// markdownGenerator renders the plain Markdown artifact.
type markdownGenerator struct{}

// Compile-time interface check
var _ Generator = (*markdownGenerator)(nil)

func (markdownGenerator) Generate(ctx context.Context, rc RenderContext, outputPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := writeArtifact(outputPath, []byte(buildMarkdownDocument(rc))); err != nil {
		return "", err
	}
	return outputPath, nil
}

// buildMarkdownDocument lays out the shared Markdown document: title
// heading, optional subtitle, link list, horizontal rule, generation
// footer. The PDF and EPUB pipelines render this same document.
func buildMarkdownDocument(rc RenderContext) string {
	lines := []string{
		"# " + escapeMarkdown(rc.Title),
		"",
	}
	if rc.Subtitle != "" {
		lines = append(lines, "*"+escapeMarkdown(rc.Subtitle)+"*", "")
	}
	lines = append(lines, "## Links", "")
	for _, link := range rc.Links {
		lines = append(lines, "- ["+escapeMarkdown(link.Name)+"]("+escapeMarkdownURL(link.URL)+")")
	}
	lines = append(lines,
		"",
		"---",
		"",
		"*Generated by ["+projectName+"]("+rc.RepositoryURL+") on "+rc.GeneratedAt.Format(timestampLayout)+"*",
		"",
	)
	return strings.Join(lines, "\n")
}
