package linkbook

import (
	"context"
	"strings"
	"unicode/utf8"
)

// rstGenerator renders the reStructuredText artifact. Section underlines
// must span the full title line, measured in runes.
type rstGenerator struct{}

// Compile-time interface check
var _ Generator = (*rstGenerator)(nil)

func (rstGenerator) Generate(ctx context.Context, rc RenderContext, outputPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	title := escapeRST(rc.Title)
	lines := []string{
		title,
		strings.Repeat("=", utf8.RuneCountInString(title)),
		"",
	}
	if rc.Subtitle != "" {
		lines = append(lines, "*"+escapeRST(rc.Subtitle)+"*", "")
	}
	lines = append(lines, "Links", "-----", "")
	for _, link := range rc.Links {
		lines = append(lines, "- `"+escapeRST(link.Name)+" <"+escapeRSTURL(link.URL)+">`_")
	}
	lines = append(lines,
		"",
		"----",
		"",
		"*Generated by "+projectName+" on "+rc.GeneratedAt.Format(timestampLayout)+"*",
		"",
	)

	if err := writeArtifact(outputPath, []byte(strings.Join(lines, "\n"))); err != nil {
		return "", err
	}
	return outputPath, nil
}
