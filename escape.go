package linkbook

import "strings"

// Escapers for the text markup formats. Link names and titles are arbitrary
// text even after validation, so characters with structural meaning in the
// target markup are backslash-escaped: a name like "a[b]" must render as
// written, not change the document structure. strings.Replacer substitutes
// in a single pass, so inserted backslashes are never re-escaped.
var (
	markdownEscaper = strings.NewReplacer(
		`\`, `\\`,
		"`", "\\`",
		`*`, `\*`,
		`_`, `\_`,
		`{`, `\{`,
		`}`, `\}`,
		`[`, `\[`,
		`]`, `\]`,
		`(`, `\(`,
		`)`, `\)`,
		`#`, `\#`,
		`!`, `\!`,
		`|`, `\|`,
		`<`, `\<`,
		`>`, `\>`,
	)

	rstEscaper = strings.NewReplacer(
		`\`, `\\`,
		"`", "\\`",
		`*`, `\*`,
		`_`, `\_`,
		`|`, `\|`,
		`<`, `\<`,
		`>`, `\>`,
	)

	asciidocEscaper = strings.NewReplacer(
		"`", "\\`",
		`*`, `\*`,
		`_`, `\_`,
		`#`, `\#`,
		`[`, `\[`,
		`]`, `\]`,
	)
)

func escapeMarkdown(s string) string { return markdownEscaper.Replace(s) }
func escapeRST(s string) string      { return rstEscaper.Replace(s) }
func escapeAsciiDoc(s string) string { return asciidocEscaper.Replace(s) }

// URL escapers percent-encode the characters that would end a link target
// early in each markup: ")" closes a Markdown target, ">" closes an RST
// one, "[" opens the AsciiDoc link text.
var (
	markdownURLEscaper = strings.NewReplacer("(", "%28", ")", "%29", " ", "%20")
	rstURLEscaper      = strings.NewReplacer("<", "%3C", ">", "%3E", " ", "%20")
	asciidocURLEscaper = strings.NewReplacer("[", "%5B", "]", "%5D", " ", "%20")
)

func escapeMarkdownURL(s string) string { return markdownURLEscaper.Replace(s) }
func escapeRSTURL(s string) string      { return rstURLEscaper.Replace(s) }
func escapeAsciiDocURL(s string) string { return asciidocURLEscaper.Replace(s) }
