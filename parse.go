package linkbook

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/alnah/go-linkbook/internal/yamlutil"
)

// ParseLinks decodes a links payload and returns the canonical link list
// plus one warning per skipped entry. Three payload shapes are accepted:
//
//   - a mapping of name to URL
//   - a sequence of objects with "name" and "url" keys
//   - a sequence of [name, url] pairs
//
// JSON payloads parse as well since JSON is a YAML subset. For sequences
// the shape is decided by the first element; elements that do not match it
// are skipped with a warning. Document order is preserved, and entries
// failing name or URL validation are excluded rather than failing the
// whole parse.
func ParseLinks(payload string) ([]Link, []string, error) {
	if strings.TrimSpace(payload) == "" {
		return nil, nil, ErrEmptyPayload
	}

	var doc any
	if err := yamlutil.UnmarshalOrdered([]byte(payload), &doc); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	switch v := doc.(type) {
	case yaml.MapSlice:
		return parseMapping(v)
	case []any:
		return parseSequence(v)
	default:
		return nil, nil, fmt.Errorf("%w: payload must be a mapping or a sequence, got %T", ErrParse, doc)
	}
}

// parseMapping handles the {name: url} shape.
func parseMapping(items yaml.MapSlice) ([]Link, []string, error) {
	links := make([]Link, 0, len(items))
	var warnings []string
	for _, item := range items {
		appendValidated(&links, &warnings, asString(item.Key), asString(item.Value), "")
	}
	return links, warnings, nil
}

// parseSequence dispatches on the first element: mappings mean the
// object-per-link shape, nested sequences mean the pair shape.
func parseSequence(items []any) ([]Link, []string, error) {
	if len(items) == 0 {
		return nil, nil, nil
	}
	switch items[0].(type) {
	case yaml.MapSlice:
		return parseObjects(items)
	case []any:
		return parsePairs(items)
	default:
		return nil, nil, fmt.Errorf("%w: sequence items must be objects or [name, url] pairs, got %T at index 0", ErrParse, items[0])
	}
}

// parseObjects handles the [{name: ..., url: ...}] shape.
func parseObjects(items []any) ([]Link, []string, error) {
	links := make([]Link, 0, len(items))
	var warnings []string
	for i, item := range items {
		entry, ok := item.(yaml.MapSlice)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("Skipping item at index %d: missing 'name' or 'url' key", i))
			continue
		}
		name, hasName := lookupKey(entry, "name")
		url, hasURL := lookupKey(entry, "url")
		if !hasName || !hasURL {
			warnings = append(warnings, fmt.Sprintf("Skipping item at index %d: missing 'name' or 'url' key", i))
			continue
		}
		appendValidated(&links, &warnings, asString(name), asString(url), fmt.Sprintf(" at index %d", i))
	}
	return links, warnings, nil
}

// parsePairs handles the [[name, url]] shape. Rows longer than two elements
// contribute their first two; shorter rows are skipped.
func parsePairs(items []any) ([]Link, []string, error) {
	links := make([]Link, 0, len(items))
	var warnings []string
	for i, item := range items {
		row, ok := item.([]any)
		if !ok || len(row) < 2 {
			warnings = append(warnings, fmt.Sprintf("Skipping item at index %d: array must have at least 2 elements", i))
			continue
		}
		appendValidated(&links, &warnings, asString(row[0]), asString(row[1]), fmt.Sprintf(" at index %d", i))
	}
	return links, warnings, nil
}

// appendValidated validates the name first, then the URL, and appends
// either a Link or a warning describing why the entry was skipped. The
// context string locates the entry within sequence payloads.
func appendValidated(links *[]Link, warnings *[]string, name, url, context string) {
	if outcome := ValidateName(name); !outcome.Valid() {
		*warnings = append(*warnings, fmt.Sprintf("Skipping item%s: %s", context, outcome.Reason()))
		return
	}
	if outcome := ValidateURL(url); !outcome.Valid() {
		*warnings = append(*warnings, fmt.Sprintf("Skipping '%s'%s: %s", name, context, outcome.Reason()))
		return
	}
	*links = append(*links, Link{Name: name, URL: url})
}

// lookupKey returns the value for key in an ordered mapping. The first
// matching key wins when the document repeats one.
func lookupKey(entry yaml.MapSlice, key string) (any, bool) {
	for _, item := range entry {
		if asString(item.Key) == key {
			return item.Value, true
		}
	}
	return nil, false
}

// asString returns a decoded YAML scalar's string form. Non-string scalars
// such as numbers and booleans return "" so the validators reject them with
// the usual diagnostics.
func asString(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}
