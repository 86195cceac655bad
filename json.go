package linkbook

import (
	"context"
	"encoding/json"
	"fmt"
)

// jsonDocument is the structured artifact layout. Field order here is the
// serialization order.
type jsonDocument struct {
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	Links       []jsonLink   `json:"links"`
	Metadata    jsonMetadata `json:"metadata"`
}

type jsonLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type jsonMetadata struct {
	GeneratedBy   string `json:"generated_by"`
	Timestamp     string `json:"timestamp"`
	RepositoryURL string `json:"repository_url"`
	DocumentID    string `json:"document_id,omitempty"`
}

// jsonGenerator renders the structured JSON artifact. Description
// serializes as null when neither a description nor a subtitle is set.
type jsonGenerator struct{}

// Compile-time interface check
var _ Generator = (*jsonGenerator)(nil)

func (jsonGenerator) Generate(ctx context.Context, rc RenderContext, outputPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	doc := jsonDocument{
		Title: rc.Title,
		Links: make([]jsonLink, 0, len(rc.Links)),
		Metadata: jsonMetadata{
			GeneratedBy:   projectName,
			Timestamp:     rc.GeneratedAt.Format(timestampLayout),
			RepositoryURL: rc.RepositoryURL,
			DocumentID:    rc.DocumentID,
		},
	}
	description := rc.Description
	if description == "" {
		description = rc.Subtitle
	}
	if description != "" {
		doc.Description = &description
	}
	for _, link := range rc.Links {
		doc.Links = append(doc.Links, jsonLink{Name: link.Name, URL: link.URL})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("%w: encoding document: %v", ErrGenerate, err)
	}
	if err := writeArtifact(outputPath, data); err != nil {
		return "", err
	}
	return outputPath, nil
}
