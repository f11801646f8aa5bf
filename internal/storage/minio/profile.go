package minio

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/quillpress/identity/internal/model"
)

const frontmatterFence = "---"

// parseProfileDocument turns the raw bytes of a profile document into a
// ProfileRecord. Markdown documents carry their metadata as YAML
// frontmatter; .yaml/.yml documents are metadata top to bottom.
func parseProfileDocument(slug, ext string, data []byte) (*model.ProfileRecord, error) {
	var metadata []byte

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		metadata = data
	default:
		fm, err := extractFrontmatter(string(data))
		if err != nil {
			return nil, err
		}
		metadata = []byte(fm)
	}

	record := model.ProfileRecord{Slug: slug}
	if err := yaml.Unmarshal(metadata, &record.Metadata); err != nil {
		return nil, fmt.Errorf("failed to parse profile metadata: %w", err)
	}

	return &record, nil
}

func extractFrontmatter(doc string) (string, error) {
	rest, found := strings.CutPrefix(doc, frontmatterFence+"\n")
	if !found {
		return "", fmt.Errorf("profile document has no frontmatter")
	}

	body, _, found := strings.Cut(rest, "\n"+frontmatterFence)
	if !found {
		return "", fmt.Errorf("profile frontmatter is not terminated")
	}

	return body, nil
}
