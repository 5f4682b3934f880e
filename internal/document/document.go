// Package document models the drafted workflow documents and their storage.
//
// Documents are markdown files with a YAML frontmatter block carrying the
// title, type, and timestamps. A DirStore writes them under a flat output
// directory; a Watcher picks up external edits during review so revision
// always starts from what is actually on disk.
package document

import (
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"ideaforge/internal/errors"
)

// Type identifies what a drafted document is.
type Type string

const (
	TypeVision         Type = "vision"
	TypePRD            Type = "prd"
	TypeArchitecture   Type = "architecture"
	TypeResearchReport Type = "research_report"
)

// IsValid returns true if the type is a known document type.
func (t Type) IsValid() bool {
	switch t {
	case TypeVision, TypePRD, TypeArchitecture, TypeResearchReport:
		return true
	default:
		return false
	}
}

// String returns the string form of the type.
func (t Type) String() string {
	return string(t)
}

// Document is one drafted workflow document.
type Document struct {
	Type      Type
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// frontmatter is the YAML block at the top of a rendered document.
type frontmatter struct {
	Title        string    `yaml:"title"`
	DocumentType string    `yaml:"document_type"`
	CreatedAt    time.Time `yaml:"created_at"`
	UpdatedAt    time.Time `yaml:"updated_at"`
}

const frontmatterDelimiter = "---"

// Render emits the document as markdown with a YAML frontmatter block.
func (d Document) Render() (string, error) {
	meta, err := yaml.Marshal(frontmatter{
		Title:        d.Title,
		DocumentType: string(d.Type),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	})
	if err != nil {
		return "", errors.Wrap(err, "marshal frontmatter")
	}

	var b strings.Builder
	b.WriteString(frontmatterDelimiter)
	b.WriteString("\n")
	b.Write(meta)
	b.WriteString(frontmatterDelimiter)
	b.WriteString("\n\n")
	b.WriteString(strings.TrimSpace(d.Content))
	b.WriteString("\n")
	return b.String(), nil
}

// Parse splits a raw file into frontmatter and content. A file without a
// frontmatter block parses as a content-only document, not an error;
// malformed YAML inside a present block is an error.
func Parse(raw string) (Document, error) {
	rest, ok := strings.CutPrefix(raw, frontmatterDelimiter+"\n")
	if !ok {
		return Document{Content: strings.TrimSpace(raw)}, nil
	}

	metaText, content, found := strings.Cut(rest, "\n"+frontmatterDelimiter)
	if !found {
		return Document{Content: strings.TrimSpace(raw)}, nil
	}

	var meta frontmatter
	if err := yaml.Unmarshal([]byte(metaText), &meta); err != nil {
		return Document{}, errors.Wrap(err, "parse frontmatter")
	}

	return Document{
		Type:      Type(meta.DocumentType),
		Title:     meta.Title,
		Content:   strings.TrimSpace(content),
		CreatedAt: meta.CreatedAt,
		UpdatedAt: meta.UpdatedAt,
	}, nil
}

// Slug converts a title to its filename: lowercased, spaces to dashes,
// with a .md extension.
func Slug(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug + ".md"
}
