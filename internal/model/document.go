package model

import (
	"strings"
	"time"
)

// Document is a parsed source document an interview is based on.
// Parsing happens upstream; documents arrive here with their section
// hierarchy already flattened in reading order.
type Document struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Title     string    `json:"title" bson:"title"`
	Sections  []Section `json:"sections" bson:"sections"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

// Section is one titled unit of document content. Level 1 is a top-level
// section; deeper levels are nested subsections.
type Section struct {
	Title   string `json:"title" bson:"title"`
	Content string `json:"content" bson:"content"`
	Level   int    `json:"level" bson:"level"`
	Order   int    `json:"order" bson:"order"`
}

// TableOfContents renders the section hierarchy as an indented outline
func (d *Document) TableOfContents() string {
	var sb strings.Builder
	sb.WriteString(d.Title)
	sb.WriteString("\n")
	for _, s := range d.Sections {
		sb.WriteString(strings.Repeat("  ", s.Level))
		sb.WriteString("- ")
		sb.WriteString(s.Title)
		sb.WriteString("\n")
	}
	return sb.String()
}

// ConcatenatedContent returns the content of the named section plus all of
// its nested subsections, joined in reading order. The second return is
// false when no section with that title exists.
func (d *Document) ConcatenatedContent(sectionTitle string) (string, bool) {
	start := -1
	for idx, s := range d.Sections {
		if strings.EqualFold(s.Title, sectionTitle) {
			start = idx
			break
		}
	}
	if start < 0 {
		return "", false
	}

	var parts []string
	level := d.Sections[start].Level
	parts = append(parts, d.Sections[start].Content)
	for _, s := range d.Sections[start+1:] {
		if s.Level <= level {
			break
		}
		parts = append(parts, s.Content)
	}
	return strings.Join(parts, "\n\n"), true
}
