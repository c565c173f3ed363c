// Package docgen fills document templates with visitor supplied values and
// renders generated documents into a paginated plain text artifact.
package docgen

import (
	"errors"
	"strings"
	"time"

	"github.com/legalbridge/legalbridge-api/models"
)

// ErrUnknownTemplate is returned when a document kind is not in the catalog
var ErrUnknownTemplate = errors.New("unknown document template")

// titleFields are consulted in order for the dynamic part of a document title
var titleFields = []string{"subject", "accusedName", "recipientName", "applicantName"}

// TemplateSource looks up a document template by kind
type TemplateSource interface {
	Template(kind string) (models.DocumentTemplate, bool)
}

// Render replaces every {fieldId} placeholder of the template with the matching
// value. Missing values render as an empty string and tokens that are not
// declared as fields are left as they are.
func Render(tpl models.DocumentTemplate, values map[string]string) string {
	out := tpl.Template
	for _, f := range tpl.Fields {
		out = strings.ReplaceAll(out, "{"+f.ID+"}", values[f.ID])
	}
	return out
}

// Title derives the title of a generated document
func Title(tpl models.DocumentTemplate, values map[string]string) string {
	for _, id := range titleFields {
		if v := values[id]; v != "" {
			return tpl.Title + " – " + v
		}
	}
	return tpl.Title
}

// Generate renders the template of the given kind into a new document entry
func Generate(src TemplateSource, kind string, values map[string]string, now time.Time) (models.GeneratedDocument, error) {
	tpl, ok := src.Template(kind)
	if !ok {
		return models.GeneratedDocument{}, ErrUnknownTemplate
	}
	return models.GeneratedDocument{
		ID:        now.UnixMilli(),
		Type:      kind,
		Title:     Title(tpl, values),
		Content:   Render(tpl, values),
		CreatedAt: now.UTC().Format(time.RFC3339Nano),
	}, nil
}
