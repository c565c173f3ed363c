package models

// FieldTypeTextarea marks a multi-line template field
const FieldTypeTextarea = "textarea"

// TemplateField is one input of a document template
type TemplateField struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
	Type  string `json:"type,omitempty" yaml:"type,omitempty"`
}

// DocumentTemplate holds a document skeleton with {fieldId} placeholders
type DocumentTemplate struct {
	Kind        string          `json:"kind" yaml:"kind"`
	Title       string          `json:"title" yaml:"title"`
	Description string          `json:"description" yaml:"description"`
	Icon        string          `json:"icon" yaml:"icon"`
	Fields      []TemplateField `json:"fields" yaml:"fields"`
	Template    string          `json:"template" yaml:"template"`
}

// GeneratedDocument is an entry of a visitor's document log. The ID is the
// creation time in unix milliseconds.
type GeneratedDocument struct {
	ID        int64  `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"createdAt"`
}
