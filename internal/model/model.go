package model

import "strings"

// Column names shared by the store (which fills Record.Fields) and the column registry.
const (
	FieldAuthor           = "author"
	FieldTitle            = "title"
	FieldPublicationTitle = "publication title"
	FieldYear             = "year"
	FieldTimeAdded        = "time added"
	FieldItemType         = "item type"
	FieldCollections      = "collections"
	FieldDOI              = "doi"
	FieldURL              = "url"
	FieldKey              = "key"
)

// Attachment is a file associated with exactly one Record.
type Attachment struct {
	Label       string `json:"label"`
	Path        string `json:"path,omitempty"`
	ContentType string `json:"contentType,omitempty"`
}

// Record is one bibliographic entry. Records are loaded once and never mutated.
type Record struct {
	ID  int64  `json:"id"`
	Key string `json:"key"`

	// Fields maps a column name to its display value. A missing key means the value is absent.
	Fields map[string]string `json:"fields"`

	Attachments []Attachment `json:"attachments,omitempty"`
}

// Field returns the trimmed value of a column; ok is false when absent or blank.
func (r Record) Field(name string) (string, bool) {
	v, ok := r.Fields[name]
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	return v, true
}
