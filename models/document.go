package models

// Document is one indexable unit: a CSV row mapped onto the search index's
// fields, keyed by its id column.
type Document struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
}
