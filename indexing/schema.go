package indexing

import (
	"github.com/typesense/typesense-go/typesense/api"
	"github.com/typesense/typesense-go/typesense/api/pointer"
)

// Ranked content fields for every query against the index. The name field
// outranks the description, mirroring the intent of a semantic configuration
// on services that support one.
const (
	queryBy        = "name,description"
	queryByWeights = "2,1"
)

// Schema is the fixed index schema: id is the document key, name and
// description are searchable English text, and category is an optional facet
// attached only when a category is set for the run.
func Schema(name string) *api.CollectionSchema {
	return &api.CollectionSchema{
		Name: name,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "name", Type: "string", Locale: pointer.String("en")},
			{Name: "description", Type: "string", Locale: pointer.String("en")},
			{Name: "category", Type: "string", Facet: pointer.True(), Optional: pointer.True()},
		},
	}
}
