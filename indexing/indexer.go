package indexing

import (
	"context"

	"searchprep/models"
)

// Indexer defines the contract for the search engine backing one index.
// It keeps the orchestration layer independent of the Typesense client and
// makes unit testing trivial.
type Indexer interface {
	// EnsureCollection creates the collection with the fixed schema when it
	// does not exist yet. It reports whether a creation happened.
	EnsureCollection(ctx context.Context) (created bool, err error)

	// Import upserts a batch of documents in one call and returns one result
	// per document. Individual failures are results, not errors.
	Import(ctx context.Context, docs []models.Document) ([]ImportResult, error)

	// SearchIDs runs a match-all query and returns up to limit document keys
	// together with the total match count.
	SearchIDs(ctx context.Context, limit int) (ids []string, total int, err error)

	// Delete removes a single document by key.
	Delete(ctx context.Context, id string) error

	// Count returns the number of documents in the collection.
	Count(ctx context.Context) (int64, error)

	// HealthCheck checks that the search service is reachable and healthy.
	HealthCheck(ctx context.Context) error

	// Close cleans up any resources held by the indexer.
	Close() error
}

// ImportResult is the per-document outcome of a batch upload. Partial
// success is the normal case for bulk uploads, so outcomes are carried as
// flags rather than errors.
type ImportResult struct {
	ID      string
	Success bool
	Error   string
}
