package indexing

import (
	"context"
	"fmt"
	"time"

	"github.com/typesense/typesense-go/typesense"
	"github.com/typesense/typesense-go/typesense/api"
	"github.com/typesense/typesense-go/typesense/api/pointer"

	"searchprep/models"
)

// TypesenseIndexer is the production Indexer, bound to one collection on one
// Typesense server for the lifetime of a run.
type TypesenseIndexer struct {
	client     *typesense.Client
	collection string
}

func NewTypesenseIndexer(serverURL, apiKey, collection string) *TypesenseIndexer {
	client := typesense.NewClient(
		typesense.WithServer(serverURL),
		typesense.WithAPIKey(apiKey),
		typesense.WithConnectionTimeout(10*time.Second),
	)
	return &TypesenseIndexer{client: client, collection: collection}
}

func (t *TypesenseIndexer) EnsureCollection(ctx context.Context) (bool, error) {
	collections, err := t.client.Collections().Retrieve(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to list collections: %w", err)
	}

	for _, c := range collections {
		if c.Name == t.collection {
			return false, nil
		}
	}

	if _, err := t.client.Collections().Create(ctx, Schema(t.collection)); err != nil {
		return false, fmt.Errorf("failed to create collection '%s': %w", t.collection, err)
	}
	return true, nil
}

func (t *TypesenseIndexer) Import(ctx context.Context, docs []models.Document) ([]ImportResult, error) {
	payload := make([]interface{}, 0, len(docs))
	for _, d := range docs {
		payload = append(payload, d)
	}

	params := &api.ImportDocumentsParams{
		Action:    pointer.String("upsert"),
		BatchSize: pointer.Int(len(docs)),
	}
	responses, err := t.client.Collection(t.collection).Documents().Import(ctx, payload, params)
	if err != nil {
		return nil, fmt.Errorf("failed to import documents: %w", err)
	}

	// Responses come back in submission order, one line per document.
	results := make([]ImportResult, 0, len(responses))
	for i, r := range responses {
		result := ImportResult{Success: r.Success, Error: r.Error}
		if i < len(docs) {
			result.ID = docs[i].ID
		}
		results = append(results, result)
	}
	return results, nil
}

func (t *TypesenseIndexer) SearchIDs(ctx context.Context, limit int) ([]string, int, error) {
	params := &api.SearchCollectionParams{
		Q:              "*",
		QueryBy:        queryBy,
		QueryByWeights: pointer.String(queryByWeights),
		PerPage:        pointer.Int(limit),
		IncludeFields:  pointer.String("id"),
	}
	result, err := t.client.Collection(t.collection).Documents().Search(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search collection '%s': %w", t.collection, err)
	}

	total := 0
	if result.Found != nil {
		total = *result.Found
	}

	var ids []string
	if result.Hits != nil {
		for _, hit := range *result.Hits {
			if hit.Document == nil {
				continue
			}
			if id, ok := (*hit.Document)["id"].(string); ok {
				ids = append(ids, id)
			}
		}
	}
	return ids, total, nil
}

func (t *TypesenseIndexer) Delete(ctx context.Context, id string) error {
	if _, err := t.client.Collection(t.collection).Document(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete document '%s': %w", id, err)
	}
	return nil
}

func (t *TypesenseIndexer) Count(ctx context.Context) (int64, error) {
	resp, err := t.client.Collection(t.collection).Retrieve(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to retrieve collection '%s': %w", t.collection, err)
	}
	if resp.NumDocuments == nil {
		return 0, nil
	}
	return *resp.NumDocuments, nil
}

func (t *TypesenseIndexer) HealthCheck(ctx context.Context) error {
	healthy, err := t.client.Health(ctx, 5*time.Second)
	if err != nil {
		return fmt.Errorf("search service health check failed: %w", err)
	}
	if !healthy {
		return fmt.Errorf("search service is unhealthy")
	}
	return nil
}

func (t *TypesenseIndexer) Close() error {
	// The Typesense client does not require explicit closure.
	return nil
}
