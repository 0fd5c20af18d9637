package indexing

import (
	"context"
	"fmt"
	"sync"

	"searchprep/models"
)

// MemoryIndexer is a thread-safe in-memory Indexer for tests. It records the
// calls it receives and can be told to fail individual documents.
type MemoryIndexer struct {
	mu     sync.RWMutex
	exists bool
	docs   map[string]models.Document
	order  []string

	// FailImports maps document ids to the error message their import
	// results should carry.
	FailImports map[string]string
	// DeleteErr, when set, is returned by every Delete call.
	DeleteErr error

	CreateCalls int
	ImportSizes []int
	SearchCalls int
}

func NewMemoryIndexer() *MemoryIndexer {
	return &MemoryIndexer{
		docs:        make(map[string]models.Document),
		FailImports: make(map[string]string),
	}
}

func (m *MemoryIndexer) EnsureCollection(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.exists {
		return false, nil
	}
	m.exists = true
	m.CreateCalls++
	return true, nil
}

func (m *MemoryIndexer) Import(ctx context.Context, docs []models.Document) ([]ImportResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ImportSizes = append(m.ImportSizes, len(docs))

	results := make([]ImportResult, 0, len(docs))
	for _, doc := range docs {
		if msg, ok := m.FailImports[doc.ID]; ok {
			results = append(results, ImportResult{ID: doc.ID, Error: msg})
			continue
		}
		m.store(doc)
		results = append(results, ImportResult{ID: doc.ID, Success: true})
	}
	return results, nil
}

func (m *MemoryIndexer) SearchIDs(ctx context.Context, limit int) ([]string, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SearchCalls++

	ids := make([]string, 0, limit)
	for _, id := range m.order {
		if len(ids) == limit {
			break
		}
		ids = append(ids, id)
	}
	return ids, len(m.order), nil
}

func (m *MemoryIndexer) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	if _, ok := m.docs[id]; !ok {
		// Real search engines treat deleting a missing key as a success.
		return nil
	}
	delete(m.docs, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MemoryIndexer) Count(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.docs)), nil
}

func (m *MemoryIndexer) HealthCheck(ctx context.Context) error {
	return nil
}

func (m *MemoryIndexer) Close() error {
	return nil
}

// Seed inserts documents directly, bypassing call recording.
func (m *MemoryIndexer) Seed(docs ...models.Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, doc := range docs {
		m.store(doc)
	}
}

// Get lets tests inspect a stored document.
func (m *MemoryIndexer) Get(id string) (models.Document, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[id]
	return doc, ok
}

func (m *MemoryIndexer) store(doc models.Document) {
	if _, ok := m.docs[doc.ID]; !ok {
		m.order = append(m.order, doc.ID)
	}
	m.docs[doc.ID] = doc
}

// SeedN fills the index with n generated documents, useful for purge tests.
func (m *MemoryIndexer) SeedN(n int) {
	for i := 0; i < n; i++ {
		m.Seed(models.Document{
			ID:          fmt.Sprintf("doc-%04d", i),
			Name:        fmt.Sprintf("Document %d", i),
			Description: "seeded",
		})
	}
}
