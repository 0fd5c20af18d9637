package indexing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"searchprep/models"
)

const (
	// DefaultBatchSize is the number of documents per upload call.
	DefaultBatchSize = 1000
	// DefaultPageSize is the number of documents fetched per purge query.
	// Hosted Typesense caps a search page at 250 results.
	DefaultPageSize = 250
	// DefaultInterval is the pause between purge iterations, giving the
	// service's search view time to catch up with deletions.
	DefaultInterval = 2 * time.Second
)

// ServiceConfig tunes the batching and purge loops. Zero values for the
// sizes fall back to the defaults; Interval and MaxIterations are used as
// given so tests can run with no sleeping and a bounded loop.
type ServiceConfig struct {
	BatchSize     int
	PageSize      int
	Interval      time.Duration
	MaxIterations int
}

func (c ServiceConfig) withDefaults() ServiceConfig {
	if c.BatchSize <= 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	return c
}

// IndexStats accumulates per-run upload accounting across batches.
type IndexStats struct {
	Attempted int
	Succeeded int
	Batches   int
}

// Service orchestrates index management, batched uploads and removals on
// top of an Indexer.
type Service struct {
	indexer Indexer
	logger  *slog.Logger
	cfg     ServiceConfig
}

func NewService(indexer Indexer, logger *slog.Logger, cfg ServiceConfig) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{indexer: indexer, logger: logger, cfg: cfg.withDefaults()}
}

// EnsureIndex creates the index with the fixed schema when it does not exist
// yet. Safe to call on every run.
func (s *Service) EnsureIndex(ctx context.Context) error {
	s.logger.Info("ensuring search index exists")

	created, err := s.indexer.EnsureCollection(ctx)
	if err != nil {
		return fmt.Errorf("failed to ensure search index exists: %w", err)
	}
	if created {
		s.logger.Info("created search index")
	} else {
		s.logger.Info("search index already exists")
	}
	return nil
}

// IndexSections uploads documents in batches of BatchSize, flushing the
// remainder after the input is exhausted. An exact multiple of BatchSize
// issues no trailing call. Per-document failures are counted, not fatal.
func (s *Service) IndexSections(ctx context.Context, sections []models.Document) (IndexStats, error) {
	s.logger.Info("indexing sections into search index", "sections", len(sections))

	var stats IndexStats
	batch := make([]models.Document, 0, s.cfg.BatchSize)
	for _, section := range sections {
		batch = append(batch, section)
		if len(batch) == s.cfg.BatchSize {
			if err := s.flush(ctx, batch, &stats); err != nil {
				return stats, err
			}
			batch = batch[:0]
		}
	}
	if len(batch) > 0 {
		if err := s.flush(ctx, batch, &stats); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func (s *Service) flush(ctx context.Context, batch []models.Document, stats *IndexStats) error {
	results, err := s.indexer.Import(ctx, batch)
	if err != nil {
		return fmt.Errorf("failed to upload batch: %w", err)
	}

	succeeded := 0
	for _, r := range results {
		if r.Success {
			succeeded++
		}
	}
	stats.Attempted += len(batch)
	stats.Succeeded += succeeded
	stats.Batches++

	s.logger.Info("indexed sections", "attempted", len(batch), "succeeded", succeeded)
	return nil
}

// RemoveSections deletes the given documents from the index by key.
func (s *Service) RemoveSections(ctx context.Context, sections []models.Document) (int, error) {
	s.logger.Info("removing sections from search index", "sections", len(sections))

	removed := 0
	for _, section := range sections {
		if err := s.indexer.Delete(ctx, section.ID); err != nil {
			return removed, fmt.Errorf("failed to remove document '%s': %w", section.ID, err)
		}
		removed++
	}
	return removed, nil
}

// PurgeAll deletes every document in the index: match-all query for a page
// of keys, delete them, wait Interval, repeat until the total count reaches
// zero. MaxIterations of 0 means no cap.
func (s *Service) PurgeAll(ctx context.Context) (int, error) {
	s.logger.Info("removing all documents from search index")

	removed := 0
	for iteration := 0; ; iteration++ {
		if s.cfg.MaxIterations > 0 && iteration >= s.cfg.MaxIterations {
			return removed, fmt.Errorf("search index still has documents after %d purge iterations", s.cfg.MaxIterations)
		}

		ids, total, err := s.indexer.SearchIDs(ctx, s.cfg.PageSize)
		if err != nil {
			return removed, fmt.Errorf("failed to search index: %w", err)
		}
		if total == 0 {
			return removed, nil
		}
		if len(ids) == 0 {
			return removed, fmt.Errorf("search reported %d documents but returned none", total)
		}

		for _, id := range ids {
			if err := s.indexer.Delete(ctx, id); err != nil {
				return removed, fmt.Errorf("failed to delete document '%s': %w", id, err)
			}
			removed++
		}
		s.logger.Info("removed sections from index", "removed", len(ids), "remaining", total-len(ids))

		// It can take a few seconds for search results to reflect the
		// deletions, so wait a bit before counting again.
		if err := s.wait(ctx); err != nil {
			return removed, err
		}
	}
}

func (s *Service) wait(ctx context.Context) error {
	if s.cfg.Interval <= 0 {
		return nil
	}
	timer := time.NewTimer(s.cfg.Interval)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
