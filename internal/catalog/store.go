package catalog

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/konigunited/restdelbot/internal/domain"
	"go.uber.org/zap"
)

// Source produces raw catalog records grouped by category.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]domain.CategoryRecords, error)
}

// Store publishes whole catalog snapshots. A load builds the new snapshot off to
// the side and swaps it in, so readers never observe a partial catalog.
type Store struct {
	current atomic.Pointer[Snapshot]
	logger  *zap.SugaredLogger
	now     func() time.Time
}

func NewStore(logger *zap.SugaredLogger) *Store {
	s := &Store{logger: logger, now: time.Now}
	s.Load(nil)
	return s
}

// Load replaces the catalog. Zero usable records install the fallback catalog instead.
func (s *Store) Load(groups []domain.CategoryRecords) domain.CatalogStats {
	snap := buildSnapshot(groups, s.now())
	if snap.empty() {
		s.logger.Warnw("catalog source yielded no usable records, installing fallback catalog")
		snap = buildSnapshot(FallbackRecords(), s.now())
		snap.fallback = true
	}

	s.current.Store(snap)

	stats := snap.Stats()
	s.logger.Infow("catalog loaded",
		"items", stats.TotalItems,
		"categories", stats.CategoryCount,
		"fallback", stats.Fallback,
	)

	return stats
}

// Reload reads src and loads its records. When src cannot be read, a previously
// loaded catalog stays published; otherwise the fallback catalog is installed.
// Both cases are reported as *domain.IngestionError.
func (s *Store) Reload(ctx context.Context, src Source) (domain.CatalogStats, error) {
	groups, err := src.Load(ctx)
	if err != nil {
		s.logger.Warnw("failed to read catalog source", "source", src.Name(), "error", err)

		stats := s.Stats()
		if !stats.Fallback {
			return stats, &domain.IngestionError{Source: src.Name(), Err: err}
		}
		return s.Load(nil), &domain.IngestionError{Source: src.Name(), Err: err}
	}

	stats := s.Load(groups)
	if stats.Fallback {
		return stats, &domain.IngestionError{
			Source: src.Name(),
			Err:    fmt.Errorf("failed to load catalog: %w", domain.ErrEmptyCatalog),
		}
	}

	return stats, nil
}

func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

func (s *Store) Search(query string) []domain.CatalogEntry {
	return s.Snapshot().Search(query)
}

func (s *Store) ByID(id int) (domain.CatalogEntry, error) {
	return s.Snapshot().ByID(id)
}

func (s *Store) ByCode(code string) (domain.CatalogEntry, error) {
	return s.Snapshot().ByCode(code)
}

func (s *Store) Stats() domain.CatalogStats {
	return s.Snapshot().Stats()
}
