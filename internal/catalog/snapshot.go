package catalog

import (
	"strings"
	"time"

	"github.com/konigunited/restdelbot/internal/domain"
)

// Snapshot is an immutable, fully built catalog. Readers keep using the snapshot
// they obtained even if a reload publishes a newer one.
type Snapshot struct {
	categories []string
	byCategory map[string][]domain.CatalogEntry
	entries    []domain.CatalogEntry
	byID       map[int]int
	byCode     map[string]int
	fallback   bool
	loadedAt   time.Time
}

// NewSnapshot builds a snapshot from groups as-is, without the fallback substitution Store applies.
func NewSnapshot(groups []domain.CategoryRecords) *Snapshot {
	return buildSnapshot(groups, time.Now())
}

func buildSnapshot(groups []domain.CategoryRecords, loadedAt time.Time) *Snapshot {
	s := &Snapshot{
		byCategory: make(map[string][]domain.CatalogEntry),
		byID:       make(map[int]int),
		byCode:     make(map[string]int),
		loadedAt:   loadedAt,
	}

	for _, g := range groups {
		category := strings.TrimSpace(g.Category)
		if category == "" {
			continue
		}

		for _, rec := range g.Records {
			entry, ok := newEntry(category, rec)
			if !ok {
				continue
			}

			if _, seen := s.byCategory[category]; !seen {
				s.categories = append(s.categories, category)
			}
			s.byCategory[category] = append(s.byCategory[category], entry)

			idx := len(s.entries)
			s.entries = append(s.entries, entry)
			if _, dup := s.byID[entry.ID]; !dup {
				s.byID[entry.ID] = idx
			}
			if entry.Code != "" {
				if _, dup := s.byCode[strings.ToLower(entry.Code)]; !dup {
					s.byCode[strings.ToLower(entry.Code)] = idx
				}
			}
		}
	}

	return s
}

func newEntry(category string, rec domain.RawRecord) (domain.CatalogEntry, bool) {
	name := strings.TrimSpace(rec.Name)
	if name == "" {
		return domain.CatalogEntry{}, false
	}

	code := strings.TrimSpace(rec.Code)
	id := rec.ID
	if id == 0 {
		id = EntryID(code, rec.Line)
	}

	unit := strings.TrimSpace(rec.Unit)
	if unit == "" {
		unit = "шт"
	}

	return domain.CatalogEntry{
		ID:              id,
		Code:            code,
		Name:            name,
		Description:     strings.TrimSpace(rec.Description),
		Category:        category,
		UnitPrice:       max(1, rec.Price),
		UnitWeightGrams: max(1, rec.WeightGrams),
		Unit:            unit,
	}, true
}

func (s *Snapshot) empty() bool {
	return len(s.entries) == 0
}

// Categories returns category names in load order.
func (s *Snapshot) Categories() []string {
	return append([]string(nil), s.categories...)
}

func (s *Snapshot) Entries(category string) []domain.CatalogEntry {
	return append([]domain.CatalogEntry(nil), s.byCategory[category]...)
}

func (s *Snapshot) ByCategory() map[string][]domain.CatalogEntry {
	out := make(map[string][]domain.CatalogEntry, len(s.byCategory))
	for c, entries := range s.byCategory {
		out[c] = append([]domain.CatalogEntry(nil), entries...)
	}
	return out
}

// All returns every entry in insertion order.
func (s *Snapshot) All() []domain.CatalogEntry {
	return append([]domain.CatalogEntry(nil), s.entries...)
}

// Search matches query case-insensitively against name, description and code.
func (s *Snapshot) Search(query string) []domain.CatalogEntry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var out []domain.CatalogEntry
	for _, e := range s.entries {
		if strings.Contains(strings.ToLower(e.Name), q) ||
			strings.Contains(strings.ToLower(e.Description), q) ||
			strings.Contains(strings.ToLower(e.Code), q) {
			out = append(out, e)
		}
	}
	return out
}

func (s *Snapshot) ByID(id int) (domain.CatalogEntry, error) {
	idx, ok := s.byID[id]
	if !ok {
		return domain.CatalogEntry{}, domain.ErrNotFound
	}
	return s.entries[idx], nil
}

func (s *Snapshot) ByCode(code string) (domain.CatalogEntry, error) {
	idx, ok := s.byCode[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return domain.CatalogEntry{}, domain.ErrNotFound
	}
	return s.entries[idx], nil
}

func (s *Snapshot) Stats() domain.CatalogStats {
	per := make(map[string]int, len(s.byCategory))
	for c, entries := range s.byCategory {
		per[c] = len(entries)
	}

	return domain.CatalogStats{
		TotalItems:       len(s.entries),
		CategoryCount:    len(s.categories),
		PerCategoryCount: per,
		Fallback:         s.fallback,
		LoadedAt:         s.loadedAt,
	}
}
