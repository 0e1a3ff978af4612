// Package selector proposes catalog entries for an event under category,
// budget and position-count constraints.
package selector

import (
	"math"
	"sort"

	"github.com/konigunited/restdelbot/internal/catalog"
	"github.com/konigunited/restdelbot/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type SnapshotReader interface {
	Snapshot() *catalog.Snapshot
}

type Selector struct {
	catalog SnapshotReader
	logger  *zap.SugaredLogger
}

func New(store SnapshotReader, logger *zap.SugaredLogger) *Selector {
	return &Selector{catalog: store, logger: logger}
}

// Select is deterministic for a given snapshot. An empty result means nothing is
// selectable and is not an error.
func (s *Selector) Select(eventType domain.EventType, guestCount int, budgetPerGuest decimal.NullDecimal) []domain.SelectedItem {
	return s.SelectFrom(s.catalog.Snapshot(), eventType, guestCount, budgetPerGuest)
}

func (s *Selector) SelectFrom(snap *catalog.Snapshot, eventType domain.EventType, guestCount int, budgetPerGuest decimal.NullDecimal) []domain.SelectedItem {
	categories := snap.Categories()
	if len(categories) == 0 {
		s.logger.Warnw("catalog has no categories, nothing to select", "event_type", eventType)
		return nil
	}

	target := PositionCount(RulesFor(eventType), guestCount)
	quantity := max(1, guestCount/10)

	items := selectByCategory(snap, categories, target, quantity, budgetPerGuest)
	if len(items) > 0 {
		return items
	}

	s.logger.Warnw("no entries passed the category pass, taking catalog head",
		"event_type", eventType,
		"guest_count", guestCount,
		"positions", target,
	)

	return catalogHead(snap, target, quantity)
}

// PositionCount is round(guests × rate) clamped to the format's bounds.
func PositionCount(r Rules, guestCount int) int {
	n := int(math.Round(float64(guestCount) * r.PositionsPerHead))
	return min(max(n, r.MinPositions), r.MaxPositions)
}

// Allotments spreads target evenly over n categories; the remainder goes one each to the first ones.
func Allotments(target, n int) []int {
	if n <= 0 {
		return nil
	}

	out := make([]int, n)
	base, rem := target/n, target%n
	for i := range out {
		out[i] = base
		if i < rem {
			out[i]++
		}
	}
	return out
}

func selectByCategory(snap *catalog.Snapshot, categories []string, target, quantity int, budgetPerGuest decimal.NullDecimal) []domain.SelectedItem {
	var ceiling decimal.NullDecimal
	if budgetPerGuest.Valid {
		ceiling = decimal.NewNullDecimal(budgetPerGuest.Decimal.Mul(decimal.NewFromInt(2)))
	}

	allot := Allotments(target, len(categories))

	var items []domain.SelectedItem
	for i, category := range categories {
		if allot[i] == 0 {
			continue
		}

		var candidates []domain.CatalogEntry
		for _, e := range snap.Entries(category) {
			if ceiling.Valid && decimal.NewFromInt(int64(e.UnitPrice)).GreaterThan(ceiling.Decimal) {
				continue
			}
			candidates = append(candidates, e)
		}

		sort.SliceStable(candidates, func(a, b int) bool {
			return candidates[a].UnitPrice < candidates[b].UnitPrice
		})

		for _, e := range candidates[:min(allot[i], len(candidates))] {
			items = append(items, newSelectedItem(e, quantity))
		}
	}

	return items
}

func catalogHead(snap *catalog.Snapshot, target, quantity int) []domain.SelectedItem {
	all := snap.All()

	items := make([]domain.SelectedItem, 0, min(target, len(all)))
	for _, e := range all[:min(target, len(all))] {
		items = append(items, newSelectedItem(e, quantity))
	}
	return items
}

func newSelectedItem(e domain.CatalogEntry, quantity int) domain.SelectedItem {
	return domain.SelectedItem{
		CatalogEntry:     e,
		Quantity:         quantity,
		TotalWeightGrams: quantity * e.UnitWeightGrams,
	}
}
