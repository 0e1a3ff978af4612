package selector

import (
	"testing"

	"github.com/konigunited/restdelbot/internal/catalog"
	"github.com/konigunited/restdelbot/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixedSnapshot struct{ snap *catalog.Snapshot }

func (f fixedSnapshot) Snapshot() *catalog.Snapshot { return f.snap }

func testSnapshot() *catalog.Snapshot {
	rec := func(code, name string, price, weight int) domain.RawRecord {
		return domain.RawRecord{Code: code, Name: name, Price: price, WeightGrams: weight}
	}

	return catalog.NewSnapshot([]domain.CategoryRecords{
		{Category: "Канапе", Records: []domain.RawRecord{
			rec("K001", "Канапе с лососем", 180, 30),
			rec("K002", "Канапе с ростбифом", 200, 35),
			rec("K003", "Канапе с сыром", 150, 25),
			rec("K004", "Канапе с креветкой", 220, 35),
			rec("K005", "Канапе овощное", 120, 30),
		}},
		{Category: "Салаты", Records: []domain.RawRecord{
			rec("S001", "Цезарь", 450, 200),
			rec("S002", "Греческий", 380, 180),
			rec("S003", "С креветками", 520, 190),
		}},
		{Category: "Десерты", Records: []domain.RawRecord{
			rec("D001", "Мини-чизкейк", 180, 80),
			rec("D002", "Макаронс", 120, 20),
			rec("D003", "Профитроли", 150, 60),
		}},
	})
}

func newTestSelector(snap *catalog.Snapshot) *Selector {
	return New(fixedSnapshot{snap: snap}, zap.NewNop().Sugar())
}

func codes(items []domain.SelectedItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Code)
	}
	return out
}

func TestPositionCount(t *testing.T) {
	assert.Equal(t, 10, PositionCount(RulesFor(domain.EventReception), 50))
	assert.Equal(t, 4, PositionCount(RulesFor(domain.EventCoffeeBreak), 10))
	assert.Equal(t, 20, PositionCount(RulesFor(domain.EventBanquet), 200))
	assert.Equal(t, 10, PositionCount(RulesFor(domain.EventCorporate), 0))
	assert.Equal(t, RulesFor(domain.EventReception), RulesFor(domain.EventUnset))
}

func TestAllotments(t *testing.T) {
	assert.Equal(t, []int{4, 3, 3}, Allotments(10, 3))
	assert.Equal(t, []int{1, 1, 0, 0, 0}, Allotments(2, 5))
	assert.Nil(t, Allotments(5, 0))
}

func TestSelect_DistributesAcrossLoadedCategories(t *testing.T) {
	s := newTestSelector(testSnapshot())

	// coffee-break for 20 guests: 4 positions over 3 categories -> 2, 1, 1
	items := s.Select(domain.EventCoffeeBreak, 20, decimal.NullDecimal{})

	assert.Equal(t, []string{"K005", "K003", "S002", "D002"}, codes(items))
	for _, it := range items {
		assert.Equal(t, 2, it.Quantity)
		assert.Equal(t, 2*it.UnitWeightGrams, it.TotalWeightGrams)
	}
}

func TestSelect_BudgetCeiling(t *testing.T) {
	s := newTestSelector(testSnapshot())

	// ceiling is 2 × 100 = 200, so every salad is filtered out
	items := s.Select(domain.EventCoffeeBreak, 20, decimal.NewNullDecimal(decimal.NewFromInt(100)))

	assert.Equal(t, []string{"K005", "K003", "D002"}, codes(items))
	for _, it := range items {
		assert.LessOrEqual(t, it.UnitPrice, 200)
	}
}

func TestSelect_ZeroSelectionFallsBackToCatalogHead(t *testing.T) {
	s := newTestSelector(testSnapshot())

	items := s.Select(domain.EventCoffeeBreak, 5, decimal.NewNullDecimal(decimal.NewFromInt(10)))

	require.Len(t, items, 4)
	assert.Equal(t, []string{"K001", "K002", "K003", "K004"}, codes(items))
	assert.Equal(t, 1, items[0].Quantity, "quantity never drops below one")
}

func TestSelect_EmptyCatalog(t *testing.T) {
	s := newTestSelector(catalog.NewSnapshot(nil))

	assert.Empty(t, s.Select(domain.EventBanquet, 30, decimal.NullDecimal{}))
}

func TestSelect_Idempotent(t *testing.T) {
	s := newTestSelector(testSnapshot())
	budget := decimal.NewNullDecimal(decimal.NewFromInt(300))

	first := s.Select(domain.EventReception, 60, budget)
	second := s.Select(domain.EventReception, 60, budget)

	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestSelect_StableOrderForEqualPrices(t *testing.T) {
	snap := catalog.NewSnapshot([]domain.CategoryRecords{
		{Category: "Десерты", Records: []domain.RawRecord{
			{Code: "D1", Name: "a", Price: 100, WeightGrams: 10},
			{Code: "D2", Name: "b", Price: 100, WeightGrams: 10},
			{Code: "D3", Name: "c", Price: 90, WeightGrams: 10},
		}},
	})

	items := newTestSelector(snap).Select(domain.EventCoffeeBreak, 1, decimal.NullDecimal{})

	assert.Equal(t, []string{"D3", "D1", "D2"}, codes(items))
}
