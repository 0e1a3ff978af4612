package selector

import "github.com/konigunited/restdelbot/internal/domain"

type CategoryShare struct {
	Category string
	Share    float64
}

// Rules are the per-format standards. IdealShares documents the intended menu
// balance; selection itself spreads positions over the categories actually loaded.
type Rules struct {
	WeightMinGrams   int
	WeightMaxGrams   int
	PositionsPerHead float64
	MinPositions     int
	MaxPositions     int
	IdealShares      []CategoryShare
}

var rulesByType = map[domain.EventType]Rules{
	domain.EventCoffeeBreak: {
		WeightMinGrams: 200, WeightMaxGrams: 300,
		PositionsPerHead: 0.15, MinPositions: 4, MaxPositions: 8,
		IdealShares: []CategoryShare{
			{"Канапе", 0.3}, {"Сэндвичи", 0.3}, {"Выпечка", 0.2}, {"Десерты", 0.2},
		},
	},
	domain.EventReception: {
		WeightMinGrams: 300, WeightMaxGrams: 500,
		PositionsPerHead: 0.2, MinPositions: 8, MaxPositions: 15,
		IdealShares: []CategoryShare{
			{"Канапе", 0.25}, {"Брускетты", 0.15}, {"Салаты", 0.2},
			{"Горячие закуски", 0.15}, {"Холодные закуски", 0.15}, {"Десерты", 0.1},
		},
	},
	domain.EventBanquet: {
		WeightMinGrams: 700, WeightMaxGrams: 1200,
		PositionsPerHead: 0.25, MinPositions: 10, MaxPositions: 20,
		IdealShares: []CategoryShare{
			{"Салаты", 0.2}, {"Холодные закуски", 0.15}, {"Горячие закуски", 0.2},
			{"Горячие блюда", 0.25}, {"Гарниры", 0.1}, {"Десерты", 0.1},
		},
	},
	domain.EventCorporate: {
		WeightMinGrams: 400, WeightMaxGrams: 700,
		PositionsPerHead: 0.22, MinPositions: 10, MaxPositions: 18,
		IdealShares: []CategoryShare{
			{"Канапе", 0.2}, {"Брускетты", 0.15}, {"Салаты", 0.15},
			{"Горячие закуски", 0.2}, {"Холодные закуски", 0.15}, {"Десерты", 0.15},
		},
	},
}

// RulesFor returns the standards for t. Unknown formats use the reception rules.
func RulesFor(t domain.EventType) Rules {
	if r, ok := rulesByType[t]; ok {
		return r
	}
	return rulesByType[domain.EventReception]
}
