package catalog

import "github.com/konigunited/restdelbot/internal/domain"

// FallbackRecords is the built-in catalog installed when a source yields nothing usable.
func FallbackRecords() []domain.CategoryRecords {
	return []domain.CategoryRecords{
		{Category: "Банкетные блюда", Records: []domain.RawRecord{{
			ID: 1001, Code: "B001", Name: "Говяжий бок на подушке из картофельно-тыквенного пюре",
			Description: "Томлёная говядина с пюре", Price: 1150, WeightGrams: 250, Unit: "шт",
		}}},
		{Category: "Канапе", Records: []domain.RawRecord{{
			ID: 1002, Code: "K001", Name: "Канапе с лососем и сливочным сыром",
			Description: "Слабосолёный лосось, сливочный сыр", Price: 180, WeightGrams: 30, Unit: "шт",
		}}},
		{Category: "Салаты", Records: []domain.RawRecord{{
			ID: 1003, Code: "S001", Name: "Салат Цезарь с курицей",
			Description: "Романо, курица, пармезан, соус цезарь", Price: 450, WeightGrams: 200, Unit: "порция",
		}}},
		{Category: "Горячие закуски", Records: []domain.RawRecord{{
			ID: 1004, Code: "H001", Name: "Мини-шашлычок из курицы",
			Description: "Куриное бедро на шпажке", Price: 180, WeightGrams: 50, Unit: "шт",
		}}},
		{Category: "Десерты", Records: []domain.RawRecord{{
			ID: 1005, Code: "D001", Name: "Мини-чизкейк",
			Description: "Нью-Йорк чизкейк", Price: 180, WeightGrams: 80, Unit: "шт",
		}}},
	}
}
