package intent

import (
	"strings"

	"github.com/konigunited/restdelbot/internal/domain"
)

// Declaration order breaks ties: the earliest intent with the highest score wins.
var intentTable = []struct {
	intent   domain.Intent
	keywords []string
}{
	{domain.IntentNewEstimate, []string{"смет", "расчет", "рассчит", "посчит", "сколько стоит", "человек", "персон", "гостей", "участник"}},
	{domain.IntentMenuInfo, []string{"меню", "блюда", "что входит", "состав", "ассортимент", "что есть", "варианты", "выбор"}},
	{domain.IntentPricing, []string{"цен", "стоимост", "стоит", "прайс", "тариф", "сколько", "бюджет", "дорого", "дешево"}},
	{domain.IntentServiceInfo, []string{"услуг", "сервис", "обслуживан", "официант", "повар", "доставк", "оборудован", "посуд"}},
	{domain.IntentOrderStatus, []string{"статус", "заказ", "где мой", "когда приедет", "отслеживан", "готовность"}},
}

type Score struct {
	Intent domain.Intent
	Hits   int
}

// Scores counts, per intent, how many of its keywords occur in text.
func Scores(text string) []Score {
	lower := strings.ToLower(text)

	scores := make([]Score, 0, len(intentTable))
	for _, row := range intentTable {
		hits := 0
		for _, kw := range row.keywords {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		scores = append(scores, Score{Intent: row.intent, Hits: hits})
	}
	return scores
}

// Classify returns the highest scoring intent, or IntentGeneral when nothing matches.
func Classify(text string) domain.Intent {
	best := Score{Intent: domain.IntentGeneral}
	for _, s := range Scores(text) {
		if s.Hits > best.Hits {
			best = s
		}
	}
	return best.Intent
}
