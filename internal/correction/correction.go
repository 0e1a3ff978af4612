// Package correction applies follow-up adjustment commands to the current estimate.
//
// Corrections are narrative: the estimate is copied and annotated with what the
// manager will change, but quantities and prices are not recomputed.
package correction

import (
	"github.com/konigunited/restdelbot/internal/domain"
	"github.com/konigunited/restdelbot/internal/intent"
)

var explanations = map[domain.CorrectionKind]string{
	domain.CorrectionReduceMeat:    "Уменьшил количество мясных блюд",
	domain.CorrectionAddVegetables: "Добавил больше овощных блюд",
	domain.CorrectionCheaper:       "Заменил на бюджетные варианты",
	domain.CorrectionPremium:       "Обновил до премиум позиций",
}

func Explanation(kind domain.CorrectionKind) string {
	return explanations[kind]
}

// Apply returns a copy of current annotated for the command in text. The second
// result is false when text is not a recognized correction.
func Apply(current domain.Estimate, text string) (domain.Estimate, domain.Correction, bool) {
	c, ok := intent.MatchCorrection(text)
	if !ok {
		return current, domain.Correction{}, false
	}

	return ApplyKind(current, c.Kind), c, true
}

func ApplyKind(current domain.Estimate, kind domain.CorrectionKind) domain.Estimate {
	updated := current.Clone()
	updated.Explanation = Explanation(kind)
	return updated
}
