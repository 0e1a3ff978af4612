package intent

import (
	"regexp"
	"strings"

	"github.com/konigunited/restdelbot/internal/domain"
)

const (
	correctionConfidence = 0.8
	// CorrectionThreshold is the minimum confidence for a correction to preempt classification.
	CorrectionThreshold = 0.4
)

var correctionPatterns = []struct {
	kind     domain.CorrectionKind
	patterns []*regexp.Regexp
}{
	{domain.CorrectionReduceMeat, []*regexp.Regexp{regexp.MustCompile(`меньше\s+мяса`), regexp.MustCompile(`убрать\s+мясо`)}},
	{domain.CorrectionAddVegetables, []*regexp.Regexp{regexp.MustCompile(`больше\s+овощей`), regexp.MustCompile(`добавить\s+овощи`)}},
	{domain.CorrectionCheaper, []*regexp.Regexp{regexp.MustCompile(`подешевле`), regexp.MustCompile(`дешевле`)}},
	{domain.CorrectionPremium, []*regexp.Regexp{regexp.MustCompile(`премиум`), regexp.MustCompile(`дороже`)}},
}

// MatchCorrection recognizes the closed set of adjustment commands.
func MatchCorrection(text string) (domain.Correction, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))

	for _, row := range correctionPatterns {
		for _, re := range row.patterns {
			if re.MatchString(lower) {
				c := domain.Correction{Kind: row.kind, Confidence: correctionConfidence}
				return c, c.Confidence > CorrectionThreshold
			}
		}
	}
	return domain.Correction{}, false
}
