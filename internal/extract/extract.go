// Package extract turns a free-text event request into structured parameters
// using ordered keyword and pattern tables.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/konigunited/restdelbot/internal/domain"
	"github.com/shopspring/decimal"
)

var guestPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*(?:человек|персон|гостей|чел\.?)`),
	regexp.MustCompile(`на\s*(\d+)\s*(?:человек|персон|гостей)`),
	regexp.MustCompile(`(?:человек|персон|гостей)[:.\s]*(\d+)`),
}

// Precedence is the table order: a message naming several formats resolves to the first.
var eventTypeTable = []struct {
	eventType domain.EventType
	keywords  []string
}{
	{domain.EventCoffeeBreak, []string{"кофе", "брейк", "кофебрейк", "перерыв"}},
	{domain.EventReception, []string{"фуршет", "фуршетн", "стоячий"}},
	{domain.EventBanquet, []string{"банкет", "банкетн", "рассадк", "сидячий"}},
	{domain.EventCorporate, []string{"корпоратив", "корпоративн", "компани", "офис"}},
}

var budgetPatterns = []*regexp.Regexp{
	regexp.MustCompile(`бюджет[:\s]*(\d+)\s*(?:тыс|к|тысяч|000)`),
	regexp.MustCompile(`(\d+)\s*(?:тыс|к|тысяч)\s*(?:рублей|руб|₽)?`),
	regexp.MustCompile(`до\s*(\d+)\s*(?:тыс|к|тысяч|000)`),
	regexp.MustCompile(`(\d+)\s*000\s*(?:рублей|руб|₽)`),
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2})[./](\d{1,2})[./](\d{2,4})`),
	regexp.MustCompile(`(\d{1,2})\s*(января|февраля|марта|апреля|мая|июня|июля|августа|сентября|октября|ноября|декабря)`),
	regexp.MustCompile(`(завтра|послезавтра|через\s*\d+\s*дн)`),
	regexp.MustCompile(`(понедельник|вторник|среда|четверг|пятница|суббота|воскресенье)`),
}

var specialRequests = []struct {
	keyword string
	tag     string
}{
	{"вегетарианское", "вегетарианское меню"},
	{"постное", "постное меню"},
	{"детское", "детское меню"},
	{"халяль", "халяльное меню"},
	{"кошерное", "кошерное меню"},
	{"безглютеновое", "безглютеновое меню"},
	{"диетическое", "диетическое меню"},
}

// thousandsBoundary: a matched budget below it is read as thousands ("150к" -> 150000).
const thousandsBoundary = 1000

// Extract is deterministic and has no side effects.
func Extract(text string) domain.EventParameters {
	lower := strings.ToLower(text)

	params := domain.EventParameters{
		GuestCount: guestCount(lower),
		EventType:  EventType(lower),
		Date:       date(lower),
	}

	if budget, ok := budgetTotal(lower); ok {
		params.BudgetTotal = decimal.NewNullDecimal(budget)
	}

	for _, sr := range specialRequests {
		if strings.Contains(lower, sr.keyword) {
			params.SpecialRequests = append(params.SpecialRequests, sr.tag)
		}
	}

	return params.Derive()
}

func guestCount(lower string) int {
	for _, re := range guestPatterns {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 || n > domain.MaxGuestCount {
			return 0
		}
		return n
	}
	return 0
}

// EventType returns the first table entry with a keyword present in lower, or EventUnset.
func EventType(lower string) domain.EventType {
	for _, row := range eventTypeTable {
		for _, kw := range row.keywords {
			if strings.Contains(lower, kw) {
				return row.eventType
			}
		}
	}
	return domain.EventUnset
}

func budgetTotal(lower string) (decimal.Decimal, bool) {
	for _, re := range budgetPatterns {
		m := re.FindStringSubmatch(lower)
		if m == nil {
			continue
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return decimal.Decimal{}, false
		}
		if n < thousandsBoundary {
			n *= 1000
		}
		return decimal.NewFromInt(n), true
	}
	return decimal.Decimal{}, false
}

func date(lower string) string {
	for _, re := range datePatterns {
		if m := re.FindString(lower); m != "" {
			return m
		}
	}
	return ""
}

// Defaults used by GuessEventType when a figure is unknown.
const (
	defaultGuests         = 50
	defaultBudgetPerGuest = 3000
)

// GuessEventType picks a format from the size and per-guest budget of the event.
func GuessEventType(p domain.EventParameters) domain.EventType {
	guests := p.GuestCount
	if guests <= 0 {
		guests = defaultGuests
	}

	perGuest := decimal.NewFromInt(defaultBudgetPerGuest)
	if p.BudgetPerGuest.Valid {
		perGuest = p.BudgetPerGuest.Decimal
	}

	switch {
	case guests <= 30 && perGuest.LessThanOrEqual(decimal.NewFromInt(2000)):
		return domain.EventCoffeeBreak
	case perGuest.GreaterThanOrEqual(decimal.NewFromInt(5000)):
		return domain.EventBanquet
	case guests >= 50:
		return domain.EventCorporate
	default:
		return domain.EventReception
	}
}
