package extract

import (
	"testing"

	"github.com/konigunited/restdelbot/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestExtract_CorporateWithBudget(t *testing.T) {
	p := Extract("Корпоратив 50 человек бюджет 150к")

	assert.Equal(t, domain.EventCorporate, p.EventType)
	assert.Equal(t, 50, p.GuestCount)
	assert.True(t, p.BudgetTotal.Valid)
	assert.True(t, decimal.NewFromInt(150000).Equal(p.BudgetTotal.Decimal))
	assert.True(t, p.BudgetPerGuest.Valid)
	assert.True(t, decimal.NewFromInt(3000).Equal(p.BudgetPerGuest.Decimal))
}

func TestExtract_BanquetWithoutBudget(t *testing.T) {
	p := Extract("Банкет 30 человек")

	assert.Equal(t, domain.EventBanquet, p.EventType)
	assert.Equal(t, 30, p.GuestCount)
	assert.False(t, p.BudgetTotal.Valid)
	assert.False(t, p.BudgetPerGuest.Valid)
}

func TestExtract_GuestCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"фуршет на 40 персон", 40},
		{"нас будет 25 гостей", 25},
		{"гостей: 70", 70},
		{"12 чел.", 12},
		{"первые 10 человек, потом ещё 20 человек", 10},
		{"просто фуршет", 0},
		{"0 человек", 0},
		{"банкет 100000 человек", 100000},
		{"банкет 100001 человек", 0},
		{"банкет 9000000000000000000 человек", 0},
		{"банкет 99999999999999999999999 человек", 0},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.text).GuestCount)
		})
	}
}

func TestExtract_EventTypePrecedence(t *testing.T) {
	tests := []struct {
		text string
		want domain.EventType
	}{
		{"кофе-брейк и фуршет", domain.EventCoffeeBreak},
		{"банкет после фуршета", domain.EventReception},
		{"корпоратив с банкетной рассадкой", domain.EventBanquet},
		{"выездное мероприятие для офиса", domain.EventCorporate},
		{"день рождения", domain.EventUnset},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.text).EventType)
		})
	}
}

func TestExtract_Budget(t *testing.T) {
	tests := []struct {
		text  string
		valid bool
		want  int64
	}{
		{"бюджет 150000", true, 150000},
		{"уложиться в 200 тыс рублей", true, 200000},
		{"до 80к", true, 80000},
		{"999к", true, 999000},
		{"1500 тыс", true, 1500},
		{"бюджет не ограничен", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			p := Extract(tt.text)
			assert.Equal(t, tt.valid, p.BudgetTotal.Valid)
			if tt.valid {
				assert.True(t, decimal.NewFromInt(tt.want).Equal(p.BudgetTotal.Decimal), p.BudgetTotal.Decimal.String())
			}
		})
	}
}

func TestExtract_DateAndSpecialRequests(t *testing.T) {
	p := Extract("Банкет 20 человек 15.03.2025, нужно вегетарианское и детское меню")

	assert.Equal(t, "15.03.2025", p.Date)
	assert.Equal(t, []string{"вегетарианское меню", "детское меню"}, p.SpecialRequests)

	assert.Equal(t, "12 марта", Extract("фуршет 12 марта").Date)
	assert.Equal(t, "через 3 дн", Extract("кофе-брейк через 3 дня").Date)
	assert.Empty(t, Extract("фуршет").Date)
}

func TestGuessEventType(t *testing.T) {
	perGuest := func(v int64) decimal.NullDecimal { return decimal.NewNullDecimal(decimal.NewFromInt(v)) }

	assert.Equal(t, domain.EventCoffeeBreak, GuessEventType(domain.EventParameters{GuestCount: 20, BudgetPerGuest: perGuest(1500)}))
	assert.Equal(t, domain.EventBanquet, GuessEventType(domain.EventParameters{GuestCount: 20, BudgetPerGuest: perGuest(6000)}))
	assert.Equal(t, domain.EventCorporate, GuessEventType(domain.EventParameters{GuestCount: 80}))
	assert.Equal(t, domain.EventReception, GuessEventType(domain.EventParameters{GuestCount: 40}))
	assert.Equal(t, domain.EventReception, GuessEventType(domain.EventParameters{GuestCount: 20}))
}
