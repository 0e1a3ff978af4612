package domain

import "github.com/shopspring/decimal"

type EventType string

const (
	EventUnset       EventType = ""
	EventCoffeeBreak EventType = "coffee-break"
	EventReception   EventType = "reception"
	EventBanquet     EventType = "banquet"
	EventCorporate   EventType = "corporate"
)

func (t EventType) Title() string {
	switch t {
	case EventCoffeeBreak:
		return "Кофе-брейк"
	case EventReception:
		return "Фуршет"
	case EventBanquet:
		return "Банкет"
	case EventCorporate:
		return "Корпоратив"
	default:
		return "Мероприятие"
	}
}

// ParseEventType accepts the canonical tags only.
func ParseEventType(s string) EventType {
	switch t := EventType(s); t {
	case EventCoffeeBreak, EventReception, EventBanquet, EventCorporate:
		return t
	default:
		return EventUnset
	}
}

// MaxGuestCount bounds a believable guest count. Larger values are treated as unset.
const MaxGuestCount = 100000

// EventParameters is produced fresh per inbound message. GuestCount zero means unset.
type EventParameters struct {
	GuestCount      int                 `json:"guest_count,omitempty"`
	EventType       EventType           `json:"event_type,omitempty"`
	BudgetTotal     decimal.NullDecimal `json:"budget_total"`
	BudgetPerGuest  decimal.NullDecimal `json:"budget_per_guest"`
	SpecialRequests []string            `json:"special_requests,omitempty"`
	Date            string              `json:"date,omitempty"`
}

func (p EventParameters) HasGuests() bool {
	return p.GuestCount > 0
}

// Merge fills the unset fields of p from prev and recomputes the per-guest budget.
func (p EventParameters) Merge(prev EventParameters) EventParameters {
	if p.GuestCount == 0 {
		p.GuestCount = prev.GuestCount
	}
	if p.EventType == EventUnset {
		p.EventType = prev.EventType
	}
	if !p.BudgetTotal.Valid {
		p.BudgetTotal = prev.BudgetTotal
	}
	if p.Date == "" {
		p.Date = prev.Date
	}
	if len(p.SpecialRequests) == 0 {
		p.SpecialRequests = prev.SpecialRequests
	}

	return p.Derive()
}

// Derive recomputes BudgetPerGuest, which is set only when both the guest count and the total are known.
func (p EventParameters) Derive() EventParameters {
	p.BudgetPerGuest = decimal.NullDecimal{}
	if p.GuestCount > 0 && p.BudgetTotal.Valid {
		p.BudgetPerGuest = decimal.NewNullDecimal(
			p.BudgetTotal.Decimal.DivRound(decimal.NewFromInt(int64(p.GuestCount)), 2),
		)
	}

	return p
}
