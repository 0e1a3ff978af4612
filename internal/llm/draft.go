package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

type DraftItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Draft is the estimate shape the model is asked to return.
type Draft struct {
	EventType     string      `json:"event_type"`
	GuestCount    int         `json:"guest_count"`
	Items         []DraftItem `json:"items"`
	TotalCost     float64     `json:"total_cost"`
	StaffRequired int         `json:"staff_required"`
	Explanation   string      `json:"explanation"`

	// Fallback marks the documented default returned in place of a usable answer.
	Fallback bool `json:"-"`
}

// DefaultDraft is returned whenever the model cannot be reached or its answer is unusable.
func DefaultDraft() Draft {
	return Draft{
		EventType:  "Банкетное мероприятие",
		GuestCount: 30,
		Items: []DraftItem{
			{Name: "Канапе ассорти", Quantity: 90, Price: 180},
			{Name: "Салат Цезарь", Quantity: 30, Price: 450},
			{Name: "Горячее блюдо", Quantity: 30, Price: 1150},
		},
		TotalCost:     63000,
		StaffRequired: 3,
		Explanation:   "Стандартная смета: ответ сервиса недоступен",
		Fallback:      true,
	}
}

var errNoJSON = errors.New("no JSON object in response")

// extractJSON returns the text between the first "{" and the last "}".
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return "", errNoJSON
	}
	return s[start : end+1], nil
}

func ParseDraft(text string) (Draft, error) {
	raw, err := extractJSON(text)
	if err != nil {
		return Draft{}, err
	}

	var d Draft
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return Draft{}, fmt.Errorf("failed to decode draft: %w", err)
	}

	if d.GuestCount < 0 || d.TotalCost < 0 {
		return Draft{}, errors.New("draft has negative figures")
	}

	return d, nil
}

// RequestDraft asks model for an estimate draft. On any failure it returns
// DefaultDraft together with the cause, so callers always get the documented shape.
func RequestDraft(ctx context.Context, model llms.Model, prompt string) (Draft, error) {
	text, err := Complete(ctx, model, prompt)
	if err != nil {
		return DefaultDraft(), err
	}

	d, err := ParseDraft(text)
	if err != nil {
		return DefaultDraft(), err
	}

	return d, nil
}
