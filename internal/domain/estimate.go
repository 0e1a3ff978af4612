package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SelectedItem is a catalog entry chosen for an event. Quantity is always at least 1.
type SelectedItem struct {
	CatalogEntry
	Quantity         int `json:"quantity"`
	TotalWeightGrams int `json:"total_weight_grams"`
}

type LineItem struct {
	Name                string          `json:"name"`
	Unit                string          `json:"unit"`
	Quantity            int             `json:"quantity"`
	UnitPrice           decimal.Decimal `json:"unit_price"`
	LineTotal           decimal.Decimal `json:"line_total"`
	WeightPerGuestGrams float64         `json:"weight_per_guest_grams"`
}

// Estimate always satisfies TotalCost = MenuCost + ServiceCost.
// LineTotal equals Quantity × UnitPrice × CorrectionFactor.
type Estimate struct {
	ID                  string          `json:"id"`
	EventType           EventType       `json:"event_type"`
	GuestCount          int             `json:"guest_count"`
	LineItems           []LineItem      `json:"line_items"`
	CorrectionFactor    decimal.Decimal `json:"correction_factor"`
	MenuCost            decimal.Decimal `json:"menu_cost"`
	ServiceCost         decimal.Decimal `json:"service_cost"`
	TotalCost           decimal.Decimal `json:"total_cost"`
	CostPerGuest        decimal.Decimal `json:"cost_per_guest"`
	WeightPerGuestGrams float64         `json:"weight_per_guest_grams"`
	StaffRequired       int             `json:"staff_required"`
	Warnings            []string        `json:"warnings,omitempty"`
	Explanation         string          `json:"explanation,omitempty"`
	Emergency           bool            `json:"emergency"`
	CreatedAt           time.Time       `json:"created_at"`
}

// Clone returns a copy that shares no slices with e.
func (e Estimate) Clone() Estimate {
	c := e
	c.LineItems = append([]LineItem(nil), e.LineItems...)
	c.Warnings = append([]string(nil), e.Warnings...)
	return c
}
