package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const EstimateRecordStatusCreated = "created"

// EstimateRecord is the append-only summary kept for every produced estimate.
type EstimateRecord struct {
	EstimateID   string          `json:"estimate_id"`
	EventType    EventType       `json:"event_type"`
	GuestCount   int             `json:"guest_count"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	CostPerGuest decimal.Decimal `json:"cost_per_guest"`
	Emergency    bool            `json:"emergency"`
	Status       string          `json:"status"`
	Timestamp    time.Time       `json:"timestamp"`
}

func NewEstimateRecord(e Estimate) EstimateRecord {
	return EstimateRecord{
		EstimateID:   e.ID,
		EventType:    e.EventType,
		GuestCount:   e.GuestCount,
		TotalCost:    e.TotalCost,
		CostPerGuest: e.CostPerGuest,
		Emergency:    e.Emergency,
		Status:       EstimateRecordStatusCreated,
		Timestamp:    e.CreatedAt,
	}
}

type EstimateRecordStats struct {
	TotalEstimates int             `json:"total_estimates"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	AverageGuests  float64         `json:"average_guests"`
}
