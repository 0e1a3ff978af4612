package mongo

import (
	"testing"
	"time"

	"github.com/konigunited/restdelbot/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateRecordDocumentRoundTrip(t *testing.T) {
	rec := &domain.EstimateRecord{
		EstimateID:   "0195a1b2-c3d4-7e5f-8a9b-0c1d2e3f4a5b",
		EventType:    domain.EventCorporate,
		GuestCount:   50,
		TotalCost:    decimal.RequireFromString("150150.55"),
		CostPerGuest: decimal.RequireFromString("3003.01"),
		Status:       domain.EstimateRecordStatusCreated,
		Timestamp:    time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	doc, err := toDocument(rec)
	require.NoError(t, err)
	assert.False(t, doc.ID.IsZero())

	back := fromDocument(doc)
	assert.Equal(t, rec.EstimateID, back.EstimateID)
	assert.Equal(t, rec.EventType, back.EventType)
	assert.True(t, rec.TotalCost.Equal(back.TotalCost))
	assert.True(t, rec.CostPerGuest.Equal(back.CostPerGuest))
	assert.Equal(t, rec.Timestamp, back.Timestamp)
}

func TestToDocumentRequiresEstimateID(t *testing.T) {
	_, err := toDocument(&domain.EstimateRecord{})
	assert.Error(t, err)
}
