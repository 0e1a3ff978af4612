package redis

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/konigunited/restdelbot/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sessions are stored as JSON; money must survive the trip without drift.
func TestSessionEncoding(t *testing.T) {
	est := domain.Estimate{
		ID:          "e1",
		EventType:   domain.EventBanquet,
		GuestCount:  30,
		MenuCost:    decimal.RequireFromString("25200.10"),
		ServiceCost: decimal.RequireFromString("10836.04"),
		TotalCost:   decimal.RequireFromString("36036.14"),
		CreatedAt:   time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	params := domain.EventParameters{EventType: domain.EventReception, BudgetTotal: decimal.NewNullDecimal(decimal.NewFromInt(90000))}
	in := domain.Session{ConversationID: "c", CurrentEstimate: &est, PendingParams: &params}

	raw, err := json.Marshal(in)
	require.NoError(t, err)

	var out domain.Session
	require.NoError(t, json.Unmarshal(raw, &out))

	require.NotNil(t, out.CurrentEstimate)
	assert.True(t, est.TotalCost.Equal(out.CurrentEstimate.TotalCost))
	assert.Equal(t, est.CreatedAt, out.CurrentEstimate.CreatedAt)
	require.NotNil(t, out.PendingParams)
	assert.True(t, out.PendingParams.BudgetTotal.Valid)
	assert.False(t, out.PendingParams.BudgetPerGuest.Valid)
	assert.Equal(t, domain.EventReception, out.PendingParams.EventType)
}

func TestNewSessionStoreDefaultTTL(t *testing.T) {
	s := NewSessionStore(nil, 0)
	assert.Equal(t, 24*time.Hour, s.ttl)
}
