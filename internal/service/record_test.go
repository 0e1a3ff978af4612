package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/konigunited/restdelbot/internal/domain"
	"github.com/konigunited/restdelbot/internal/metrics"
	"github.com/konigunited/restdelbot/internal/queue"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func sampleEstimate(id string, guests int, total int64) domain.Estimate {
	return domain.Estimate{
		ID:           id,
		EventType:    domain.EventBanquet,
		GuestCount:   guests,
		TotalCost:    decimal.NewFromInt(total),
		CostPerGuest: decimal.NewFromInt(total).DivRound(decimal.NewFromInt(int64(guests)), 2),
		CreatedAt:    time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRecordService_PublishAndPersist(t *testing.T) {
	repo := newFakeRecordRepo()
	broker := queue.NewMemoryBroker(zap.NewNop().Sugar())
	svc := NewRecordService(repo, broker, nil, zap.NewNop().Sugar())
	ctx := context.Background()

	require.NoError(t, svc.Publish(ctx, sampleEstimate("e1", 30, 90000), domain.EventEstimateCreated))
	require.Equal(t, 1, broker.Pending(queue.QueueEstimateRecords))

	require.NoError(t, broker.Subscribe(ctx, queue.QueueEstimateRecords, func(ctx context.Context, msg []byte) error {
		var m domain.EstimateRecordMessage
		if err := json.Unmarshal(msg, &m); err != nil {
			return err
		}
		return svc.Persist(ctx, m)
	}))
	waitCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	require.NoError(t, broker.Wait(waitCtx))

	records, err := svc.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "e1", records[0].EstimateID)
	assert.Equal(t, domain.EstimateRecordStatusCreated, records[0].Status)
	assert.True(t, records[0].TotalCost.Equal(decimal.NewFromInt(90000)))
}

func TestRecordService_PersistIsIdempotent(t *testing.T) {
	repo := newFakeRecordRepo()
	svc := NewRecordService(repo, queue.NewMemoryBroker(zap.NewNop().Sugar()), nil, zap.NewNop().Sugar())
	ctx := context.Background()

	msg := domain.EstimateRecordMessage{
		EventType: domain.EventEstimateCreated,
		Record:    domain.NewEstimateRecord(sampleEstimate("e1", 30, 90000)),
	}
	require.NoError(t, svc.Persist(ctx, msg))
	require.NoError(t, svc.Persist(ctx, msg))
	require.NoError(t, svc.Persist(ctx, domain.EstimateRecordMessage{
		Record: domain.NewEstimateRecord(sampleEstimate("e2", 50, 150000)),
	}))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalEstimates)
	assert.True(t, stats.TotalRevenue.Equal(decimal.NewFromInt(240000)))
	assert.InDelta(t, 40.0, stats.AverageGuests, 0.001)
}

func TestRecordService_PersistRejectsMissingID(t *testing.T) {
	svc := NewRecordService(newFakeRecordRepo(), queue.NewMemoryBroker(zap.NewNop().Sugar()), nil, zap.NewNop().Sugar())

	err := svc.Persist(context.Background(), domain.EstimateRecordMessage{})

	assert.Error(t, err)
}

func TestRecordService_PersistWrapsStoreError(t *testing.T) {
	repo := newFakeRecordRepo()
	repo.err = errors.New("mongo down")
	m := metrics.New()
	svc := NewRecordService(repo, queue.NewMemoryBroker(zap.NewNop().Sugar()), m, zap.NewNop().Sugar())

	err := svc.Persist(context.Background(), domain.EstimateRecordMessage{
		Record: domain.NewEstimateRecord(sampleEstimate("e1", 30, 90000)),
	})

	assert.ErrorContains(t, err, "failed to save estimate record")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Fallbacks.WithLabelValues(metrics.FallbackRecordStore)))
}

func TestRecordService_PublishOnClosedBroker(t *testing.T) {
	broker := queue.NewMemoryBroker(zap.NewNop().Sugar())
	require.NoError(t, broker.Close())
	svc := NewRecordService(newFakeRecordRepo(), broker, nil, zap.NewNop().Sugar())

	err := svc.Publish(context.Background(), sampleEstimate("e1", 30, 90000), domain.EventEstimateCreated)

	assert.ErrorIs(t, err, queue.ErrBrokerClosed)
}
