package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func waitIdle(t *testing.T, b *MemoryBroker) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, b.Wait(ctx))
}

func TestMemoryBroker(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBroker(zap.NewNop().Sugar())

	require.NoError(t, b.Publish(ctx, QueueCatalogReload, []byte("early")))
	assert.Equal(t, 1, b.Pending(QueueCatalogReload))

	var (
		mu  sync.Mutex
		got []string
	)
	require.NoError(t, b.Subscribe(ctx, QueueCatalogReload, func(_ context.Context, msg []byte) error {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, string(msg))
		return nil
	}))
	require.NoError(t, b.Publish(ctx, QueueCatalogReload, []byte("late")))
	waitIdle(t, b)

	mu.Lock()
	assert.Equal(t, []string{"early", "late"}, got)
	mu.Unlock()
	assert.Zero(t, b.Pending(QueueCatalogReload))

	require.NoError(t, b.Close())
	assert.True(t, b.IsClosed())
	assert.ErrorIs(t, b.Publish(ctx, QueueCatalogReload, nil), ErrBrokerClosed)
	assert.ErrorIs(t, b.Subscribe(ctx, QueueCatalogReload, nil), ErrBrokerClosed)
	assert.NoError(t, b.Close())
}

func TestMemoryBroker_PublishDoesNotWaitForHandler(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBroker(zap.NewNop().Sugar())
	release := make(chan struct{})

	require.NoError(t, b.Subscribe(ctx, QueueEstimateRecords, func(context.Context, []byte) error {
		<-release
		return nil
	}))

	start := time.Now()
	require.NoError(t, b.Publish(ctx, QueueEstimateRecords, []byte("a")))
	require.NoError(t, b.Publish(ctx, QueueEstimateRecords, []byte("b")))
	assert.Less(t, time.Since(start), 500*time.Millisecond)

	short, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, b.Wait(short), context.DeadlineExceeded)

	close(release)
	waitIdle(t, b)
}

func TestMemoryBroker_LogsHandlerErrors(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.ErrorLevel)
	b := NewMemoryBroker(zap.New(core).Sugar())

	require.NoError(t, b.Subscribe(ctx, QueueEstimateRecords, func(context.Context, []byte) error {
		return errors.New("store unavailable")
	}))
	require.NoError(t, b.Publish(ctx, QueueEstimateRecords, []byte("x")))
	waitIdle(t, b)

	entries := logs.FilterMessage("failed to handle message").All()
	require.Len(t, entries, 1)
	assert.Equal(t, QueueEstimateRecords, entries[0].ContextMap()["queue"])
	assert.Equal(t, "store unavailable", entries[0].ContextMap()["error"])
}

func TestMemoryBroker_QueueFull(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBroker(zap.NewNop().Sugar())
	b.capacity = 2

	require.NoError(t, b.Publish(ctx, QueueCatalogReload, []byte("1")))
	require.NoError(t, b.Publish(ctx, QueueCatalogReload, []byte("2")))
	assert.ErrorIs(t, b.Publish(ctx, QueueCatalogReload, []byte("3")), ErrQueueFull)
	assert.Equal(t, 2, b.Pending(QueueCatalogReload))
}

func TestMemoryBroker_CloseDrainsQueued(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBroker(zap.NewNop().Sugar())

	require.NoError(t, b.Publish(ctx, QueueCatalogReload, []byte("1")))
	require.NoError(t, b.Publish(ctx, QueueCatalogReload, []byte("2")))

	var (
		mu    sync.Mutex
		count int
	)
	require.NoError(t, b.Subscribe(ctx, QueueCatalogReload, func(context.Context, []byte) error {
		mu.Lock()
		defer mu.Unlock()
		count++
		return nil
	}))
	require.NoError(t, b.Close())
	waitIdle(t, b)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, count)
}

func TestDeadLetterQueue(t *testing.T) {
	assert.Equal(t, QueueCatalogReloadDLQ, DeadLetterQueue(QueueCatalogReload))
	assert.Equal(t, QueueEstimateRecordsDLQ, DeadLetterQueue(QueueEstimateRecords))
}
