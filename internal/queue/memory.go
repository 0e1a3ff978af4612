package queue

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

const defaultMemoryCapacity = 1024

var (
	ErrBrokerClosed = errors.New("broker is closed")
	ErrQueueFull    = errors.New("queue is full")
)

// MemoryBroker delivers messages in process. Publish only enqueues; each
// subscriber consumes its queue on its own goroutine, so a slow handler never
// holds up the publisher. Messages published before a subscriber exists wait
// in the queue. Handler errors are logged; there is no retry.
type MemoryBroker struct {
	mu       sync.Mutex
	queues   map[string]chan []byte
	capacity int
	closed   bool
	// unhandled counts published messages whose handler has not returned yet.
	// idle is closed whenever it drops to zero.
	unhandled int
	idle      chan struct{}
	logger    *zap.SugaredLogger
}

func NewMemoryBroker(logger *zap.SugaredLogger) *MemoryBroker {
	return &MemoryBroker{
		queues:   make(map[string]chan []byte),
		capacity: defaultMemoryCapacity,
		logger:   logger,
	}
}

// queue must be called with mu held.
func (b *MemoryBroker) queue(queueName string) chan []byte {
	ch, ok := b.queues[queueName]
	if !ok {
		ch = make(chan []byte, b.capacity)
		b.queues[queueName] = ch
	}
	return ch
}

func (b *MemoryBroker) Publish(_ context.Context, queueName string, message []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBrokerClosed
	}

	select {
	case b.queue(queueName) <- append([]byte(nil), message...):
		if b.unhandled == 0 {
			b.idle = make(chan struct{})
		}
		b.unhandled++
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe starts consuming queueName until ctx is done or the broker is closed.
func (b *MemoryBroker) Subscribe(ctx context.Context, queueName string, handler MessageHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrBrokerClosed
	}

	go b.consume(ctx, queueName, b.queue(queueName), handler)
	return nil
}

func (b *MemoryBroker) consume(ctx context.Context, queueName string, msgs <-chan []byte, handler MessageHandler) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			b.handleMessage(ctx, queueName, msg, handler)
		}
	}
}

func (b *MemoryBroker) handleMessage(ctx context.Context, queueName string, msg []byte, handler MessageHandler) {
	defer b.handled()

	if err := handler(ctx, msg); err != nil {
		b.logger.Errorw("failed to handle message", "queue", queueName, "error", err)
	}
}

func (b *MemoryBroker) handled() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.unhandled--
	if b.unhandled == 0 {
		close(b.idle)
	}
}

// Wait blocks until every published message has been handled or ctx is done.
func (b *MemoryBroker) Wait(ctx context.Context) error {
	b.mu.Lock()
	if b.unhandled == 0 {
		b.mu.Unlock()
		return nil
	}
	idle := b.idle
	b.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pending returns the number of messages on queueName not yet taken by a subscriber.
func (b *MemoryBroker) Pending(queueName string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.queues[queueName])
}

func (b *MemoryBroker) IsClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.closed
}

// Close stops accepting messages. Subscribers drain what is already queued.
func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for _, ch := range b.queues {
		close(ch)
	}
	return nil
}
