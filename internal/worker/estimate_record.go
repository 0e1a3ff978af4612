package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/konigunited/restdelbot/internal/domain"
	"github.com/konigunited/restdelbot/internal/queue"
	"go.uber.org/zap"
)

type RecordPersister interface {
	Persist(ctx context.Context, msg domain.EstimateRecordMessage) error
}

type EstimateRecordWorker struct {
	recordService RecordPersister
	broker        queue.Broker
	logger        *zap.SugaredLogger
	ctx           context.Context
	cancel        context.CancelFunc
}

func NewEstimateRecordWorker(
	recordService RecordPersister,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *EstimateRecordWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &EstimateRecordWorker{
		recordService: recordService,
		broker:        broker,
		logger:        logger,
		ctx:           ctx,
		cancel:        cancel,
	}
}

func (w *EstimateRecordWorker) Start() error {
	w.logger.Info("starting estimate record worker")

	return w.broker.Subscribe(w.ctx, queue.QueueEstimateRecords, w.handleMessage)
}

func (w *EstimateRecordWorker) Stop() {
	w.logger.Info("stopping estimate record worker")
	w.cancel()
}

func (w *EstimateRecordWorker) handleMessage(ctx context.Context, message []byte) error {
	var msg domain.EstimateRecordMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		w.logger.Errorw("failed to unmarshal message", "error", err)
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}

	if msg.Record.Timestamp.IsZero() {
		msg.Record.Timestamp = time.Now()
	}

	w.logger.Infow("processing estimate record", "estimate_id", msg.Record.EstimateID, "event_type", msg.EventType)

	if err := w.recordService.Persist(ctx, msg); err != nil {
		w.logger.Errorw("failed to persist estimate record", "estimate_id", msg.Record.EstimateID, "error", err)
		return err
	}

	return nil
}
