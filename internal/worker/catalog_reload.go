package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/konigunited/restdelbot/internal/domain"
	"github.com/konigunited/restdelbot/internal/queue"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type ReloadProcessor interface {
	ProcessReloadTask(ctx context.Context, taskID primitive.ObjectID) error
}

type CatalogReloadWorker struct {
	catalogService ReloadProcessor
	broker         queue.Broker
	logger         *zap.SugaredLogger
	ctx            context.Context
	cancel         context.CancelFunc
}

func NewCatalogReloadWorker(
	catalogService ReloadProcessor,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *CatalogReloadWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &CatalogReloadWorker{
		catalogService: catalogService,
		broker:         broker,
		logger:         logger,
		ctx:            ctx,
		cancel:         cancel,
	}
}

func (w *CatalogReloadWorker) Start() error {
	w.logger.Info("starting catalog reload worker")

	return w.broker.Subscribe(w.ctx, queue.QueueCatalogReload, w.handleMessage)
}

func (w *CatalogReloadWorker) Stop() {
	w.logger.Info("stopping catalog reload worker")
	w.cancel()
}

func (w *CatalogReloadWorker) handleMessage(ctx context.Context, message []byte) error {
	var msg domain.CatalogReloadMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		w.logger.Errorw("failed to unmarshal message", "error", err)
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}

	w.logger.Infow("processing catalog reload message", "task_id", msg.TaskID, "source", msg.Source)

	taskID, err := primitive.ObjectIDFromHex(msg.TaskID)
	if err != nil {
		w.logger.Errorw("invalid task ID", "task_id", msg.TaskID, "error", err)
		return fmt.Errorf("invalid task ID: %w", err)
	}

	if err := w.catalogService.ProcessReloadTask(ctx, taskID); err != nil {
		w.logger.Errorw("failed to process reload task", "task_id", msg.TaskID, "error", err)
		return err
	}

	return nil
}
