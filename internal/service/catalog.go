package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/konigunited/restdelbot/internal/catalog"
	"github.com/konigunited/restdelbot/internal/domain"
	"github.com/konigunited/restdelbot/internal/metrics"
	"github.com/konigunited/restdelbot/internal/queue"
	"github.com/konigunited/restdelbot/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var ErrSheetsNotConfigured = errors.New("google sheets source is not configured")

// SheetSourceFunc opens a spreadsheet as a catalog source.
type SheetSourceFunc func(spreadsheetID string) catalog.Source

type CatalogService struct {
	taskRepo      repo.CatalogReloadTaskRepository
	store         *catalog.Store
	defaultSource catalog.Source
	sheets        SheetSourceFunc
	broker        queue.Broker
	metrics       *metrics.Metrics
	logger        *zap.SugaredLogger
}

// NewCatalogService wires catalog reloads. sheets may be nil when no Google
// credentials are configured.
func NewCatalogService(
	taskRepo repo.CatalogReloadTaskRepository,
	store *catalog.Store,
	defaultSource catalog.Source,
	sheets SheetSourceFunc,
	broker queue.Broker,
	m *metrics.Metrics,
	logger *zap.SugaredLogger,
) *CatalogService {
	return &CatalogService{
		taskRepo:      taskRepo,
		store:         store,
		defaultSource: defaultSource,
		sheets:        sheets,
		broker:        broker,
		metrics:       m,
		logger:        logger,
	}
}

// LoadInitial performs the startup load. A failing source leaves the fallback catalog in place.
func (s *CatalogService) LoadInitial(ctx context.Context) domain.CatalogStats {
	stats, err := s.store.Reload(ctx, s.defaultSource)
	if err != nil {
		s.logger.Warnw("initial catalog load degraded", "source", s.defaultSource.Name(), "error", err)
	}
	s.observe(stats)

	return stats
}

func (s *CatalogService) Stats() domain.CatalogStats {
	return s.store.Stats()
}

func (s *CatalogService) Search(query string) []domain.CatalogEntry {
	return s.store.Search(query)
}

func (s *CatalogService) Entry(id int) (domain.CatalogEntry, error) {
	return s.store.ByID(id)
}

func (s *CatalogService) EntryByCode(code string) (domain.CatalogEntry, error) {
	return s.store.ByCode(code)
}

// CreateReloadTask queues a reload. An empty spreadsheetID reloads the default source.
func (s *CatalogService) CreateReloadTask(ctx context.Context, spreadsheetID string) (primitive.ObjectID, error) {
	source := s.defaultSource.Name()
	if spreadsheetID != "" {
		if s.sheets == nil {
			return primitive.NilObjectID, ErrSheetsNotConfigured
		}
		source = domain.SourceGoogleSheets
	}

	task := &domain.CatalogReloadTask{
		Status:        domain.StatusQueued,
		Source:        source,
		SpreadsheetID: spreadsheetID,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to create reload task: %w", err)
	}

	message := domain.CatalogReloadMessage{
		TaskID:        task.ID.Hex(),
		Source:        source,
		SpreadsheetID: spreadsheetID,
	}

	messageBytes, err := json.Marshal(message)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := s.broker.Publish(ctx, queue.QueueCatalogReload, messageBytes); err != nil {
		_ = s.taskRepo.UpdateStatus(ctx, task.ID, domain.StatusFailed, err.Error())
		return primitive.NilObjectID, fmt.Errorf("failed to publish message: %w", err)
	}

	s.logger.Infow("catalog reload task created", "task_id", task.ID.Hex(), "source", source)

	return task.ID, nil
}

func (s *CatalogService) GetTask(ctx context.Context, taskID primitive.ObjectID) (*domain.CatalogReloadTask, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reload task: %w", err)
	}

	return task, nil
}

// ProcessReloadTask runs a queued reload. An unreadable source is returned as an
// error so the broker retries it; a source with no usable rows completes with the
// fallback catalog installed.
func (s *CatalogService) ProcessReloadTask(ctx context.Context, taskID primitive.ObjectID) error {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return fmt.Errorf("failed to get task: %w", err)
	}

	if err := s.taskRepo.UpdateStatus(ctx, taskID, domain.StatusProcessing, ""); err != nil {
		return fmt.Errorf("failed to update task status: %w", err)
	}

	src, err := s.sourceFor(task)
	if err != nil {
		_ = s.taskRepo.UpdateStatus(ctx, taskID, domain.StatusFailed, err.Error())
		return err
	}

	s.logger.Infow("processing catalog reload", "task_id", taskID.Hex(), "source", src.Name())

	stats, err := s.store.Reload(ctx, src)
	s.observe(stats)

	switch {
	case err == nil:
		if err := s.taskRepo.Complete(ctx, taskID, stats, ""); err != nil {
			return fmt.Errorf("failed to complete task: %w", err)
		}
	case errors.Is(err, domain.ErrEmptyCatalog):
		if err := s.taskRepo.Complete(ctx, taskID, stats, err.Error()); err != nil {
			return fmt.Errorf("failed to complete task: %w", err)
		}
	default:
		s.logger.Errorw("catalog reload failed", "task_id", taskID.Hex(), "error", err)
		_ = s.taskRepo.IncrementRetryCount(ctx, taskID)
		_ = s.taskRepo.UpdateStatus(ctx, taskID, domain.StatusFailed, err.Error())
		return fmt.Errorf("failed to reload catalog: %w", err)
	}

	s.logger.Infow("catalog reload completed",
		"task_id", taskID.Hex(),
		"items", stats.TotalItems,
		"fallback", stats.Fallback,
	)

	return nil
}

func (s *CatalogService) sourceFor(task *domain.CatalogReloadTask) (catalog.Source, error) {
	if task.SpreadsheetID == "" {
		return s.defaultSource, nil
	}
	if s.sheets == nil {
		return nil, ErrSheetsNotConfigured
	}
	return s.sheets(task.SpreadsheetID), nil
}

func (s *CatalogService) observe(stats domain.CatalogStats) {
	if s.metrics == nil {
		return
	}
	s.metrics.CatalogItems.Set(float64(stats.TotalItems))
	if stats.Fallback {
		s.metrics.Fallback(metrics.FallbackCatalog)
	}
}
