package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/konigunited/restdelbot/internal/domain"
	"github.com/konigunited/restdelbot/internal/metrics"
	"github.com/konigunited/restdelbot/internal/queue"
	"github.com/konigunited/restdelbot/internal/repo"
	"go.uber.org/zap"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 100
)

// RecordService keeps the append-only history of produced estimates. Writes go
// through the broker so a slow or unavailable store never delays a reply.
type RecordService struct {
	recordRepo repo.EstimateRecordRepository
	broker     queue.Broker
	metrics    *metrics.Metrics
	logger     *zap.SugaredLogger
}

func NewRecordService(
	recordRepo repo.EstimateRecordRepository,
	broker queue.Broker,
	m *metrics.Metrics,
	logger *zap.SugaredLogger,
) *RecordService {
	return &RecordService{
		recordRepo: recordRepo,
		broker:     broker,
		metrics:    m,
		logger:     logger,
	}
}

// Publish queues a summary of est for persistence.
func (s *RecordService) Publish(ctx context.Context, est domain.Estimate, eventType string) error {
	message := domain.EstimateRecordMessage{
		EventType: eventType,
		Record:    domain.NewEstimateRecord(est),
	}

	messageBytes, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := s.broker.Publish(ctx, queue.QueueEstimateRecords, messageBytes); err != nil {
		return fmt.Errorf("failed to publish estimate record: %w", err)
	}

	return nil
}

// Persist writes the record carried by msg. Writing the same estimate twice is a no-op.
func (s *RecordService) Persist(ctx context.Context, msg domain.EstimateRecordMessage) error {
	record := msg.Record
	if record.EstimateID == "" {
		return errors.New("estimate record without id")
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}
	if record.Status == "" {
		record.Status = domain.EstimateRecordStatusCreated
	}

	if err := s.recordRepo.Create(ctx, &record); err != nil {
		if s.metrics != nil {
			s.metrics.Fallback(metrics.FallbackRecordStore)
		}
		return fmt.Errorf("failed to save estimate record: %w", err)
	}

	s.logger.Infow("estimate record saved",
		"estimate_id", record.EstimateID,
		"event", msg.EventType,
		"total_cost", record.TotalCost.String(),
	)

	return nil
}

func (s *RecordService) Recent(ctx context.Context, limit int) ([]domain.EstimateRecord, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	limit = min(limit, maxRecentLimit)

	records, err := s.recordRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list estimate records: %w", err)
	}

	return records, nil
}

func (s *RecordService) Stats(ctx context.Context) (domain.EstimateRecordStats, error) {
	stats, err := s.recordRepo.Stats(ctx)
	if err != nil {
		return domain.EstimateRecordStats{}, fmt.Errorf("failed to get estimate record stats: %w", err)
	}

	return stats, nil
}
