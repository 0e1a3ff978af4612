package repo

import (
	"context"

	"github.com/konigunited/restdelbot/internal/domain"
)

type EstimateRecordRepository interface {
	Create(ctx context.Context, record *domain.EstimateRecord) error
	ListRecent(ctx context.Context, limit int) ([]domain.EstimateRecord, error)
	Stats(ctx context.Context) (domain.EstimateRecordStats, error)
}
