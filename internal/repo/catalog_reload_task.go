package repo

import (
	"context"

	"github.com/konigunited/restdelbot/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CatalogReloadTaskRepository interface {
	Create(ctx context.Context, task *domain.CatalogReloadTask) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.CatalogReloadTask, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.ReloadTaskStatus, errorMsg string) error
	Complete(ctx context.Context, id primitive.ObjectID, stats domain.CatalogStats, errorMsg string) error
	IncrementRetryCount(ctx context.Context, id primitive.ObjectID) error
}
