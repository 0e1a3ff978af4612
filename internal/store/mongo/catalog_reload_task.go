package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/konigunited/restdelbot/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CatalogReloadTaskRepository struct {
	collection *mongo.Collection
}

func NewCatalogReloadTaskRepository(db *mongo.Database) *CatalogReloadTaskRepository {
	return &CatalogReloadTaskRepository{
		collection: db.Collection(catalogReloadTasksCollection),
	}
}

func (r *CatalogReloadTaskRepository) Create(ctx context.Context, task *domain.CatalogReloadTask) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt

	if _, err := r.collection.InsertOne(ctx, task); err != nil {
		return fmt.Errorf("failed to create catalog reload task: %w", err)
	}

	return nil
}

func (r *CatalogReloadTaskRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.CatalogReloadTask, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var task domain.CatalogReloadTask
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("catalog reload task %s: %w", id.Hex(), domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get catalog reload task: %w", err)
	}

	return &task, nil
}

func (r *CatalogReloadTaskRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.ReloadTaskStatus, errorMsg string) error {
	set := bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}
	if errorMsg != "" {
		set["error_message"] = errorMsg
	}

	return r.update(ctx, id, bson.M{"$set": set})
}

// Complete records the outcome of a finished reload. A non-empty errorMsg means
// the source failed and the fallback catalog was installed.
func (r *CatalogReloadTaskRepository) Complete(ctx context.Context, id primitive.ObjectID, stats domain.CatalogStats, errorMsg string) error {
	set := bson.M{
		"status":         domain.StatusCompleted,
		"item_count":     stats.TotalItems,
		"category_count": stats.CategoryCount,
		"fallback":       stats.Fallback,
		"updated_at":     time.Now(),
	}
	if errorMsg != "" {
		set["error_message"] = errorMsg
	}

	return r.update(ctx, id, bson.M{"$set": set})
}

func (r *CatalogReloadTaskRepository) IncrementRetryCount(ctx context.Context, id primitive.ObjectID) error {
	return r.update(ctx, id, bson.M{
		"$inc": bson.M{"retry_count": 1},
		"$set": bson.M{"updated_at": time.Now()},
	})
}

func (r *CatalogReloadTaskRepository) update(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update catalog reload task: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("catalog reload task %s: %w", id.Hex(), domain.ErrNotFound)
	}

	return nil
}
