package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/konigunited/restdelbot/internal/domain"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeTaskRepo struct {
	mu    sync.Mutex
	tasks map[primitive.ObjectID]domain.CatalogReloadTask
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[primitive.ObjectID]domain.CatalogReloadTask)}
}

func (r *fakeTaskRepo) Create(_ context.Context, task *domain.CatalogReloadTask) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	task.ID = primitive.NewObjectID()
	r.tasks[task.ID] = *task
	return nil
}

func (r *fakeTaskRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.CatalogReloadTask, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return nil, fmt.Errorf("failed to get catalog reload task: %w", domain.ErrNotFound)
	}
	return &task, nil
}

func (r *fakeTaskRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status domain.ReloadTaskStatus, errorMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	task := r.tasks[id]
	task.Status = status
	task.ErrorMessage = errorMsg
	r.tasks[id] = task
	return nil
}

func (r *fakeTaskRepo) Complete(_ context.Context, id primitive.ObjectID, stats domain.CatalogStats, errorMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	task := r.tasks[id]
	task.Status = domain.StatusCompleted
	task.ItemCount = stats.TotalItems
	task.CategoryCount = stats.CategoryCount
	task.Fallback = stats.Fallback
	task.ErrorMessage = errorMsg
	r.tasks[id] = task
	return nil
}

func (r *fakeTaskRepo) IncrementRetryCount(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	task := r.tasks[id]
	task.RetryCount++
	r.tasks[id] = task
	return nil
}

type fakeRecordRepo struct {
	mu      sync.Mutex
	records map[string]domain.EstimateRecord
	err     error
	delay   time.Duration
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: make(map[string]domain.EstimateRecord)}
}

func (r *fakeRecordRepo) Create(_ context.Context, record *domain.EstimateRecord) error {
	time.Sleep(r.delay)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, ok := r.records[record.EstimateID]; !ok {
		r.records[record.EstimateID] = *record
	}
	return nil
}

func (r *fakeRecordRepo) ListRecent(_ context.Context, limit int) ([]domain.EstimateRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.EstimateRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRecordRepo) Stats(_ context.Context) (domain.EstimateRecordStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := domain.EstimateRecordStats{TotalRevenue: decimal.Zero}
	guests := 0
	for _, rec := range r.records {
		stats.TotalEstimates++
		stats.TotalRevenue = stats.TotalRevenue.Add(rec.TotalCost)
		guests += rec.GuestCount
	}
	if stats.TotalEstimates > 0 {
		stats.AverageGuests = float64(guests) / float64(stats.TotalEstimates)
	}
	return stats, nil
}
