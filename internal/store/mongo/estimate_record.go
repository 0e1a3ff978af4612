package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/konigunited/restdelbot/internal/domain"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// estimateRecordDocument stores money as Decimal128 so aggregation stays exact.
type estimateRecordDocument struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty"`
	EstimateID   string               `bson:"estimate_id"`
	EventType    string               `bson:"event_type"`
	GuestCount   int                  `bson:"guest_count"`
	TotalCost    primitive.Decimal128 `bson:"total_cost"`
	CostPerGuest primitive.Decimal128 `bson:"cost_per_guest"`
	Emergency    bool                 `bson:"emergency"`
	Status       string               `bson:"status"`
	Timestamp    time.Time            `bson:"timestamp"`
}

type EstimateRecordRepository struct {
	collection *mongo.Collection
}

func NewEstimateRecordRepository(db *mongo.Database) *EstimateRecordRepository {
	return &EstimateRecordRepository{
		collection: db.Collection(estimateRecordsCollection),
	}
}

// Create is idempotent on estimate_id so redelivered messages do not duplicate records.
func (r *EstimateRecordRepository) Create(ctx context.Context, record *domain.EstimateRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	doc, err := toDocument(record)
	if err != nil {
		return err
	}

	_, err = r.collection.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("failed to create estimate record: %w", err)
	}

	return nil
}

func (r *EstimateRecordRepository) ListRecent(ctx context.Context, limit int) ([]domain.EstimateRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get estimate records: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []estimateRecordDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode estimate records: %w", err)
	}

	records := make([]domain.EstimateRecord, 0, len(docs))
	for _, d := range docs {
		records = append(records, fromDocument(d))
	}

	return records, nil
}

func (r *EstimateRecordRepository) Stats(ctx context.Context) (domain.EstimateRecordStats, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$total_cost"}}},
			{Key: "avg_guests", Value: bson.D{{Key: "$avg", Value: "$guest_count"}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return domain.EstimateRecordStats{}, fmt.Errorf("failed to aggregate estimate records: %w", err)
	}
	defer cursor.Close(ctx)

	var result []struct {
		Count     int                  `bson:"count"`
		Revenue   primitive.Decimal128 `bson:"revenue"`
		AvgGuests float64              `bson:"avg_guests"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return domain.EstimateRecordStats{}, fmt.Errorf("failed to decode estimate record stats: %w", err)
	}

	stats := domain.EstimateRecordStats{TotalRevenue: decimal.Zero}
	if len(result) == 0 {
		return stats, nil
	}

	stats.TotalEstimates = result[0].Count
	stats.TotalRevenue = fromDecimal128(result[0].Revenue)
	stats.AverageGuests = result[0].AvgGuests

	return stats, nil
}

func toDocument(r *domain.EstimateRecord) (estimateRecordDocument, error) {
	if r.EstimateID == "" {
		return estimateRecordDocument{}, errors.New("estimate record without estimate id")
	}

	total, err := primitive.ParseDecimal128(r.TotalCost.String())
	if err != nil {
		return estimateRecordDocument{}, fmt.Errorf("failed to convert total cost: %w", err)
	}
	perGuest, err := primitive.ParseDecimal128(r.CostPerGuest.String())
	if err != nil {
		return estimateRecordDocument{}, fmt.Errorf("failed to convert cost per guest: %w", err)
	}

	ts := r.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	return estimateRecordDocument{
		ID:           primitive.NewObjectID(),
		EstimateID:   r.EstimateID,
		EventType:    string(r.EventType),
		GuestCount:   r.GuestCount,
		TotalCost:    total,
		CostPerGuest: perGuest,
		Emergency:    r.Emergency,
		Status:       r.Status,
		Timestamp:    ts,
	}, nil
}

func fromDocument(d estimateRecordDocument) domain.EstimateRecord {
	return domain.EstimateRecord{
		EstimateID:   d.EstimateID,
		EventType:    domain.EventType(d.EventType),
		GuestCount:   d.GuestCount,
		TotalCost:    fromDecimal128(d.TotalCost),
		CostPerGuest: fromDecimal128(d.CostPerGuest),
		Emergency:    d.Emergency,
		Status:       d.Status,
		Timestamp:    d.Timestamp,
	}
}

func fromDecimal128(d primitive.Decimal128) decimal.Decimal {
	v, err := decimal.NewFromString(d.String())
	if err != nil {
		return decimal.Zero
	}
	return v
}
