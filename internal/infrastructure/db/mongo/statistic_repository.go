package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/heatwatch/heatwave-alerts/internal/core/domain"
)

const collectionStatistics = "statistics"

// StatisticRepository persists per-heat-wave statistics. A unique index on
// heat_wave_id enforces the one-statistic-per-wave constraint.
type StatisticRepository struct {
	col *mongo.Collection
}

func NewStatisticRepository(db *mongo.Database) *StatisticRepository {
	return &StatisticRepository{col: db.Collection(collectionStatistics)}
}

type statisticDoc struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	AverageTemperature float64            `bson:"average_temperature"`
	WaveCount          int                `bson:"wave_count"`
	HeatWaveID         string             `bson:"heat_wave_id"`
	CreatedAt          int64              `bson:"created_at"`
	UpdatedAt          int64              `bson:"updated_at"`
}

func (d statisticDoc) toDomain() *domain.Statistic {
	return &domain.Statistic{
		ID:                 d.ID.Hex(),
		AverageTemperature: d.AverageTemperature,
		WaveCount:          d.WaveCount,
		HeatWaveID:         d.HeatWaveID,
		CreatedAt:          unixToTime(d.CreatedAt),
		UpdatedAt:          unixToTime(d.UpdatedAt),
	}
}

func (r *StatisticRepository) Create(ctx context.Context, stat *domain.Statistic) (*domain.Statistic, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := statisticDoc{
		AverageTemperature: stat.AverageTemperature,
		WaveCount:          stat.WaveCount,
		HeatWaveID:         stat.HeatWaveID,
		CreatedAt:          stat.CreatedAt.Unix(),
		UpdatedAt:          stat.UpdatedAt.Unix(),
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrStatisticExists
		}
		return nil, fmt.Errorf("insert statistic: %w", err)
	}

	created := *stat
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *StatisticRepository) FindByID(ctx context.Context, id string) (*domain.Statistic, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrStatisticNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc statisticDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStatisticNotFound
		}
		return nil, fmt.Errorf("find statistic: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByHeatWave looks a statistic up by its heat wave reference; the unique
// index guarantees at most one match.
func (r *StatisticRepository) FindByHeatWave(ctx context.Context, heatWaveID string) (*domain.Statistic, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc statisticDoc
	if err := r.col.FindOne(ctx, bson.M{"heat_wave_id": heatWaveID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStatisticNotFound
		}
		return nil, fmt.Errorf("find statistic by heat wave: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *StatisticRepository) List(ctx context.Context) ([]*domain.Statistic, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list statistics: %w", err)
	}
	defer cur.Close(ctx)

	stats := make([]*domain.Statistic, 0)
	for cur.Next(ctx) {
		var doc statisticDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode statistic: %w", err)
		}
		stats = append(stats, doc.toDomain())
	}
	return stats, cur.Err()
}

func (r *StatisticRepository) Update(ctx context.Context, stat *domain.Statistic) error {
	oid, err := primitive.ObjectIDFromHex(stat.ID)
	if err != nil {
		return domain.ErrStatisticNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"average_temperature": stat.AverageTemperature,
		"wave_count":          stat.WaveCount,
		"heat_wave_id":        stat.HeatWaveID,
		"updated_at":          stat.UpdatedAt.Unix(),
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrStatisticExists
		}
		return fmt.Errorf("update statistic: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrStatisticNotFound
	}
	return nil
}

func (r *StatisticRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrStatisticNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete statistic: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrStatisticNotFound
	}
	return nil
}

// EnsureIndexes creates the unique one-statistic-per-heat-wave index.
func (r *StatisticRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "heat_wave_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
