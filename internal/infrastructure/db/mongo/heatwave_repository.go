package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/heatwatch/heatwave-alerts/internal/core/domain"
)

const collectionHeatWaves = "heat_waves"

type HeatWaveRepository struct {
	col *mongo.Collection
}

func NewHeatWaveRepository(db *mongo.Database) *HeatWaveRepository {
	return &HeatWaveRepository{col: db.Collection(collectionHeatWaves)}
}

type heatWaveDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	MaxTemperature float64            `bson:"max_temperature"`
	Intensity      float64            `bson:"intensity"`
	Humidity       float64            `bson:"humidity"`
	StartsAt       time.Time          `bson:"starts_at"`
	EndsAt         time.Time          `bson:"ends_at"`
	ZoneID         string             `bson:"zone_id"`
	CreatedAt      int64              `bson:"created_at"`
	UpdatedAt      int64              `bson:"updated_at"`
}

func toHeatWaveDoc(w *domain.HeatWave) heatWaveDoc {
	return heatWaveDoc{
		MaxTemperature: w.MaxTemperature,
		Intensity:      w.Intensity,
		Humidity:       w.Humidity,
		StartsAt:       w.StartsAt,
		EndsAt:         w.EndsAt,
		ZoneID:         w.ZoneID,
		CreatedAt:      w.CreatedAt.Unix(),
		UpdatedAt:      w.UpdatedAt.Unix(),
	}
}

func (d heatWaveDoc) toDomain() *domain.HeatWave {
	return &domain.HeatWave{
		ID:             d.ID.Hex(),
		MaxTemperature: d.MaxTemperature,
		Intensity:      d.Intensity,
		Humidity:       d.Humidity,
		StartsAt:       d.StartsAt.UTC(),
		EndsAt:         d.EndsAt.UTC(),
		ZoneID:         d.ZoneID,
		CreatedAt:      unixToTime(d.CreatedAt),
		UpdatedAt:      unixToTime(d.UpdatedAt),
	}
}

func (r *HeatWaveRepository) Create(ctx context.Context, wave *domain.HeatWave) (*domain.HeatWave, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toHeatWaveDoc(wave))
	if err != nil {
		return nil, fmt.Errorf("insert heat wave: %w", err)
	}

	created := *wave
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *HeatWaveRepository) FindByID(ctx context.Context, id string) (*domain.HeatWave, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrHeatWaveNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc heatWaveDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrHeatWaveNotFound
		}
		return nil, fmt.Errorf("find heat wave: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *HeatWaveRepository) List(ctx context.Context) ([]*domain.HeatWave, error) {
	return r.list(ctx, bson.M{})
}

func (r *HeatWaveRepository) ListByZone(ctx context.Context, zoneID string) ([]*domain.HeatWave, error) {
	return r.list(ctx, bson.M{"zone_id": zoneID})
}

// ListActive returns waves whose window contains now.
func (r *HeatWaveRepository) ListActive(ctx context.Context, now time.Time) ([]*domain.HeatWave, error) {
	return r.list(ctx, bson.M{
		"starts_at": bson.M{"$lte": now},
		"ends_at":   bson.M{"$gte": now},
	})
}

func (r *HeatWaveRepository) list(ctx context.Context, filter bson.M) ([]*domain.HeatWave, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list heat waves: %w", err)
	}
	defer cur.Close(ctx)

	waves := make([]*domain.HeatWave, 0)
	for cur.Next(ctx) {
		var doc heatWaveDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode heat wave: %w", err)
		}
		waves = append(waves, doc.toDomain())
	}
	return waves, cur.Err()
}

func (r *HeatWaveRepository) Update(ctx context.Context, wave *domain.HeatWave) error {
	oid, err := primitive.ObjectIDFromHex(wave.ID)
	if err != nil {
		return domain.ErrHeatWaveNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"max_temperature": wave.MaxTemperature,
		"intensity":       wave.Intensity,
		"humidity":        wave.Humidity,
		"starts_at":       wave.StartsAt,
		"ends_at":         wave.EndsAt,
		"zone_id":         wave.ZoneID,
		"updated_at":      wave.UpdatedAt.Unix(),
	}})
	if err != nil {
		return fmt.Errorf("update heat wave: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrHeatWaveNotFound
	}
	return nil
}

func (r *HeatWaveRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrHeatWaveNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete heat wave: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrHeatWaveNotFound
	}
	return nil
}
