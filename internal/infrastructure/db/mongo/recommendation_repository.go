package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/heatwatch/heatwave-alerts/internal/core/domain"
)

const collectionRecommendations = "recommendations"

type RecommendationRepository struct {
	col *mongo.Collection
}

func NewRecommendationRepository(db *mongo.Database) *RecommendationRepository {
	return &RecommendationRepository{col: db.Collection(collectionRecommendations)}
}

type recommendationDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Label       string             `bson:"label"`
	Description string             `bson:"description"`
	ZoneID      string             `bson:"zone_id"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

func (d recommendationDoc) toDomain() *domain.Recommendation {
	return &domain.Recommendation{
		ID:          d.ID.Hex(),
		Label:       d.Label,
		Description: d.Description,
		ZoneID:      d.ZoneID,
		CreatedAt:   unixToTime(d.CreatedAt),
		UpdatedAt:   unixToTime(d.UpdatedAt),
	}
}

func (r *RecommendationRepository) Create(ctx context.Context, rec *domain.Recommendation) (*domain.Recommendation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := recommendationDoc{
		Label:       rec.Label,
		Description: rec.Description,
		ZoneID:      rec.ZoneID,
		CreatedAt:   rec.CreatedAt.Unix(),
		UpdatedAt:   rec.UpdatedAt.Unix(),
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert recommendation: %w", err)
	}

	created := *rec
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *RecommendationRepository) FindByID(ctx context.Context, id string) (*domain.Recommendation, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRecommendationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc recommendationDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRecommendationNotFound
		}
		return nil, fmt.Errorf("find recommendation: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *RecommendationRepository) List(ctx context.Context) ([]*domain.Recommendation, error) {
	return r.list(ctx, bson.M{})
}

func (r *RecommendationRepository) ListByZone(ctx context.Context, zoneID string) ([]*domain.Recommendation, error) {
	return r.list(ctx, bson.M{"zone_id": zoneID})
}

func (r *RecommendationRepository) list(ctx context.Context, filter bson.M) ([]*domain.Recommendation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}
	defer cur.Close(ctx)

	recs := make([]*domain.Recommendation, 0)
	for cur.Next(ctx) {
		var doc recommendationDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode recommendation: %w", err)
		}
		recs = append(recs, doc.toDomain())
	}
	return recs, cur.Err()
}

func (r *RecommendationRepository) Update(ctx context.Context, rec *domain.Recommendation) error {
	oid, err := primitive.ObjectIDFromHex(rec.ID)
	if err != nil {
		return domain.ErrRecommendationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"label":       rec.Label,
		"description": rec.Description,
		"zone_id":     rec.ZoneID,
		"updated_at":  rec.UpdatedAt.Unix(),
	}})
	if err != nil {
		return fmt.Errorf("update recommendation: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRecommendationNotFound
	}
	return nil
}

func (r *RecommendationRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrRecommendationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete recommendation: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRecommendationNotFound
	}
	return nil
}
