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

const collectionZones = "zones"

type ZoneRepository struct {
	col *mongo.Collection
}

func NewZoneRepository(db *mongo.Database) *ZoneRepository {
	return &ZoneRepository{col: db.Collection(collectionZones)}
}

type zoneDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	City      string             `bson:"city"`
	Street    string             `bson:"street"`
	Number    int                `bson:"number"`
	Latitude  string             `bson:"latitude"`
	Longitude string             `bson:"longitude"`
	RadiusKm  float64            `bson:"radius_km"`
	Residents []string           `bson:"residents"`
	CreatedAt int64              `bson:"created_at"`
	UpdatedAt int64              `bson:"updated_at"`
}

func toZoneDoc(z *domain.Zone) zoneDoc {
	return zoneDoc{
		City:      z.City,
		Street:    z.Street,
		Number:    z.Number,
		Latitude:  z.Latitude,
		Longitude: z.Longitude,
		RadiusKm:  z.RadiusKm,
		Residents: z.Residents,
		CreatedAt: z.CreatedAt.Unix(),
		UpdatedAt: z.UpdatedAt.Unix(),
	}
}

func (d zoneDoc) toDomain() *domain.Zone {
	residents := d.Residents
	if residents == nil {
		residents = []string{}
	}
	return &domain.Zone{
		ID:        d.ID.Hex(),
		City:      d.City,
		Street:    d.Street,
		Number:    d.Number,
		Latitude:  d.Latitude,
		Longitude: d.Longitude,
		RadiusKm:  d.RadiusKm,
		Residents: residents,
		CreatedAt: unixToTime(d.CreatedAt),
		UpdatedAt: unixToTime(d.UpdatedAt),
	}
}

func (r *ZoneRepository) Create(ctx context.Context, zone *domain.Zone) (*domain.Zone, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toZoneDoc(zone))
	if err != nil {
		return nil, fmt.Errorf("insert zone: %w", err)
	}

	created := *zone
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *ZoneRepository) FindByID(ctx context.Context, id string) (*domain.Zone, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrZoneNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc zoneDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrZoneNotFound
		}
		return nil, fmt.Errorf("find zone: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ZoneRepository) List(ctx context.Context) ([]*domain.Zone, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	defer cur.Close(ctx)

	zones := make([]*domain.Zone, 0)
	for cur.Next(ctx) {
		var doc zoneDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode zone: %w", err)
		}
		zones = append(zones, doc.toDomain())
	}
	return zones, cur.Err()
}

func (r *ZoneRepository) Update(ctx context.Context, zone *domain.Zone) error {
	oid, err := primitive.ObjectIDFromHex(zone.ID)
	if err != nil {
		return domain.ErrZoneNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"city":       zone.City,
		"street":     zone.Street,
		"number":     zone.Number,
		"latitude":   zone.Latitude,
		"longitude":  zone.Longitude,
		"radius_km":  zone.RadiusKm,
		"updated_at": zone.UpdatedAt.Unix(),
	}})
	if err != nil {
		return fmt.Errorf("update zone: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrZoneNotFound
	}
	return nil
}

func (r *ZoneRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrZoneNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete zone: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrZoneNotFound
	}
	return nil
}

// AddResident appends userID to the zone's resident list with $addToSet, so
// a concurrent double-add stays a single entry.
func (r *ZoneRepository) AddResident(ctx context.Context, zoneID, userID string) error {
	oid, err := primitive.ObjectIDFromHex(zoneID)
	if err != nil {
		return domain.ErrZoneNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$addToSet": bson.M{"residents": userID},
		"$set":      bson.M{"updated_at": time.Now().UTC().Unix()},
	})
	if err != nil {
		return fmt.Errorf("add resident: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrZoneNotFound
	}
	return nil
}

// RemoveResident drops userID from the zone's resident list with $pull.
func (r *ZoneRepository) RemoveResident(ctx context.Context, zoneID, userID string) error {
	oid, err := primitive.ObjectIDFromHex(zoneID)
	if err != nil {
		return domain.ErrZoneNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$pull": bson.M{"residents": userID},
		"$set":  bson.M{"updated_at": time.Now().UTC().Unix()},
	})
	if err != nil {
		return fmt.Errorf("remove resident: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrZoneNotFound
	}
	return nil
}
