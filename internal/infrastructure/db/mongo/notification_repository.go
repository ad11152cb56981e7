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

const collectionNotifications = "notifications"

type NotificationRepository struct {
	col *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{col: db.Collection(collectionNotifications)}
}

type notificationDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Label      string             `bson:"label"`
	Type       string             `bson:"type"`
	SentAt     time.Time          `bson:"sent_at"`
	Read       bool               `bson:"read"`
	UserID     string             `bson:"user_id"`
	HeatWaveID string             `bson:"heat_wave_id"`
	CreatedAt  int64              `bson:"created_at"`
	UpdatedAt  int64              `bson:"updated_at"`
}

func toNotificationDoc(n *domain.Notification) notificationDoc {
	return notificationDoc{
		Label:      n.Label,
		Type:       string(n.Type),
		SentAt:     n.SentAt,
		Read:       n.Read,
		UserID:     n.UserID,
		HeatWaveID: n.HeatWaveID,
		CreatedAt:  n.CreatedAt.Unix(),
		UpdatedAt:  n.UpdatedAt.Unix(),
	}
}

func (d notificationDoc) toDomain() *domain.Notification {
	return &domain.Notification{
		ID:         d.ID.Hex(),
		Label:      d.Label,
		Type:       domain.NotificationType(d.Type),
		SentAt:     d.SentAt.UTC(),
		Read:       d.Read,
		UserID:     d.UserID,
		HeatWaveID: d.HeatWaveID,
		CreatedAt:  unixToTime(d.CreatedAt),
		UpdatedAt:  unixToTime(d.UpdatedAt),
	}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toNotificationDoc(n))
	if err != nil {
		return nil, fmt.Errorf("insert notification: %w", err)
	}

	created := *n
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *NotificationRepository) FindByID(ctx context.Context, id string) (*domain.Notification, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotificationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc notificationDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotificationNotFound
		}
		return nil, fmt.Errorf("find notification: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *NotificationRepository) List(ctx context.Context) ([]*domain.Notification, error) {
	return r.list(ctx, bson.M{})
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Notification, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *NotificationRepository) ListUnreadByUser(ctx context.Context, userID string) ([]*domain.Notification, error) {
	return r.list(ctx, bson.M{"user_id": userID, "read": false})
}

func (r *NotificationRepository) list(ctx context.Context, filter bson.M) ([]*domain.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "sent_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer cur.Close(ctx)

	items := make([]*domain.Notification, 0)
	for cur.Next(ctx) {
		var doc notificationDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode notification: %w", err)
		}
		items = append(items, doc.toDomain())
	}
	return items, cur.Err()
}

func (r *NotificationRepository) Update(ctx context.Context, n *domain.Notification) error {
	oid, err := primitive.ObjectIDFromHex(n.ID)
	if err != nil {
		return domain.ErrNotificationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"label":      n.Label,
		"type":       string(n.Type),
		"read":       n.Read,
		"updated_at": n.UpdatedAt.Unix(),
	}})
	if err != nil {
		return fmt.Errorf("update notification: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotificationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

// EnsureIndexes creates the lookup index for per-user notification queries.
func (r *NotificationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "sent_at", Value: -1}}},
		{Keys: bson.D{{Key: "heat_wave_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
