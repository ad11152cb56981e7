package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates every index the repositories rely on. It must run at
// startup before the HTTP server accepts traffic: the registration uniqueness
// guarantee only holds once the unique user indexes exist.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("user indexes: %w", err)
	}
	if err := NewNotificationRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("notification indexes: %w", err)
	}
	if err := NewStatisticRepository(db).EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("statistic indexes: %w", err)
	}
	return nil
}
