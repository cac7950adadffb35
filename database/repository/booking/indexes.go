package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the booking and lock indexes. The partial unique index on
// (coach_id, start_time) admits one active booking per coach slot.
func (repo *MongoBookingRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	bookingIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys: bson.D{{Key: "coach_id", Value: 1}, {Key: "start_time", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"active": true}).
				SetName("unique_active_coach_start"),
		},
		{
			Keys:    bson.D{{Key: "coach_id", Value: 1}, {Key: "active", Value: 1}, {Key: "start_time", Value: 1}, {Key: "end_time", Value: 1}},
			Options: options.Index().SetName("coach_active_start_end_idx"),
		},
		{
			Keys:    bson.D{{Key: "client_user_id", Value: 1}, {Key: "start_time", Value: -1}},
			Options: options.Index().SetName("client_start_idx"),
		},
	}
	if _, err := repo.bookingColl.Indexes().CreateMany(ctx, bookingIndexes); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}

	lockIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0).SetName("lock_ttl"),
	}
	if _, err := repo.lockColl.Indexes().CreateOne(ctx, lockIndex); err != nil {
		return fmt.Errorf("failed to create booking lock index: %w", err)
	}
	return nil
}
