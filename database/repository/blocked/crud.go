package blockedRepo

import (
	"context"
	"fmt"
	"time"

	"coachhub/database"
	"coachhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoBlockedRepo) Create(ctx context.Context, b *models.BlockedTime) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("error creating blocked time: %w", database.Translate(err))
	}
	return nil
}

func (r *mongoBlockedRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting blocked time %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *mongoBlockedRepo) ListOverlapping(ctx context.Context, coachID string, from, to time.Time) ([]models.BlockedTime, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"coach_id":        coachID,
		"start_date_time": bson.M{"$lt": to},
		"end_date_time":   bson.M{"$gt": from},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start_date_time", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching blocked times: %w", err)
	}
	defer cursor.Close(ctx)

	blocked := []models.BlockedTime{}
	for cursor.Next(ctx) {
		var b models.BlockedTime
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("error decoding blocked time: %w", err)
		}
		blocked = append(blocked, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return blocked, nil
}

func (r *mongoBlockedRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "coach_id", Value: 1}, {Key: "start_date_time", Value: 1}, {Key: "end_date_time", Value: 1}},
			Options: options.Index().SetName("coach_start_end_idx"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create blocked time indexes: %w", err)
	}
	return nil
}
