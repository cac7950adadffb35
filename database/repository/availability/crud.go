package availabilityRepo

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

func (r *mongoAvailabilityRepo) Create(ctx context.Context, w *models.AvailabilityWindow) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, w); err != nil {
		return fmt.Errorf("error creating availability window: %w", database.Translate(err))
	}
	return nil
}

func (r *mongoAvailabilityRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting availability window %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *mongoAvailabilityRepo) GetByID(ctx context.Context, id string) (*models.AvailabilityWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var w models.AvailabilityWindow
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&w); err != nil {
		return nil, database.Translate(err)
	}
	return &w, nil
}

func (r *mongoAvailabilityRepo) ListByCoach(ctx context.Context, coachID string) ([]models.AvailabilityWindow, error) {
	return r.find(ctx, bson.M{"coach_id": coachID})
}

func (r *mongoAvailabilityRepo) ListByCoachAndDay(ctx context.Context, coachID string, day time.Weekday) ([]models.AvailabilityWindow, error) {
	return r.find(ctx, bson.M{"coach_id": coachID, "day_of_week": int(day)})
}

func (r *mongoAvailabilityRepo) find(ctx context.Context, filter bson.M) ([]models.AvailabilityWindow, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "day_of_week", Value: 1}, {Key: "start_time", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching availability windows: %w", err)
	}
	defer cursor.Close(ctx)

	windows := []models.AvailabilityWindow{}
	if err := cursor.All(ctx, &windows); err != nil {
		return nil, fmt.Errorf("error decoding availability windows: %w", err)
	}
	return windows, nil
}

// EnsureIndexes creates the indexes backing the weekday lookup.
func (r *mongoAvailabilityRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "coach_id", Value: 1}, {Key: "day_of_week", Value: 1}},
			Options: options.Index().SetName("coach_day_idx"),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create availability indexes: %w", err)
	}
	return nil
}
