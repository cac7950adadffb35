package profileRepo

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

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	UpsertFCMToken(ctx context.Context, userID, email, token string) error
	EnsureIndexes(ctx context.Context) error
}

type mongoProfileRepo struct {
	coll *mongo.Collection
}

func NewMongoProfileRepo(db *mongo.Database) ProfileRepository {
	return &mongoProfileRepo{coll: db.Collection("profiles")}
}

func (r *mongoProfileRepo) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.Profile
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&p); err != nil {
		return nil, database.Translate(err)
	}
	return &p, nil
}

func (r *mongoProfileRepo) UpsertFCMToken(ctx context.Context, userID, email, token string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set":         bson.M{"fcm_token": token, "updated_at": time.Now().UTC()},
		"$setOnInsert": bson.M{"email": email},
	}
	_, err := r.coll.UpdateOne(ctx, bson.M{"user_id": userID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("error updating FCM token for %s: %w", userID, err)
	}
	return nil
}

func (r *mongoProfileRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_user_id"),
	})
	if err != nil {
		return fmt.Errorf("failed to create profile indexes: %w", err)
	}
	return nil
}
