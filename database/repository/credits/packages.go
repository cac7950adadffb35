package creditsRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coachhub/database"
	"coachhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoCreditRepo) CreatePackage(ctx context.Context, p *models.PurchasedPackage) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.packageColl.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("error creating package: %w", database.Translate(err))
	}
	return nil
}

func (r *mongoCreditRepo) GetPackage(ctx context.Context, id string) (*models.PurchasedPackage, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var p models.PurchasedPackage
	if err := r.packageColl.FindOne(ctx, bson.M{"id": id}).Decode(&p); err != nil {
		return nil, database.Translate(err)
	}
	return &p, nil
}

func (r *mongoCreditRepo) ListActivePackages(ctx context.Context, userID string, now time.Time) ([]models.PurchasedPackage, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"user_id":            userID,
		"sessions_remaining": bson.M{"$gte": 1},
		"expires_at":         bson.M{"$gt": now},
	}
	opts := options.Find().SetSort(bson.D{{Key: "expires_at", Value: 1}})
	cursor, err := r.packageColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching packages: %w", err)
	}
	defer cursor.Close(ctx)

	pkgs := []models.PurchasedPackage{}
	if err := cursor.All(ctx, &pkgs); err != nil {
		return nil, fmt.Errorf("error decoding packages: %w", err)
	}
	return pkgs, nil
}

// ConsumePackageSession draws one session from an owned, unexpired package.
func (r *mongoCreditRepo) ConsumePackageSession(ctx context.Context, id, userID string, now time.Time) (*models.PurchasedPackage, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":                 id,
		"user_id":            userID,
		"sessions_remaining": bson.M{"$gte": 1},
		"expires_at":         bson.M{"$gt": now},
	}
	update := bson.M{"$inc": bson.M{"sessions_remaining": -1}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p models.PurchasedPackage
	if err := r.packageColl.FindOneAndUpdate(ctx, filter, update, opts).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrExhausted
		}
		return nil, fmt.Errorf("error consuming package session: %w", err)
	}
	return &p, nil
}

func (r *mongoCreditRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	monthly := mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "period", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_user_period"),
	}
	if _, err := r.monthlyColl.Indexes().CreateOne(ctx, monthly); err != nil {
		return fmt.Errorf("failed to create monthly credit index: %w", err)
	}

	packages := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("user_expiry_idx"),
		},
	}
	if _, err := r.packageColl.Indexes().CreateMany(ctx, packages); err != nil {
		return fmt.Errorf("failed to create package indexes: %w", err)
	}
	return nil
}
