package serviceTypeRepo

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

type ServiceTypeRepository interface {
	Create(ctx context.Context, st *models.ServiceType) error
	GetByID(ctx context.Context, id string) (*models.ServiceType, error)
	List(ctx context.Context) ([]models.ServiceType, error)
	Delete(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}

type mongoServiceTypeRepo struct {
	coll *mongo.Collection
}

func NewMongoServiceTypeRepo(db *mongo.Database) ServiceTypeRepository {
	return &mongoServiceTypeRepo{coll: db.Collection("service_types")}
}

func (r *mongoServiceTypeRepo) Create(ctx context.Context, st *models.ServiceType) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, st); err != nil {
		return fmt.Errorf("error creating service type: %w", database.Translate(err))
	}
	return nil
}

func (r *mongoServiceTypeRepo) GetByID(ctx context.Context, id string) (*models.ServiceType, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var st models.ServiceType
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&st); err != nil {
		return nil, database.Translate(err)
	}
	return &st, nil
}

func (r *mongoServiceTypeRepo) List(ctx context.Context) ([]models.ServiceType, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("error fetching service types: %w", err)
	}
	defer cursor.Close(ctx)

	types := []models.ServiceType{}
	if err := cursor.All(ctx, &types); err != nil {
		return nil, fmt.Errorf("error decoding service types: %w", err)
	}
	return types, nil
}

func (r *mongoServiceTypeRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting service type %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *mongoServiceTypeRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_id"),
	})
	if err != nil {
		return fmt.Errorf("failed to create service type indexes: %w", err)
	}
	return nil
}
