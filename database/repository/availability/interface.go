package availabilityRepo

import (
	"context"
	"time"

	"coachhub/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// AvailabilityRepository stores recurring weekly availability windows. Windows are never updated in place.
type AvailabilityRepository interface {
	Create(ctx context.Context, w *models.AvailabilityWindow) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.AvailabilityWindow, error)
	ListByCoach(ctx context.Context, coachID string) ([]models.AvailabilityWindow, error)
	ListByCoachAndDay(ctx context.Context, coachID string, day time.Weekday) ([]models.AvailabilityWindow, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoAvailabilityRepo struct {
	coll *mongo.Collection
}

// NewMongoAvailabilityRepo constructs a MongoDB AvailabilityRepository.
func NewMongoAvailabilityRepo(db *mongo.Database) AvailabilityRepository {
	return &mongoAvailabilityRepo{coll: db.Collection("availability_windows")}
}
