package blockedRepo

import (
	"context"
	"time"

	"coachhub/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BlockedRepository stores immutable blocked-time intervals.
type BlockedRepository interface {
	Create(ctx context.Context, b *models.BlockedTime) error
	Delete(ctx context.Context, id string) error
	// ListOverlapping returns the blocks of coachID intersecting [from, to).
	ListOverlapping(ctx context.Context, coachID string, from, to time.Time) ([]models.BlockedTime, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoBlockedRepo struct {
	coll *mongo.Collection
}

func NewMongoBlockedRepo(db *mongo.Database) BlockedRepository {
	return &mongoBlockedRepo{coll: db.Collection("blocked_times")}
}
