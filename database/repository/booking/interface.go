package bookingRepo

import (
	"context"
	"time"

	"coachhub/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository persists reservations. Bookings are never hard-deleted.
type BookingRepository interface {
	// Create inserts b. A second active booking with the same coach and start time fails with database.ErrDuplicate.
	Create(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// ListActiveOverlapping returns pending and confirmed bookings of coachID intersecting [from, to).
	ListActiveOverlapping(ctx context.Context, coachID string, from, to time.Time) ([]models.Booking, error)
	HasActiveOverlap(ctx context.Context, coachID string, from, to time.Time) (bool, error)
	ListByClient(ctx context.Context, userID string) ([]models.Booking, error)
	// Transition applies t only if the booking is currently in one of t.From; otherwise database.ErrNotFound.
	Transition(ctx context.Context, id string, t models.BookingTransition) (*models.Booking, error)
	SetCheckoutSession(ctx context.Context, id, sessionID string) error

	AcquireCoachLock(ctx context.Context, coachID, owner string, ttl time.Duration) (bool, error)
	ReleaseCoachLock(ctx context.Context, coachID, owner string) error

	EnsureIndexes(ctx context.Context) error
}

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	bookingColl *mongo.Collection
	lockColl    *mongo.Collection
}

func NewMongoBookingRepo(db *mongo.Database) BookingRepository {
	return &MongoBookingRepo{
		bookingColl: db.Collection("bookings"),
		lockColl:    db.Collection("booking_locks"),
	}
}
