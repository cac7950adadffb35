package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"coachhub/database"
	"coachhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (repo *MongoBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	b.Active = b.Status.Active()
	if _, err := repo.bookingColl.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("error creating booking: %w", database.Translate(err))
	}
	return nil
}

func (repo *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var b models.Booking
	if err := repo.bookingColl.FindOne(ctx, bson.M{"id": id}).Decode(&b); err != nil {
		return nil, database.Translate(err)
	}
	return &b, nil
}

func (repo *MongoBookingRepo) Transition(ctx context.Context, id string, t models.BookingTransition) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	at := t.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	set := bson.M{
		"status":     t.To,
		"active":     t.To.Active(),
		"updated_at": at,
	}
	if t.To == models.BookingCancelled {
		set["cancelled_at"] = at
		set["cancelled_by"] = t.CancelledBy
		set["forfeited"] = t.Forfeited
	}
	if t.PaymentRef != "" {
		set["payment_ref"] = t.PaymentRef
	}

	filter := bson.M{"id": id, "status": bson.M{"$in": t.From}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated models.Booking
	err := repo.bookingColl.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		return nil, database.Translate(err)
	}
	return &updated, nil
}

func (repo *MongoBookingRepo) SetCheckoutSession(ctx context.Context, id, sessionID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"checkout_session_id": sessionID, "updated_at": time.Now().UTC()}}
	res, err := repo.bookingColl.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("error attaching checkout session to booking %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}
