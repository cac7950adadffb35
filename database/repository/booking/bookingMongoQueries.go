package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"coachhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func activeOverlapFilter(coachID string, from, to time.Time) bson.M {
	return bson.M{
		"coach_id":   coachID,
		"active":     true,
		"start_time": bson.M{"$lt": to},
		"end_time":   bson.M{"$gt": from},
	}
}

func (repo *MongoBookingRepo) ListActiveOverlapping(ctx context.Context, coachID string, from, to time.Time) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})
	cursor, err := repo.bookingColl.Find(ctx, activeOverlapFilter(coachID, from, to), opts)
	if err != nil {
		return nil, fmt.Errorf("error finding overlapping bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("error decoding booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return bookings, nil
}

func (repo *MongoBookingRepo) HasActiveOverlap(ctx context.Context, coachID string, from, to time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := repo.bookingColl.CountDocuments(ctx, activeOverlapFilter(coachID, from, to), options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("error checking booking overlap: %w", err)
	}
	return n > 0, nil
}

func (repo *MongoBookingRepo) ListByClient(ctx context.Context, userID string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: -1}})
	cursor, err := repo.bookingColl.Find(ctx, bson.M{"client_user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings for user %s: %w", userID, err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}
