package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func lockID(coachID string) string { return "coach:" + coachID }

// AcquireCoachLock takes the coach's advisory lock for ttl. It returns false when another owner
// holds an unexpired lock. An expired lock is taken over in place.
func (repo *MongoBookingRepo) AcquireCoachLock(ctx context.Context, coachID, owner string, ttl time.Duration) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	filter := bson.M{"_id": lockID(coachID), "expires_at": bson.M{"$lte": now}}
	update := bson.M{"$set": bson.M{"owner": owner, "expires_at": now.Add(ttl), "created_at": now}}

	_, err := repo.lockColl.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		// The upsert collides with the live lock's _id.
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("error acquiring lock for coach %s: %w", coachID, err)
	}
	return true, nil
}

func (repo *MongoBookingRepo) ReleaseCoachLock(ctx context.Context, coachID, owner string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.lockColl.DeleteOne(ctx, bson.M{"_id": lockID(coachID), "owner": owner}); err != nil {
		return fmt.Errorf("error releasing lock for coach %s: %w", coachID, err)
	}
	return nil
}
