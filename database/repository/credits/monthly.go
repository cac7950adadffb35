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

func (r *mongoCreditRepo) GetMonthlyCredit(ctx context.Context, userID, period string) (*models.MonthlyCredit, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var mc models.MonthlyCredit
	if err := r.monthlyColl.FindOne(ctx, bson.M{"user_id": userID, "period": period}).Decode(&mc); err != nil {
		return nil, database.Translate(err)
	}
	return &mc, nil
}

// ConsumeMonthlyCredit draws one credit only while remaining >= 1.
func (r *mongoCreditRepo) ConsumeMonthlyCredit(ctx context.Context, userID, period string) (*models.MonthlyCredit, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"user_id": userID, "period": period, "remaining": bson.M{"$gte": 1}}
	update := bson.M{
		"$inc": bson.M{"remaining": -1},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mc models.MonthlyCredit
	if err := r.monthlyColl.FindOneAndUpdate(ctx, filter, update, opts).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrExhausted
		}
		return nil, fmt.Errorf("error consuming monthly credit: %w", err)
	}
	return &mc, nil
}

func (r *mongoCreditRepo) GrantMonthlyCredits(ctx context.Context, userID, period string, amount int) (*models.MonthlyCredit, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"user_id": userID, "period": period}
	update := bson.M{
		"$inc": bson.M{"remaining": amount, "granted": amount},
		"$set": bson.M{"updated_at": time.Now().UTC()},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var mc models.MonthlyCredit
	if err := r.monthlyColl.FindOneAndUpdate(ctx, filter, update, opts).Decode(&mc); err != nil {
		return nil, fmt.Errorf("error granting monthly credits: %w", err)
	}
	return &mc, nil
}
