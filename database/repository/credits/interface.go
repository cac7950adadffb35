package creditsRepo

import (
	"context"
	"errors"
	"time"

	"coachhub/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrExhausted is returned when a conditional decrement finds nothing left to draw.
var ErrExhausted = errors.New("no credit remaining")

// CreditRepository stores monthly hybrid credits and purchased session packages.
type CreditRepository interface {
	GetMonthlyCredit(ctx context.Context, userID, period string) (*models.MonthlyCredit, error)
	ConsumeMonthlyCredit(ctx context.Context, userID, period string) (*models.MonthlyCredit, error)
	GrantMonthlyCredits(ctx context.Context, userID, period string, amount int) (*models.MonthlyCredit, error)

	CreatePackage(ctx context.Context, p *models.PurchasedPackage) error
	GetPackage(ctx context.Context, id string) (*models.PurchasedPackage, error)
	ListActivePackages(ctx context.Context, userID string, now time.Time) ([]models.PurchasedPackage, error)
	ConsumePackageSession(ctx context.Context, id, userID string, now time.Time) (*models.PurchasedPackage, error)

	EnsureIndexes(ctx context.Context) error
}

type mongoCreditRepo struct {
	monthlyColl *mongo.Collection
	packageColl *mongo.Collection
}

func NewMongoCreditRepo(db *mongo.Database) CreditRepository {
	return &mongoCreditRepo{
		monthlyColl: db.Collection("monthly_credits"),
		packageColl: db.Collection("purchased_packages"),
	}
}
