package membership

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"coachhub/database"
	creditsRepo "coachhub/database/repository/credits"
	profileRepo "coachhub/database/repository/profile"
	"coachhub/models"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrForbidden    = errors.New("not allowed")
	ErrInvalid      = errors.New("invalid input")
	ErrUnauthorized = errors.New("authentication required")
)

var validate = validator.New()

// MembershipService manages what members can pay with and where they receive pushes.
type MembershipService interface {
	GrantMonthlyCredits(ctx context.Context, caller models.Caller, userID, period string, amount int) (*models.MonthlyCredit, error)
	IssuePackage(ctx context.Context, caller models.Caller, pkg models.PurchasedPackage) (*models.PurchasedPackage, error)
	GetBalance(ctx context.Context, caller models.Caller) (*models.CreditBalance, error)
	UpdateFCMToken(ctx context.Context, caller models.Caller, token string) error
}

type DefaultMembershipService struct {
	Credits  creditsRepo.CreditRepository
	Profiles profileRepo.ProfileRepository
	Location *time.Location
	Logger   *zap.Logger
	Clock    func() time.Time
}

func (s *DefaultMembershipService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

func (s *DefaultMembershipService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.NewNop()
}

func (s *DefaultMembershipService) GrantMonthlyCredits(ctx context.Context, caller models.Caller, userID, period string, amount int) (*models.MonthlyCredit, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}
	if userID == "" {
		return nil, fmt.Errorf("%w: userId is required", ErrInvalid)
	}
	if _, err := time.Parse("2006-01", period); err != nil {
		return nil, fmt.Errorf("%w: period must be YYYY-MM", ErrInvalid)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalid)
	}

	mc, err := s.Credits.GrantMonthlyCredits(ctx, userID, period, amount)
	if err != nil {
		return nil, err
	}
	s.logger().Info("Monthly credits granted",
		zap.String("userID", userID), zap.String("period", period),
		zap.Int("amount", amount), zap.Int("remaining", mc.Remaining), zap.String("by", caller.UserID))
	return mc, nil
}

func (s *DefaultMembershipService) IssuePackage(ctx context.Context, caller models.Caller, pkg models.PurchasedPackage) (*models.PurchasedPackage, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}
	if err := validate.Struct(pkg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	now := s.now().UTC()
	if !pkg.ExpiresAt.After(now) {
		return nil, fmt.Errorf("%w: expiresAt must be in the future", ErrInvalid)
	}

	pkg.ID = uuid.New().String()
	pkg.SessionsRemaining = pkg.SessionsTotal
	pkg.PurchasedAt = now
	pkg.ExpiresAt = pkg.ExpiresAt.UTC()
	if err := s.Credits.CreatePackage(ctx, &pkg); err != nil {
		return nil, err
	}
	s.logger().Info("Package issued",
		zap.String("packageID", pkg.ID), zap.String("userID", pkg.UserID), zap.Int("sessions", pkg.SessionsTotal))
	return &pkg, nil
}

// GetBalance returns the caller's credit for the current month and their usable packages.
func (s *DefaultMembershipService) GetBalance(ctx context.Context, caller models.Caller) (*models.CreditBalance, error) {
	if !caller.Authenticated() {
		return nil, ErrUnauthorized
	}
	now := s.now()
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}

	balance := &models.CreditBalance{Packages: []models.PurchasedPackage{}}
	mc, err := s.Credits.GetMonthlyCredit(ctx, caller.UserID, models.CreditPeriod(now.In(loc)))
	switch {
	case err == nil:
		balance.Monthly = mc
	case !errors.Is(err, database.ErrNotFound):
		return nil, err
	}

	pkgs, err := s.Credits.ListActivePackages(ctx, caller.UserID, now)
	if err != nil {
		return nil, err
	}
	if pkgs != nil {
		balance.Packages = pkgs
	}
	return balance, nil
}

func (s *DefaultMembershipService) UpdateFCMToken(ctx context.Context, caller models.Caller, token string) error {
	if !caller.Authenticated() {
		return ErrUnauthorized
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("%w: token is required", ErrInvalid)
	}
	return s.Profiles.UpsertFCMToken(ctx, caller.UserID, caller.Email, token)
}
