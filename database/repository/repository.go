package repository

import (
	"context"

	academyRepo "coachhub/database/repository/academy"
	availabilityRepo "coachhub/database/repository/availability"
	blockedRepo "coachhub/database/repository/blocked"
	bookingRepo "coachhub/database/repository/booking"
	communityRepo "coachhub/database/repository/community"
	creditsRepo "coachhub/database/repository/credits"
	profileRepo "coachhub/database/repository/profile"
	serviceTypeRepo "coachhub/database/repository/servicetype"

	"go.mongodb.org/mongo-driver/mongo"
)

// Repositories groups every MongoDB-backed store.
type Repositories struct {
	Availability availabilityRepo.AvailabilityRepository
	Blocked      blockedRepo.BlockedRepository
	Bookings     bookingRepo.BookingRepository
	Credits      creditsRepo.CreditRepository
	ServiceTypes serviceTypeRepo.ServiceTypeRepository
	Profiles     profileRepo.ProfileRepository
	Academy      academyRepo.AcademyRepository
	Community    communityRepo.CommunityRepository
}

func NewMongoRepositories(db *mongo.Database) *Repositories {
	return &Repositories{
		Availability: availabilityRepo.NewMongoAvailabilityRepo(db),
		Blocked:      blockedRepo.NewMongoBlockedRepo(db),
		Bookings:     bookingRepo.NewMongoBookingRepo(db),
		Credits:      creditsRepo.NewMongoCreditRepo(db),
		ServiceTypes: serviceTypeRepo.NewMongoServiceTypeRepo(db),
		Profiles:     profileRepo.NewMongoProfileRepo(db),
		Academy:      academyRepo.NewMongoAcademyRepo(db),
		Community:    communityRepo.NewMongoCommunityRepo(db),
	}
}

// EnsureIndexes creates the indexes of every store, stopping at the first failure.
func (r *Repositories) EnsureIndexes(ctx context.Context) error {
	for _, ensure := range []func(context.Context) error{
		r.Availability.EnsureIndexes,
		r.Blocked.EnsureIndexes,
		r.Bookings.EnsureIndexes,
		r.Credits.EnsureIndexes,
		r.ServiceTypes.EnsureIndexes,
		r.Profiles.EnsureIndexes,
		r.Academy.EnsureIndexes,
		r.Community.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			return err
		}
	}
	return nil
}
