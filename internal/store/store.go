// Package store persists users, trips and bookings. MongoStore is the primary
// backend; MemoryStore backs the demo fallback and tests.
package store

import (
	"context"

	"github.com/AnshRaj112/natpac-travel-backend/internal/models"
)

// Store is the persistence contract shared by the Mongo and in-memory backends.
// Lookups that find nothing return errs.ErrNotFound; infrastructure failures
// are classified by ShouldUseFallback.
type Store interface {
	CreateUser(ctx context.Context, u *models.User) (string, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	// SetConsent is idempotent: writing the current value is a successful no-op.
	SetConsent(ctx context.Context, userID string, consent bool) error

	CreateTrip(ctx context.Context, t *models.Trip) (string, error)
	// ListTrips returns the owner's trips, newest start date first.
	ListTrips(ctx context.Context, userID string) ([]models.Trip, error)

	CreateBooking(ctx context.Context, b *models.Booking) (string, error)
	ListBookings(ctx context.Context, userID string) ([]models.Booking, error)
	FindBooking(ctx context.Context, userID, bookingID string) (*models.Booking, error)
	// UpdateBooking applies the patch to a booking owned by userID and returns it.
	UpdateBooking(ctx context.Context, userID, bookingID string, patch models.BookingPatch) (*models.Booking, error)

	Ping(ctx context.Context) error
}
