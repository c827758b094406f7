package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/natpac-travel-backend/internal/errs"
	"github.com/AnshRaj112/natpac-travel-backend/internal/models"
)

func TestFallbackStore_Seed(t *testing.T) {
	ctx := context.Background()
	s := NewFallbackStore()

	u, err := s.FindUserByEmail(ctx, "demo@example.com")
	require.NoError(t, err)
	require.Equal(t, "demo-user-1", u.ID)
	require.Equal(t, models.ConsentGranted, u.ConsentState())

	trips, err := s.ListTrips(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, trips, 2)
	require.Equal(t, "Tokyo, Japan", trips[0].Destination)
	require.Equal(t, "Paris, France", trips[1].Destination)

	bookings, err := s.ListBookings(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
}

func TestMemoryStore_Users(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	u := &models.User{Name: "Alice", Email: "a@x.com", Password: "hash"}
	id, err := s.CreateUser(ctx, u)
	require.NoError(t, err)
	require.Equal(t, id, u.ID)

	_, err = s.CreateUser(ctx, &models.User{Name: "Other", Email: "a@x.com"})
	require.ErrorIs(t, err, errs.ErrDuplicateEmail)

	got, err := s.FindUserByID(ctx, id)
	require.NoError(t, err)
	require.Nil(t, got.Consent)

	_, err = s.FindUserByEmail(ctx, "nobody@x.com")
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestMemoryStore_ConsentIdempotentAndReversible(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	id, err := s.CreateUser(ctx, &models.User{Email: "a@x.com"})
	require.NoError(t, err)

	for _, v := range []bool{true, true, false, true} {
		require.NoError(t, s.SetConsent(ctx, id, v))
		u, err := s.FindUserByID(ctx, id)
		require.NoError(t, err)
		require.Equal(t, v, *u.Consent)
	}

	require.ErrorIs(t, s.SetConsent(ctx, "missing", true), errs.ErrNotFound)
}

func TestMemoryStore_TripsAreOwnerScopedAndSorted(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	day := func(v string) time.Time {
		d, _ := time.Parse(models.DateLayout, v)
		return d
	}

	for _, start := range []string{"2025-03-01", "2025-09-01", "2025-06-01"} {
		_, err := s.CreateTrip(ctx, &models.Trip{UserID: "u1", Destination: start, StartDate: day(start), EndDate: day(start)})
		require.NoError(t, err)
	}
	_, err := s.CreateTrip(ctx, &models.Trip{UserID: "u2", Destination: "elsewhere"})
	require.NoError(t, err)

	trips, err := s.ListTrips(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, trips, 3)
	require.Equal(t, "2025-09-01", trips[0].Destination)
	require.Equal(t, "2025-03-01", trips[2].Destination)

	empty, err := s.ListTrips(ctx, "u3")
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)
}

func TestMemoryStore_Bookings(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	b := &models.Booking{UserID: "u1", BookingReference: "BOOK_1_ABCDEF", Status: models.BookingConfirmed}
	id, err := s.CreateBooking(ctx, b)
	require.NoError(t, err)

	_, err = s.CreateBooking(ctx, &models.Booking{UserID: "u2", BookingReference: "BOOK_1_ABCDEF"})
	require.ErrorIs(t, err, errs.ErrDuplicateReference)

	found, err := s.FindBooking(ctx, "u1", id)
	require.NoError(t, err)
	require.Equal(t, "BOOK_1_ABCDEF", found.BookingReference)
	_, err = s.FindBooking(ctx, "u2", id)
	require.ErrorIs(t, err, errs.ErrNotFound)

	_, err = s.UpdateBooking(ctx, "u2", id, models.BookingPatch{Status: models.BookingCancelled})
	require.ErrorIs(t, err, errs.ErrNotFound)

	now := time.Now().UTC()
	updated, err := s.UpdateBooking(ctx, "u1", id, models.BookingPatch{Status: models.BookingCancelled, UpdatedAt: now})
	require.NoError(t, err)
	require.Equal(t, models.BookingCancelled, updated.Status)
	require.Equal(t, now, updated.UpdatedAt)
}

func TestMemoryStore_ConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.CreateTrip(ctx, &models.Trip{UserID: "u1"})
		}()
	}
	wg.Wait()

	trips, err := s.ListTrips(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, trips, 50)
}
