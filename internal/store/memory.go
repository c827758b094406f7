package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AnshRaj112/natpac-travel-backend/internal/errs"
	"github.com/AnshRaj112/natpac-travel-backend/internal/models"
)

// DemoPassword is the only password accepted by login while the primary store
// is unreachable.
const DemoPassword = "password123"

// MemoryStore is a mutex-guarded in-process Store.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]*models.User
	byEmail  map[string]string
	trips    map[string]*models.Trip
	bookings map[string]*models.Booking
	refs     map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]*models.User),
		byEmail:  make(map[string]string),
		trips:    make(map[string]*models.Trip),
		bookings: make(map[string]*models.Booking),
		refs:     make(map[string]string),
	}
}

// NewFallbackStore returns a MemoryStore seeded with the demo account, two
// trips and two bookings.
func NewFallbackStore() *MemoryStore {
	s := NewMemoryStore()

	userCreated := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.putUser(&models.User{
		ID:        "demo-user-1",
		Name:      "Demo User",
		Email:     "demo@example.com",
		Consent:   models.BoolPtr(true),
		CreatedAt: userCreated,
		UpdatedAt: userCreated,
		// No stored hash: fallback login checks DemoPassword directly.
	})

	day := func(s string) time.Time {
		t, _ := time.Parse(models.DateLayout, s)
		return t
	}
	s.trips["demo-trip-1"] = &models.Trip{
		ID: "demo-trip-1", UserID: "demo-user-1",
		Destination: "Paris, France", StartDate: day("2025-10-15"), EndDate: day("2025-10-22"),
		Purpose: "leisure", Transportation: "flight", Accommodation: "hotel", Budget: 2000,
		Notes:     "Demo trip to Paris for vacation",
		CreatedAt: day("2025-09-01"), UpdatedAt: day("2025-09-01"),
	}
	s.trips["demo-trip-2"] = &models.Trip{
		ID: "demo-trip-2", UserID: "demo-user-1",
		Destination: "Tokyo, Japan", StartDate: day("2025-12-01"), EndDate: day("2025-12-10"),
		Purpose: "business", Transportation: "flight", Accommodation: "hotel", Budget: 3500,
		Notes:     "Business trip to Tokyo",
		CreatedAt: day("2025-09-02"), UpdatedAt: day("2025-09-02"),
	}

	booked := day("2025-09-01")
	s.putBooking(&models.Booking{
		ID: "demo-booking-1", UserID: "demo-user-1",
		Items: []models.CartItem{{
			ID: "demo-flight-1", Type: models.ItemFlight, Name: "Air Global DEL-CDG", Price: 599,
			Flight: &models.FlightItem{Airline: "Air Global", From: "DEL", To: "CDG", Date: "2025-10-15", DepartTime: "08:30", ArriveTime: "14:45"},
		}},
		TotalAmount: 599, BookingType: "flight",
		Status: models.BookingConfirmed, PaymentStatus: models.PaymentPaid,
		BookingReference: "FL123456", CreatedAt: booked, UpdatedAt: booked,
	})
	s.putBooking(&models.Booking{
		ID: "demo-booking-2", UserID: "demo-user-1",
		Items: []models.CartItem{{
			ID: "demo-hotel-1", Type: models.ItemHotel, Name: "Grand Palace Hotel Paris", Price: 1400,
			Hotel: &models.HotelItem{Location: "Paris, France", CheckIn: "2025-10-15", CheckOut: "2025-10-22", Rooms: 1, Guests: 2, Nights: 7},
		}},
		TotalAmount: 1400, BookingType: "hotel",
		Status: models.BookingConfirmed, PaymentStatus: models.PaymentPaid,
		BookingReference: "HT789012", CreatedAt: booked, UpdatedAt: booked,
	})
	return s
}

func (s *MemoryStore) putUser(u *models.User) {
	s.users[u.ID] = u
	s.byEmail[u.Email] = u.ID
}

func (s *MemoryStore) putBooking(b *models.Booking) {
	s.bookings[b.ID] = b
	s.refs[b.BookingReference] = b.ID
}

func (s *MemoryStore) CreateUser(_ context.Context, u *models.User) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[u.Email]; ok {
		return "", errs.ErrDuplicateEmail
	}
	u.ID = uuid.NewString()
	cp := *u
	s.putUser(&cp)
	return u.ID, nil
}

func (s *MemoryStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cp := *s.users[id]
	return &cp, nil
}

func (s *MemoryStore) FindUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *MemoryStore) SetConsent(_ context.Context, userID string, consent bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return errs.ErrNotFound
	}
	if u.Consent != nil && *u.Consent == consent {
		return nil
	}
	u.Consent = models.BoolPtr(consent)
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *MemoryStore) CreateTrip(_ context.Context, t *models.Trip) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = uuid.NewString()
	cp := *t
	s.trips[t.ID] = &cp
	return t.ID, nil
}

func (s *MemoryStore) ListTrips(_ context.Context, userID string) ([]models.Trip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Trip, 0)
	for _, t := range s.trips {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].StartDate.After(out[j].StartDate)
	})
	return out, nil
}

func (s *MemoryStore) CreateBooking(_ context.Context, b *models.Booking) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.refs[b.BookingReference]; ok {
		return "", errs.ErrDuplicateReference
	}
	b.ID = uuid.NewString()
	cp := *b
	cp.Items = append([]models.CartItem(nil), b.Items...)
	s.putBooking(&cp)
	return b.ID, nil
}

func (s *MemoryStore) ListBookings(_ context.Context, userID string) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Booking, 0)
	for _, b := range s.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) FindBooking(_ context.Context, userID, bookingID string) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[bookingID]
	if !ok || b.UserID != userID {
		return nil, errs.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *MemoryStore) UpdateBooking(_ context.Context, userID, bookingID string, patch models.BookingPatch) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[bookingID]
	if !ok || b.UserID != userID {
		return nil, errs.ErrNotFound
	}
	b.Status = patch.Status
	if patch.PaymentStatus != "" {
		b.PaymentStatus = patch.PaymentStatus
	}
	b.UpdatedAt = patch.UpdatedAt
	cp := *b
	return &cp, nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }
