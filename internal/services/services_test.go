package services

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/AnshRaj112/natpac-travel-backend/internal/models"
	"github.com/AnshRaj112/natpac-travel-backend/internal/store"
)

// downStore behaves like a primary store whose server cannot be reached.
type downStore struct{}

var errDown = fmt.Errorf("server selection: %w", &net.OpError{Op: "dial", Net: "tcp", Err: fmt.Errorf("connection refused")})

func (downStore) CreateUser(context.Context, *models.User) (string, error) { return "", errDown }
func (downStore) FindUserByEmail(context.Context, string) (*models.User, error) {
	return nil, errDown
}
func (downStore) FindUserByID(context.Context, string) (*models.User, error) { return nil, errDown }
func (downStore) SetConsent(context.Context, string, bool) error             { return errDown }
func (downStore) CreateTrip(context.Context, *models.Trip) (string, error)   { return "", errDown }
func (downStore) ListTrips(context.Context, string) ([]models.Trip, error)   { return nil, errDown }
func (downStore) CreateBooking(context.Context, *models.Booking) (string, error) {
	return "", errDown
}
func (downStore) ListBookings(context.Context, string) ([]models.Booking, error) {
	return nil, errDown
}
func (downStore) FindBooking(context.Context, string, string) (*models.Booking, error) {
	return nil, errDown
}
func (downStore) UpdateBooking(context.Context, string, string, models.BookingPatch) (*models.Booking, error) {
	return nil, errDown
}
func (downStore) Ping(context.Context) error { return errDown }

var _ store.Store = downStore{}

func newTokens() *TokenService {
	return NewTokenService("test-secret", 7*24*time.Hour)
}
