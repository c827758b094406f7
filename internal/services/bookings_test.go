package services

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/natpac-travel-backend/internal/errs"
	"github.com/AnshRaj112/natpac-travel-backend/internal/models"
	"github.com/AnshRaj112/natpac-travel-backend/internal/store"
)

func cart() []models.CartItem {
	return []models.CartItem{
		{ID: "f1", Type: models.ItemFlight, Name: "Air Global", Price: 299, Flight: &models.FlightItem{Airline: "Air Global", From: "DEL", To: "CDG", Date: "2025-10-15"}},
		{ID: "h1", Type: models.ItemHotel, Name: "Grand Palace", Price: 700, Hotel: &models.HotelItem{Location: "Paris", CheckIn: "2025-10-15", CheckOut: "2025-10-22"}},
	}
}

func TestBookingService_Create(t *testing.T) {
	ctx := context.Background()
	svc := NewBookingService(store.NewMemoryStore())

	in := BookingInput{Items: cart(), TotalAmount: 999}
	in.PaymentDetails.Method = "card"
	in.PaymentDetails.CardNumber = "4111 1111 1111 1234"

	b, err := svc.Create(ctx, "u1", in)
	require.NoError(t, err)
	require.Regexp(t, regexp.MustCompile(`^BOOK_\d+_[A-Z0-9]{6}$`), b.BookingReference)
	require.Regexp(t, regexp.MustCompile(`^TXN_\d+_[A-Za-z0-9]{9}$`), b.PaymentDetails.TransactionID)
	require.Equal(t, models.BookingConfirmed, b.Status)
	require.Equal(t, models.PaymentPaid, b.PaymentStatus)
	require.Equal(t, "1234", b.PaymentDetails.CardLast4)
	require.Equal(t, "mixed", b.BookingType)

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)

	other, err := svc.List(ctx, "u2")
	require.NoError(t, err)
	require.Empty(t, other)
}

func TestBookingService_CreateValidation(t *testing.T) {
	svc := NewBookingService(store.NewMemoryStore())

	_, err := svc.Create(context.Background(), "u1", BookingInput{TotalAmount: 10})
	require.ErrorIs(t, err, errs.ErrMissingField)

	_, err = svc.Create(context.Background(), "u1", BookingInput{Items: cart(), TotalAmount: 0})
	require.ErrorIs(t, err, errs.ErrInvalidInput)

	bad := []models.CartItem{{ID: "x", Type: models.ItemTrain}}
	_, err = svc.Create(context.Background(), "u1", BookingInput{Items: bad, TotalAmount: 10})
	require.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestBookingService_UpdateStatusIsOwnerScoped(t *testing.T) {
	ctx := context.Background()
	svc := NewBookingService(store.NewMemoryStore())
	b, err := svc.Create(ctx, "u1", BookingInput{Items: cart()[:1], TotalAmount: 299})
	require.NoError(t, err)
	require.Equal(t, "flight", b.BookingType)

	_, err = svc.UpdateStatus(ctx, "u2", b.ID, models.BookingCancelled)
	require.ErrorIs(t, err, errs.ErrNotFound)

	_, err = svc.UpdateStatus(ctx, "u1", b.ID, "teleported")
	require.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = svc.UpdateStatus(ctx, "u1", "", models.BookingCancelled)
	require.ErrorIs(t, err, errs.ErrMissingField)

	updated, err := svc.UpdateStatus(ctx, "u1", b.ID, models.BookingCancelled)
	require.NoError(t, err)
	require.Equal(t, models.BookingCancelled, updated.Status)
	require.Equal(t, models.PaymentRefunded, updated.PaymentStatus)

	got, err := svc.Get(ctx, "u1", b.ID)
	require.NoError(t, err)
	require.Equal(t, models.BookingCancelled, got.Status)
}

func TestBookingService_StoreDown(t *testing.T) {
	svc := NewBookingService(downStore{})
	_, err := svc.Create(context.Background(), "u1", BookingInput{Items: cart(), TotalAmount: 999})
	require.ErrorIs(t, err, errs.ErrUnavailable)
}
