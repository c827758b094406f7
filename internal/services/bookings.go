package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AnshRaj112/natpac-travel-backend/internal/errs"
	"github.com/AnshRaj112/natpac-travel-backend/internal/models"
	"github.com/AnshRaj112/natpac-travel-backend/internal/store"
	"github.com/AnshRaj112/natpac-travel-backend/pkg/utils"
)

// BookingInput is a checkout request built from the client cart. BookingType
// is derived from the items when the client leaves it empty.
type BookingInput struct {
	Items          []models.CartItem `json:"items"`
	Itinerary      json.RawMessage   `json:"itinerary"`
	TotalAmount    float64           `json:"totalAmount"`
	BookingType    string            `json:"bookingType"`
	PaymentDetails struct {
		Method     string `json:"method"`
		CardNumber string `json:"cardNumber"`
	} `json:"paymentDetails"`
}

const refAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// BookingService simulates checkout: no payment provider is called, every
// booking is confirmed and paid on creation.
type BookingService struct {
	store store.Store
	now   func() time.Time
}

func NewBookingService(s store.Store) *BookingService {
	return &BookingService{store: s, now: time.Now}
}

func (s *BookingService) Create(ctx context.Context, ownerID string, in BookingInput) (*models.Booking, error) {
	if len(in.Items) == 0 {
		return nil, utils.Missing("items", "Cart items are required")
	}
	if in.TotalAmount <= 0 {
		return nil, utils.Invalid("totalAmount", "Total amount must be greater than zero")
	}
	for i := range in.Items {
		if !in.Items[i].Valid() {
			return nil, utils.Invalid("items", fmt.Sprintf("Cart item %d is not valid", i))
		}
	}

	now := s.now().UTC()
	kind := strings.TrimSpace(in.BookingType)
	if kind == "" {
		kind = bookingType(in.Items)
	}
	method := strings.TrimSpace(in.PaymentDetails.Method)
	if method == "" {
		method = "card"
	}
	b := &models.Booking{
		UserID:        ownerID,
		Items:         in.Items,
		Itinerary:     models.Itinerary(in.Itinerary),
		TotalAmount:   in.TotalAmount,
		BookingType:   kind,
		Status:        models.BookingConfirmed,
		PaymentStatus: models.PaymentPaid,
		PaymentDetails: models.PaymentDetails{
			Method:        method,
			CardLast4:     last4(in.PaymentDetails.CardNumber),
			TransactionID: fmt.Sprintf("TXN_%d_%s", now.UnixMilli(), randomToken(9, false)),
			PaidAt:        now,
		},
		BookingReference: fmt.Sprintf("BOOK_%d_%s", now.UnixMilli(), randomToken(6, true)),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if _, err := s.store.CreateBooking(ctx, b); err != nil {
		if errors.Is(err, errs.ErrDuplicateReference) {
			return nil, errs.ErrDuplicateReference
		}
		return nil, unavailable("create booking", err)
	}
	return b, nil
}

func (s *BookingService) List(ctx context.Context, ownerID string) ([]models.Booking, error) {
	out, err := s.store.ListBookings(ctx, ownerID)
	if err != nil {
		return nil, unavailable("list bookings", err)
	}
	return out, nil
}

func (s *BookingService) Get(ctx context.Context, ownerID, bookingID string) (*models.Booking, error) {
	b, err := s.store.FindBooking(ctx, ownerID, bookingID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, unavailable("find booking", err)
	}
	return b, nil
}

// UpdateStatus changes the status of a booking owned by ownerID. Cancelling
// marks the payment refunded.
func (s *BookingService) UpdateStatus(ctx context.Context, ownerID, bookingID, status string) (*models.Booking, error) {
	bookingID = strings.TrimSpace(bookingID)
	status = strings.TrimSpace(status)
	if bookingID == "" || status == "" {
		return nil, utils.Missing("bookingId", "Booking ID and status are required")
	}
	if !models.ValidBookingStatus(status) {
		return nil, utils.Invalid("status", "Unknown booking status")
	}

	patch := models.BookingPatch{Status: status, UpdatedAt: s.now().UTC()}
	if status == models.BookingCancelled {
		patch.PaymentStatus = models.PaymentRefunded
	}
	b, err := s.store.UpdateBooking(ctx, ownerID, bookingID, patch)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, unavailable("update booking", err)
	}
	return b, nil
}

// bookingType is the single item type, or "mixed".
func bookingType(items []models.CartItem) string {
	t := items[0].Type
	for _, it := range items[1:] {
		if it.Type != t {
			return "mixed"
		}
	}
	return string(t)
}

func last4(card string) string {
	digits := make([]byte, 0, len(card))
	for i := 0; i < len(card); i++ {
		if card[i] >= '0' && card[i] <= '9' {
			digits = append(digits, card[i])
		}
	}
	if len(digits) < 4 {
		return ""
	}
	return string(digits[len(digits)-4:])
}

// randomToken maps random uuid bytes onto refAlphabet. Letters are upper case
// only when upper is set. n must not exceed 16.
func randomToken(n int, upper bool) string {
	alphabet := refAlphabet
	if !upper {
		alphabet = refAlphabet + "abcdefghijklmnopqrstuvwxyz"
	}
	id := uuid.New()
	out := make([]byte, n)
	for i := range out {
		out[i] = alphabet[int(id[i])%len(alphabet)]
	}
	return string(out)
}
