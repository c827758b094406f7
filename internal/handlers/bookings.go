package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/AnshRaj112/natpac-travel-backend/internal/errs"
	"github.com/AnshRaj112/natpac-travel-backend/internal/middleware"
	"github.com/AnshRaj112/natpac-travel-backend/internal/models"
	"github.com/AnshRaj112/natpac-travel-backend/internal/services"
)

type UpdateBookingRequest struct {
	BookingID string `json:"bookingId"`
	Status    string `json:"status"`
}

// ListBookings returns the caller's bookings, newest first.
func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		h.fail(w, r, errs.ErrUnauthorized)
		return
	}
	bookings, err := h.bookings.List(r.Context(), claims.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

// GetBooking returns one of the caller's bookings by id.
func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		h.fail(w, r, errs.ErrUnauthorized)
		return
	}
	b, err := h.bookings.Get(r.Context(), claims.ID, chi.URLParam(r, "bookingID"))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Booking not found")
			return
		}
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// CreateBooking checks out the cart. Payment is simulated.
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		h.fail(w, r, errs.ErrUnauthorized)
		return
	}
	var in services.BookingInput
	if err := decodeJSON(r, w, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	b, err := h.bookings.Create(r.Context(), claims.ID, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

// UpdateBooking changes the status of one of the caller's bookings. Another
// user's booking is reported as not found.
func (h *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		h.fail(w, r, errs.ErrUnauthorized)
		return
	}
	var req UpdateBookingRequest
	if err := decodeJSON(r, w, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	b, err := h.bookings.UpdateStatus(r.Context(), claims.ID, req.BookingID, req.Status)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Booking not found")
			return
		}
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}
