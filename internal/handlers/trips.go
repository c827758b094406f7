package handlers

import (
	"net/http"
	"time"

	"github.com/AnshRaj112/natpac-travel-backend/internal/errs"
	"github.com/AnshRaj112/natpac-travel-backend/internal/middleware"
	"github.com/AnshRaj112/natpac-travel-backend/internal/models"
	"github.com/AnshRaj112/natpac-travel-backend/internal/services"
)

// TripView renders stored dates back in the YYYY-MM-DD form they were sent in.
type TripView struct {
	ID             string    `json:"id"`
	Destination    string    `json:"destination"`
	StartDate      string    `json:"startDate"`
	EndDate        string    `json:"endDate"`
	DurationDays   int       `json:"durationDays"`
	Purpose        string    `json:"purpose"`
	Transportation string    `json:"transportation"`
	Accommodation  string    `json:"accommodation,omitempty"`
	Companions     string    `json:"companions,omitempty"`
	Activities     string    `json:"activities,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	Budget         float64   `json:"budget,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

func tripView(t *models.Trip) TripView {
	return TripView{
		ID:             t.ID,
		Destination:    t.Destination,
		StartDate:      t.StartDate.UTC().Format(models.DateLayout),
		EndDate:        t.EndDate.UTC().Format(models.DateLayout),
		DurationDays:   t.DurationDays(),
		Purpose:        t.Purpose,
		Transportation: t.Transportation,
		Accommodation:  t.Accommodation,
		Companions:     t.Companions,
		Activities:     t.Activities,
		Notes:          t.Notes,
		Budget:         t.Budget,
		CreatedAt:      t.CreatedAt,
	}
}

// ListTrips returns the caller's trips, latest start date first.
func (h *Handler) ListTrips(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		h.fail(w, r, errs.ErrUnauthorized)
		return
	}
	trips, err := h.trips.List(r.Context(), claims.ID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out := make([]TripView, 0, len(trips))
	for i := range trips {
		out = append(out, tripView(&trips[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"trips": out})
}

// CreateTrip records a trip for the caller.
func (h *Handler) CreateTrip(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r.Context())
	if !ok {
		h.fail(w, r, errs.ErrUnauthorized)
		return
	}
	var in services.TripInput
	if err := decodeJSON(r, w, &in); err != nil {
		h.fail(w, r, err)
		return
	}
	trip, err := h.trips.Create(r.Context(), claims.ID, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Trip recorded successfully",
		"tripId":  trip.ID,
	})
}
