package services

import (
	"context"
	"strings"
	"time"

	"github.com/AnshRaj112/natpac-travel-backend/internal/models"
	"github.com/AnshRaj112/natpac-travel-backend/internal/store"
	"github.com/AnshRaj112/natpac-travel-backend/pkg/utils"
)

// TripInput is the client's trip submission; dates are YYYY-MM-DD.
type TripInput struct {
	Destination    string   `json:"destination"`
	StartDate      string   `json:"startDate"`
	EndDate        string   `json:"endDate"`
	Purpose        string   `json:"purpose"`
	Transportation string   `json:"transportation"`
	Accommodation  string   `json:"accommodation"`
	Companions     string   `json:"companions"`
	Activities     string   `json:"activities"`
	Notes          string   `json:"notes"`
	Budget         *float64 `json:"budget"`
}

// TripService records trips. Trips are append-only and owner-scoped.
type TripService struct {
	store store.Store
	now   func() time.Time
}

func NewTripService(s store.Store) *TripService {
	return &TripService{store: s, now: time.Now}
}

func (s *TripService) Create(ctx context.Context, ownerID string, in TripInput) (*models.Trip, error) {
	trip, err := buildTrip(ownerID, in, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if _, err := s.store.CreateTrip(ctx, trip); err != nil {
		return nil, unavailable("create trip", err)
	}
	return trip, nil
}

func (s *TripService) List(ctx context.Context, ownerID string) ([]models.Trip, error) {
	trips, err := s.store.ListTrips(ctx, ownerID)
	if err != nil {
		return nil, unavailable("list trips", err)
	}
	return trips, nil
}

func buildTrip(ownerID string, in TripInput, now time.Time) (*models.Trip, error) {
	in.Destination = strings.TrimSpace(in.Destination)
	in.Purpose = strings.TrimSpace(in.Purpose)
	in.Transportation = strings.TrimSpace(in.Transportation)
	if in.Destination == "" || strings.TrimSpace(in.StartDate) == "" || strings.TrimSpace(in.EndDate) == "" ||
		in.Purpose == "" || in.Transportation == "" {
		return nil, utils.Missing("trip", "Destination, start date, end date, purpose, and transportation are required")
	}

	start, err := utils.ParseDate("startDate", in.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := utils.ParseDate("endDate", in.EndDate)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, utils.Invalid("endDate", "End date cannot be before start date")
	}

	trip := &models.Trip{
		UserID:         ownerID,
		Destination:    in.Destination,
		StartDate:      start,
		EndDate:        end,
		Purpose:        in.Purpose,
		Transportation: in.Transportation,
		Accommodation:  strings.TrimSpace(in.Accommodation),
		Companions:     strings.TrimSpace(in.Companions),
		Activities:     strings.TrimSpace(in.Activities),
		Notes:          strings.TrimSpace(in.Notes),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if in.Budget != nil {
		if *in.Budget < 0 {
			return nil, utils.Invalid("budget", "Budget cannot be negative")
		}
		trip.Budget = *in.Budget
	}
	return trip, nil
}
