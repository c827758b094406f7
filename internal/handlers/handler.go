// Package handlers is the HTTP surface: request decoding, validation
// messages and the mapping of service errors to status codes.
package handlers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/AnshRaj112/natpac-travel-backend/internal/cache"
	"github.com/AnshRaj112/natpac-travel-backend/internal/services"
	"github.com/AnshRaj112/natpac-travel-backend/internal/travel"
)

// DatabaseProbe is the part of the database connector the status endpoints use.
type DatabaseProbe interface {
	Ping(ctx context.Context) error
	EnsureIndexes(ctx context.Context) error
}

// Deps are the collaborators a Handler serves requests with. Cache is nil
// when Redis is not configured.
type Deps struct {
	Auth     *services.AuthService
	Trips    *services.TripService
	Bookings *services.BookingService
	Travel   *travel.Gateway
	Database DatabaseProbe
	Cache    cache.Cache
	Logger   *zap.Logger
}

type Handler struct {
	auth     *services.AuthService
	trips    *services.TripService
	bookings *services.BookingService
	travel   *travel.Gateway
	db       DatabaseProbe
	cache    cache.Cache
	log      *zap.Logger
	now      func() time.Time
}

func New(d Deps) *Handler {
	log := d.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		auth:     d.Auth,
		trips:    d.Trips,
		bookings: d.Bookings,
		travel:   d.Travel,
		db:       d.Database,
		cache:    d.Cache,
		log:      log,
		now:      time.Now,
	}
}
