package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/AnshRaj112/natpac-travel-backend/internal/handlers"
	"github.com/AnshRaj112/natpac-travel-backend/internal/middleware"
	"github.com/AnshRaj112/natpac-travel-backend/internal/services"
)

// Options wires the router. Nil limiters get the defaults; WindowLimiter is
// only set when Redis is available.
type Options struct {
	Handler        *handlers.Handler
	Tokens         *services.TokenService
	AllowedOrigins []string
	Production     bool
	AuthLimiter    *middleware.IPLimiter
	GlobalLimiter  *middleware.IPLimiter
	WindowLimiter  *middleware.WindowLimiter
	Logger         *zap.Logger
}

func NewRouter(o Options) *chi.Mux {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.AuthLimiter == nil {
		o.AuthLimiter = middleware.NewAuthLimiter()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(o.Logger))
	r.Use(middleware.Recoverer(o.Logger))
	r.Use(middleware.CORS(o.AllowedOrigins))

	// Production: SecurityHeaders → GlobalRateLimit. Redis window limit when available.
	if o.Production {
		if o.GlobalLimiter == nil {
			o.GlobalLimiter = middleware.NewGlobalLimiter()
		}
		r.Use(middleware.SecurityHeaders)
		r.Use(middleware.Limit(o.GlobalLimiter, "Too many requests. Please slow down."))
	}
	if o.WindowLimiter != nil {
		r.Use(o.WindowLimiter.Handler)
	}

	// Health check
	r.Get("/health", handlers.Health)

	SetupRoutes(r, o.Handler, o.Tokens, o.AuthLimiter)
	return r
}

func SetupRoutes(r chi.Router, h *handlers.Handler, tokens *services.TokenService, authLimiter *middleware.IPLimiter) {
	authLimit := middleware.Limit(authLimiter, "Too many login attempts. Please try again later.")
	requireAuth := middleware.RequireAuth(tokens)

	r.Route("/api", func(r chi.Router) {
		// Auth routes
		r.With(authLimit).Post("/auth/register", h.Register)
		r.With(authLimit).Post("/auth/login", h.Login)
		r.With(requireAuth).Post("/auth/consent", h.UpdateConsent)
		r.With(requireAuth).Get("/auth/me", h.Me)

		// Trip and booking routes (owner-scoped)
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/trips", h.ListTrips)
			r.Post("/trips", h.CreateTrip)
			r.Get("/bookings", h.ListBookings)
			r.Post("/bookings", h.CreateBooking)
			r.Put("/bookings", h.UpdateBooking)
			r.Get("/bookings/{bookingID}", h.GetBooking)
		})

		// Travel search routes (degrade to sample data)
		r.Get("/destinations/search", h.SearchDestinations)
		r.Get("/flights", h.SearchFlights)
		r.Get("/hotels", h.SearchHotels)
		r.Get("/activities", h.SearchActivities)
		r.Post("/recommendations", h.Recommendations)
		r.Get("/recommendations/popular", h.PopularDestinations)

		// Status routes
		r.Get("/status", h.Status)
		r.Get("/status/database", h.DatabaseStatus)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Not found"}`))
	})
}
