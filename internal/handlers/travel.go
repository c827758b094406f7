package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/AnshRaj112/natpac-travel-backend/internal/models"
	"github.com/AnshRaj112/natpac-travel-backend/internal/travel"
	"github.com/AnshRaj112/natpac-travel-backend/pkg/utils"
)

const minKeywordLength = 2

// SearchDestinations never fails upstream-side: it answers with sample data
// and fallback=true instead.
func (h *Handler) SearchDestinations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	keyword := strings.TrimSpace(q.Get("keyword"))
	if len([]rune(keyword)) < minKeywordLength {
		writeError(w, http.StatusBadRequest, "Keyword must be at least 2 characters long")
		return
	}
	limit := queryInt(q.Get("limit"), 0)
	writeJSON(w, http.StatusOK, h.travel.SearchDestinations(r.Context(), keyword, limit))
}

type flightSearchParams struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate,omitempty"`
	Adults        int    `json:"adults"`
}

type flightSearchResponse struct {
	Flights      []travel.Flight    `json:"flights"`
	SearchParams flightSearchParams `json:"searchParams"`
	Meta         travel.Meta        `json:"meta"`
	Fallback     bool               `json:"fallback,omitempty"`
	Message      string             `json:"message,omitempty"`
}

// SearchFlights validates the query and returns live or sample offers.
func (h *Handler) SearchFlights(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := flightSearchParams{
		Origin:        strings.ToUpper(strings.TrimSpace(q.Get("origin"))),
		Destination:   strings.ToUpper(strings.TrimSpace(q.Get("destination"))),
		DepartureDate: strings.TrimSpace(q.Get("departureDate")),
		ReturnDate:    strings.TrimSpace(q.Get("returnDate")),
		Adults:        queryInt(q.Get("adults"), 1),
	}
	if p.Origin == "" || p.Destination == "" || p.DepartureDate == "" {
		writeError(w, http.StatusBadRequest, "Origin, destination, and departure date are required")
		return
	}
	if _, err := utils.ParseDate("departureDate", p.DepartureDate); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid departure date format. Use YYYY-MM-DD")
		return
	}
	if p.ReturnDate != "" {
		if _, err := utils.ParseDate("returnDate", p.ReturnDate); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid return date format. Use YYYY-MM-DD")
			return
		}
	}
	if p.Adults < 1 {
		p.Adults = 1
	}

	res := h.travel.SearchFlights(r.Context(), travel.FlightQuery{
		Origin:        p.Origin,
		Destination:   p.Destination,
		DepartureDate: p.DepartureDate,
		ReturnDate:    p.ReturnDate,
		Adults:        p.Adults,
	})
	writeJSON(w, http.StatusOK, flightSearchResponse{
		Flights:      res.Flights,
		SearchParams: p,
		Meta:         travel.Meta{Count: len(res.Flights)},
		Fallback:     res.Fallback,
		Message:      res.Message,
	})
}

// SearchHotels prices hotels in a city for a stay.
func (h *Handler) SearchHotels(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	city := strings.ToUpper(strings.TrimSpace(q.Get("cityCode")))
	if city == "" {
		writeError(w, http.StatusBadRequest, "cityCode, checkIn and checkOut are required")
		return
	}
	in, err := utils.ParseDate("checkIn", q.Get("checkIn"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out, err := utils.ParseDate("checkOut", q.Get("checkOut"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !out.After(in) {
		writeError(w, http.StatusBadRequest, "Check-out must be after check-in")
		return
	}
	res := h.travel.SearchHotels(r.Context(), travel.HotelQuery{
		CityCode: city,
		CheckIn:  in.Format(models.DateLayout),
		CheckOut: out.Format(models.DateLayout),
		Adults:   queryInt(q.Get("adults"), 1),
		Nights:   int(out.Sub(in).Hours() / 24),
	})
	writeJSON(w, http.StatusOK, res)
}

// SearchActivities lists points of interest around a coordinate.
func (h *Handler) SearchActivities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, errLat := strconv.ParseFloat(q.Get("latitude"), 64)
	lon, errLon := strconv.ParseFloat(q.Get("longitude"), 64)
	if errLat != nil || errLon != nil || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		writeError(w, http.StatusBadRequest, "Valid latitude and longitude are required")
		return
	}
	res := h.travel.SearchPointsOfInterest(r.Context(), lat, lon, queryInt(q.Get("radius"), 0))
	writeJSON(w, http.StatusOK, res)
}

type RecommendationRequest struct {
	Destination string             `json:"destination"`
	Origin      string             `json:"origin"`
	StartDate   string             `json:"startDate"`
	EndDate     string             `json:"endDate"`
	Travelers   int                `json:"travelers"`
	Preferences travel.Preferences `json:"preferences"`
}

// Recommendations builds a priced trip plan. Upstream failures produce a
// sample plan, never an error.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	var req RecommendationRequest
	if err := decodeJSON(r, w, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	req.Destination = strings.TrimSpace(req.Destination)
	if req.Destination == "" || strings.TrimSpace(req.StartDate) == "" || strings.TrimSpace(req.EndDate) == "" {
		writeError(w, http.StatusBadRequest, "Destination, start date, and end date are required")
		return
	}
	start, err := utils.ParseDate("startDate", req.StartDate)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	end, err := utils.ParseDate("endDate", req.EndDate)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	now := h.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if start.Before(today) {
		writeError(w, http.StatusBadRequest, "Start date cannot be in the past")
		return
	}
	if !end.After(start) {
		writeError(w, http.StatusBadRequest, "End date must be after start date")
		return
	}
	if req.Travelers < 1 {
		req.Travelers = 1
	}

	rr := travel.RecommendationRequest{
		Destination: req.Destination,
		Origin:      req.Origin,
		StartDate:   start,
		EndDate:     end,
		Travelers:   req.Travelers,
		Preferences: req.Preferences,
	}
	rec := h.travel.GenerateRecommendations(r.Context(), rr)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"data":         rec,
		"generatedAt":  now.Format(time.RFC3339),
		"tripDuration": rr.Days(),
		"travelers":    req.Travelers,
	})
}

// PopularDestinations lists well-known cities with fixed highlights.
func (h *Handler) PopularDestinations(w http.ResponseWriter, r *http.Request) {
	data := h.travel.PopularDestinations(r.Context(), queryInt(r.URL.Query().Get("limit"), 0))
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    data,
		"total":   len(data),
	})
}

func queryInt(s string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return v
}
