package travel

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// Flat per-unit costs used by the budget estimate, in USD.
const (
	ActivityFee = 50.0
	DailyFood   = 75.0
)

// Preferences narrow the recommended hotels and activities.
type Preferences struct {
	Budget      string `json:"budget,omitempty"`      // "budget" | "luxury" | anything else
	TravelStyle string `json:"travelStyle,omitempty"` // "adventure" | "cultural" | anything else
}

type RecommendationRequest struct {
	Destination string
	Origin      string
	StartDate   time.Time
	EndDate     time.Time
	Travelers   int
	Preferences Preferences
}

// Days is the trip length, rounded up to whole days.
func (r RecommendationRequest) Days() int {
	return int(math.Ceil(r.EndDate.Sub(r.StartDate).Hours() / 24))
}

type Budget struct {
	Flights       float64 `json:"flights"`
	Accommodation float64 `json:"accommodation"`
	Activities    float64 `json:"activities"`
	Food          float64 `json:"food"`
	Total         float64 `json:"total"`
	Currency      string  `json:"currency"`
}

type Recommendation struct {
	Destination      Location   `json:"destination"`
	Origin           string     `json:"origin"`
	DestinationCode  string     `json:"destinationAirport"`
	Flights          []Flight   `json:"flights"`
	Hotels           []Hotel    `json:"hotels"`
	Activities       []Activity `json:"activities"`
	EstimatedBudget  Budget     `json:"estimatedBudget"`
	BudgetPreference string     `json:"budgetPreference,omitempty"`
	TravelStyle      string     `json:"travelStyle,omitempty"`
	Fallback         bool       `json:"fallback,omitempty"`
}

// GenerateRecommendations composes destination lookup, nearby airport, then
// flights, hotels and points of interest in parallel, and prices the trip.
// If any step fails the whole result is replaced by the sample bundle.
func (g *Gateway) GenerateRecommendations(ctx context.Context, req RecommendationRequest) Recommendation {
	if req.Travelers < 1 {
		req.Travelers = 1
	}
	if strings.TrimSpace(req.Origin) == "" {
		req.Origin = g.defaultOrigin
	}
	req.Origin = strings.ToUpper(strings.TrimSpace(req.Origin))

	rec, err := g.liveRecommendation(ctx, req)
	if err != nil {
		g.degrade("recommendations", err)
		rec = mockRecommendation(req)
	}
	applyPreferences(&rec, req.Preferences, req.Days())
	return rec
}

func (g *Gateway) liveRecommendation(ctx context.Context, req RecommendationRequest) (Recommendation, error) {
	days := req.Days()
	checkIn := req.StartDate.Format(dateLayout)
	checkOut := req.EndDate.Format(dateLayout)

	locs, _, err := g.fetchLocations(ctx, req.Destination, 1)
	if err != nil {
		return Recommendation{}, fmt.Errorf("destination lookup: %w", err)
	}
	if len(locs) == 0 || locs[0].GeoCode == nil {
		return Recommendation{}, errors.New("destination lookup: no match")
	}
	dest := locs[0]

	airports, err := g.fetchAirports(ctx, dest.GeoCode.Latitude, dest.GeoCode.Longitude)
	if err != nil {
		return Recommendation{}, fmt.Errorf("nearby airport: %w", err)
	}
	if len(airports) == 0 {
		return Recommendation{}, errors.New("nearby airport: none found")
	}
	airport := airports[0].IATACode

	cityCode := dest.IATACode
	if dest.Address.CityCode != "" {
		cityCode = dest.Address.CityCode
	}

	var (
		flights    []Flight
		hotels     []Hotel
		activities []Activity
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		flights, err = g.fetchFlights(egCtx, FlightQuery{
			Origin: req.Origin, Destination: airport, DepartureDate: checkIn, ReturnDate: checkOut, Adults: req.Travelers,
		})
		if err == nil && len(flights) == 0 {
			err = errors.New("no flight offers")
		}
		return wrapStep("flights", err)
	})
	eg.Go(func() error {
		var err error
		hotels, err = g.fetchHotels(egCtx, HotelQuery{
			CityCode: cityCode, CheckIn: checkIn, CheckOut: checkOut, Adults: req.Travelers, Nights: days,
		})
		if err == nil && len(hotels) == 0 {
			err = errors.New("no hotel offers")
		}
		return wrapStep("hotels", err)
	})
	eg.Go(func() error {
		var err error
		activities, err = g.fetchPOIs(egCtx, dest.GeoCode.Latitude, dest.GeoCode.Longitude, 5)
		return wrapStep("points of interest", err)
	})
	if err := eg.Wait(); err != nil {
		return Recommendation{}, err
	}

	return Recommendation{
		Destination:     dest,
		Origin:          req.Origin,
		DestinationCode: airport,
		Flights:         flights,
		Hotels:          hotels,
		Activities:      activities,
		EstimatedBudget: EstimateBudget(flights, hotels, activities, days),
	}, nil
}

func wrapStep(step string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", step, err)
}

// EstimateBudget prices a trip: the cheapest hotel's nightly rate for every
// night, a flat fee per activity, a flat daily food allowance and the cheapest
// fare. Hotel offer totals cover the whole stay.
func EstimateBudget(flights []Flight, hotels []Hotel, activities []Activity, days int) Budget {
	if days < 1 {
		days = 1
	}
	nights := days

	cheapestFare := 0.0
	for i, f := range flights {
		if i == 0 || f.Price < cheapestFare {
			cheapestFare = f.Price
		}
	}

	cheapestStay := 0.0
	found := false
	for _, h := range hotels {
		total := h.FirstOfferTotal()
		if total <= 0 {
			continue
		}
		if !found || total < cheapestStay {
			cheapestStay = total
			found = true
		}
	}
	nightly := cheapestStay / float64(nights)

	b := Budget{
		Flights:       round2(cheapestFare),
		Accommodation: round2(nightly * float64(nights)),
		Activities:    ActivityFee * float64(len(activities)),
		Food:          DailyFood * float64(days),
		Currency:      "USD",
	}
	b.Total = round2(b.Flights + b.Accommodation + b.Activities + b.Food)
	return b
}

// applyPreferences filters hotels by nightly rate and activities by style.
func applyPreferences(rec *Recommendation, p Preferences, days int) {
	if days < 1 {
		days = 1
	}
	if p.Budget != "" {
		rec.BudgetPreference = p.Budget
		switch p.Budget {
		case "budget":
			rec.Hotels = filterHotels(rec.Hotels, func(nightly float64) bool { return nightly < 150 }, days)
		case "luxury":
			rec.Hotels = filterHotels(rec.Hotels, func(nightly float64) bool { return nightly > 200 }, days)
		}
	}
	if p.TravelStyle != "" {
		rec.TravelStyle = p.TravelStyle
		switch p.TravelStyle {
		case "adventure":
			rec.Activities = filterActivities(rec.Activities, func(a Activity) bool {
				return a.Category == "OUTDOOR" || a.hasTag("adventure")
			})
		case "cultural":
			rec.Activities = filterActivities(rec.Activities, func(a Activity) bool {
				return a.Category == "MUSEUMS" || a.Category == "HISTORICAL" || a.hasTag("cultural")
			})
		}
	}
}

func filterHotels(hotels []Hotel, keep func(nightly float64) bool, nights int) []Hotel {
	out := make([]Hotel, 0, len(hotels))
	for _, h := range hotels {
		if keep(h.FirstOfferTotal() / float64(nights)) {
			out = append(out, h)
		}
	}
	return out
}

func filterActivities(acts []Activity, keep func(Activity) bool) []Activity {
	out := make([]Activity, 0, len(acts))
	for _, a := range acts {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}

// mockRecommendation is the single sample bundle served when any live step fails.
func mockRecommendation(req RecommendationRequest) Recommendation {
	days := req.Days()
	if days < 1 {
		days = 1
	}
	name := strings.ToUpper(strings.TrimSpace(req.Destination))
	dest := Location{ID: "CMOCK", Name: name, IATACode: "XXX", SubType: "CITY", Address: Address{CityName: name}}
	for _, l := range sampleDestinations {
		if strings.EqualFold(l.Name, name) || strings.EqualFold(l.IATACode, name) {
			dest = l
			break
		}
	}

	checkIn := req.StartDate.Format(dateLayout)
	checkOut := req.EndDate.Format(dateLayout)
	flights := fallbackFlights(req.Origin, dest.IATACode, checkIn)
	hotels := fallbackHotels(dest.IATACode, checkIn, checkOut, days)
	activities := fallbackActivities()

	return Recommendation{
		Destination:     dest,
		Origin:          req.Origin,
		DestinationCode: dest.IATACode,
		Flights:         flights,
		Hotels:          hotels,
		Activities:      activities,
		EstimatedBudget: EstimateBudget(flights, hotels, activities, days),
		Fallback:        true,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

const dateLayout = "2006-01-02"
