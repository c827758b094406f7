package travel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const (
	defaultDestinationLimit = 20
	maxDestinationLimit     = 50
	maxFlightOffers         = 10
	maxHotels               = 20
)

// DestinationResult is a destination search, live or sample.
type DestinationResult struct {
	Destinations []Location `json:"destinations"`
	Meta         Meta       `json:"meta"`
	Fallback     bool       `json:"fallback,omitempty"`
	Message      string     `json:"message,omitempty"`
}

type FlightQuery struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Adults        int
}

type FlightResult struct {
	Flights  []Flight `json:"flights"`
	Fallback bool     `json:"fallback,omitempty"`
	Message  string   `json:"message,omitempty"`
}

type HotelQuery struct {
	CityCode string
	CheckIn  string
	CheckOut string
	Adults   int
	Nights   int
}

type HotelResult struct {
	Hotels   []Hotel `json:"hotels"`
	Fallback bool    `json:"fallback,omitempty"`
}

type ActivityResult struct {
	Activities []Activity `json:"activities"`
	Fallback   bool       `json:"fallback,omitempty"`
}

type AirportResult struct {
	Airports []Location `json:"airports"`
	Fallback bool       `json:"fallback,omitempty"`
}

// SearchDestinations looks up cities and airports by keyword. Live results are
// cached; any failure yields the sample list.
func (g *Gateway) SearchDestinations(ctx context.Context, keyword string, limit int) DestinationResult {
	limit = clampLimit(limit)
	locs, meta, err := g.fetchLocations(ctx, keyword, limit)
	if err != nil {
		g.degrade("search destinations", err)
		sample := fallbackDestinations(keyword, limit)
		return DestinationResult{
			Destinations: sample,
			Meta:         Meta{Count: len(sample)},
			Fallback:     true,
			Message:      "Using sample destination data",
		}
	}
	return DestinationResult{Destinations: locs, Meta: meta}
}

// SearchFlights returns priced offers, or the two-offer sample schedule.
func (g *Gateway) SearchFlights(ctx context.Context, q FlightQuery) FlightResult {
	flights, err := g.fetchFlights(ctx, q)
	if err != nil {
		g.degrade("search flights", err)
		return FlightResult{
			Flights:  fallbackFlights(q.Origin, q.Destination, q.DepartureDate),
			Fallback: true,
			Message:  "Using sample flight data",
		}
	}
	return FlightResult{Flights: flights}
}

func (g *Gateway) SearchHotels(ctx context.Context, q HotelQuery) HotelResult {
	hotels, err := g.fetchHotels(ctx, q)
	if err != nil {
		g.degrade("search hotels", err)
		return HotelResult{Hotels: fallbackHotels(q.CityCode, q.CheckIn, q.CheckOut, q.Nights), Fallback: true}
	}
	return HotelResult{Hotels: hotels}
}

func (g *Gateway) SearchPointsOfInterest(ctx context.Context, lat, lon float64, radiusKM int) ActivityResult {
	acts, err := g.fetchPOIs(ctx, lat, lon, radiusKM)
	if err != nil {
		g.degrade("search points of interest", err)
		return ActivityResult{Activities: fallbackActivities(), Fallback: true}
	}
	return ActivityResult{Activities: acts}
}

func (g *Gateway) SearchAirports(ctx context.Context, lat, lon float64) AirportResult {
	airports, err := g.fetchAirports(ctx, lat, lon)
	if err != nil {
		g.degrade("search airports", err)
		return AirportResult{Airports: fallbackAirports(lat, lon), Fallback: true}
	}
	return AirportResult{Airports: airports}
}

func (g *Gateway) fetchLocations(ctx context.Context, keyword string, limit int) ([]Location, Meta, error) {
	keyword = strings.TrimSpace(keyword)
	key := fmt.Sprintf("destinations:%s:%d", strings.ToLower(keyword), limit)

	var cached locationsResponse
	if found, err := g.cache.Get(ctx, key, &cached); err != nil {
		g.log.Debug("destination cache read failed", zap.Error(err))
	} else if found {
		return cached.Data, cached.Meta, nil
	}

	params := url.Values{
		"subType":     {"CITY,AIRPORT"},
		"page[limit]": {strconv.Itoa(limit)},
	}
	if keyword != "" {
		params.Set("keyword", strings.ToUpper(keyword))
	}
	var resp locationsResponse
	if err := g.getJSON(ctx, "/v1/reference-data/locations", params, &resp); err != nil {
		return nil, Meta{}, err
	}
	if resp.Data == nil {
		resp.Data = []Location{}
	}
	if resp.Meta.Count == 0 {
		resp.Meta.Count = len(resp.Data)
	}

	if err := g.cache.Set(ctx, key, resp, 0); err != nil {
		g.log.Debug("destination cache write failed", zap.Error(err))
	}
	return resp.Data, resp.Meta, nil
}

func (g *Gateway) fetchFlights(ctx context.Context, q FlightQuery) ([]Flight, error) {
	adults := q.Adults
	if adults < 1 {
		adults = 1
	}
	params := url.Values{
		"originLocationCode":      {strings.ToUpper(q.Origin)},
		"destinationLocationCode": {strings.ToUpper(q.Destination)},
		"departureDate":           {q.DepartureDate},
		"adults":                  {strconv.Itoa(adults)},
		"max":                     {strconv.Itoa(maxFlightOffers)},
	}
	if q.ReturnDate != "" {
		params.Set("returnDate", q.ReturnDate)
	}

	var resp flightOffersResponse
	if err := g.getJSON(ctx, "/v2/shopping/flight-offers", params, &resp); err != nil {
		return nil, err
	}
	flights := make([]Flight, 0, len(resp.Data))
	for _, raw := range resp.Data {
		var offer flightOffer
		if err := json.Unmarshal(raw, &offer); err != nil {
			g.log.Debug("skipping undecodable flight offer", zap.Error(err))
			continue
		}
		f, err := offer.toFlight(raw, resp.Dictionaries.Carriers)
		if err != nil {
			g.log.Debug("skipping flight offer", zap.Error(err))
			continue
		}
		flights = append(flights, f)
	}
	return flights, nil
}

func (g *Gateway) fetchHotels(ctx context.Context, q HotelQuery) ([]Hotel, error) {
	var byCity hotelsByCityResponse
	if err := g.getJSON(ctx, "/v1/reference-data/locations/hotels/by-city",
		url.Values{"cityCode": {strings.ToUpper(q.CityCode)}}, &byCity); err != nil {
		return nil, err
	}
	if len(byCity.Data) == 0 {
		return nil, errors.New("no hotels in city")
	}

	ids := make([]string, 0, maxHotels)
	for _, h := range byCity.Data {
		if len(ids) == maxHotels {
			break
		}
		ids = append(ids, h.HotelID)
	}
	adults := q.Adults
	if adults < 1 {
		adults = 1
	}
	params := url.Values{
		"hotelIds":     {strings.Join(ids, ",")},
		"adults":       {strconv.Itoa(adults)},
		"checkInDate":  {q.CheckIn},
		"checkOutDate": {q.CheckOut},
		"roomQuantity": {"1"},
	}
	var offers hotelOffersResponse
	if err := g.getJSON(ctx, "/v3/shopping/hotel-offers", params, &offers); err != nil {
		return nil, err
	}

	hotels := make([]Hotel, 0, len(offers.Data))
	for _, raw := range offers.Data {
		var entry hotelOffersEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			continue
		}
		hotels = append(hotels, entry.toHotel(raw))
	}
	return hotels, nil
}

func (g *Gateway) fetchPOIs(ctx context.Context, lat, lon float64, radiusKM int) ([]Activity, error) {
	if radiusKM <= 0 {
		radiusKM = 5
	}
	params := url.Values{
		"latitude":    {strconv.FormatFloat(lat, 'f', -1, 64)},
		"longitude":   {strconv.FormatFloat(lon, 'f', -1, 64)},
		"radius":      {strconv.Itoa(radiusKM)},
		"page[limit]": {"10"},
	}
	var resp poisResponse
	if err := g.getJSON(ctx, "/v1/reference-data/locations/pois", params, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		resp.Data = []Activity{}
	}
	return resp.Data, nil
}

func (g *Gateway) fetchAirports(ctx context.Context, lat, lon float64) ([]Location, error) {
	params := url.Values{
		"latitude":    {strconv.FormatFloat(lat, 'f', -1, 64)},
		"longitude":   {strconv.FormatFloat(lon, 'f', -1, 64)},
		"radius":      {"500"},
		"page[limit]": {"5"},
		"sort":        {"relevance"},
	}
	var resp locationsResponse
	if err := g.getJSON(ctx, "/v1/reference-data/locations/airports", params, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		resp.Data = []Location{}
	}
	return resp.Data, nil
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultDestinationLimit
	case limit > maxDestinationLimit:
		return maxDestinationLimit
	default:
		return limit
	}
}
