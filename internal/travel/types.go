package travel

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type Address struct {
	CountryCode string `json:"countryCode,omitempty"`
	CountryName string `json:"countryName,omitempty"`
	StateCode   string `json:"stateCode,omitempty"`
	CityName    string `json:"cityName,omitempty"`
	CityCode    string `json:"cityCode,omitempty"`
}

type GeoCode struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Location is a city or airport from the reference-data API.
type Location struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	IATACode       string   `json:"iataCode"`
	SubType        string   `json:"subType"`
	DetailedName   string   `json:"detailedName,omitempty"`
	TimeZoneOffset string   `json:"timeZoneOffset,omitempty"`
	Address        Address  `json:"address"`
	GeoCode        *GeoCode `json:"geoCode,omitempty"`
}

// Meta is the paging block of a list response.
type Meta struct {
	Count int               `json:"count"`
	Links map[string]string `json:"links,omitempty"`
}

// Flight is the normalized view of a flight offer. Raw keeps the upstream
// offer for clients that need more than the known fields.
type Flight struct {
	ID         string          `json:"id"`
	Airline    string          `json:"airline"`
	From       string          `json:"from"`
	To         string          `json:"to"`
	Date       string          `json:"date"`
	DepartTime string          `json:"departTime"`
	ArriveTime string          `json:"arriveTime"`
	Duration   string          `json:"duration"`
	Price      float64         `json:"price"`
	Currency   string          `json:"currency,omitempty"`
	Class      string          `json:"class"`
	Stops      string          `json:"stops"`
	Raw        json.RawMessage `json:"raw,omitempty"`
}

type Price struct {
	Currency string `json:"currency"`
	Total    string `json:"total"`
}

// Amount parses the decimal string total.
func (p Price) Amount() (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(p.Total), 64)
}

type HotelOffer struct {
	ID           string `json:"id"`
	CheckInDate  string `json:"checkInDate"`
	CheckOutDate string `json:"checkOutDate"`
	Price        Price  `json:"price"`
	RoomType     string `json:"roomType,omitempty"`
}

type Hotel struct {
	HotelID  string          `json:"hotelId"`
	Name     string          `json:"name"`
	CityCode string          `json:"cityCode"`
	Rating   string          `json:"rating,omitempty"`
	Offers   []HotelOffer    `json:"offers"`
	Raw      json.RawMessage `json:"raw,omitempty"`
}

// FirstOfferTotal is the stay total of the first offer, 0 when unpriced.
func (h Hotel) FirstOfferTotal() float64 {
	if len(h.Offers) == 0 {
		return 0
	}
	v, err := h.Offers[0].Price.Amount()
	if err != nil {
		return 0
	}
	return v
}

// Activity is a point of interest.
type Activity struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Rank     int      `json:"rank,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	GeoCode  *GeoCode `json:"geoCode,omitempty"`
}

func (a Activity) hasTag(tag string) bool {
	for _, t := range a.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Wire shapes. Only the fields the normalized types and the budget read are
// declared; everything else survives in Raw.

type locationsResponse struct {
	Data []Location `json:"data"`
	Meta Meta       `json:"meta"`
}

type flightOffersResponse struct {
	Data         []json.RawMessage `json:"data"`
	Dictionaries struct {
		Carriers map[string]string `json:"carriers"`
	} `json:"dictionaries"`
}

type flightEndpoint struct {
	IATACode string `json:"iataCode"`
	At       string `json:"at"`
}

type flightOffer struct {
	ID          string `json:"id"`
	Itineraries []struct {
		Duration string `json:"duration"`
		Segments []struct {
			Departure   flightEndpoint `json:"departure"`
			Arrival     flightEndpoint `json:"arrival"`
			CarrierCode string         `json:"carrierCode"`
		} `json:"segments"`
	} `json:"itineraries"`
	Price                  Price    `json:"price"`
	ValidatingAirlineCodes []string `json:"validatingAirlineCodes"`
	TravelerPricings       []struct {
		FareDetailsBySegment []struct {
			Cabin string `json:"cabin"`
		} `json:"fareDetailsBySegment"`
	} `json:"travelerPricings"`
}

// toFlight validates the fields the budget reads (price, first itinerary).
func (o flightOffer) toFlight(raw json.RawMessage, carriers map[string]string) (Flight, error) {
	if len(o.Itineraries) == 0 || len(o.Itineraries[0].Segments) == 0 {
		return Flight{}, fmt.Errorf("offer %s: no itinerary", o.ID)
	}
	price, err := o.Price.Amount()
	if err != nil {
		return Flight{}, fmt.Errorf("offer %s: price: %w", o.ID, err)
	}

	it := o.Itineraries[0]
	first, last := it.Segments[0], it.Segments[len(it.Segments)-1]

	code := first.CarrierCode
	if len(o.ValidatingAirlineCodes) > 0 {
		code = o.ValidatingAirlineCodes[0]
	}
	airline := code
	if name, ok := carriers[code]; ok && name != "" {
		airline = titleCase(name)
	}

	class := "Economy"
	if len(o.TravelerPricings) > 0 && len(o.TravelerPricings[0].FareDetailsBySegment) > 0 {
		if c := o.TravelerPricings[0].FareDetailsBySegment[0].Cabin; c != "" {
			class = titleCase(strings.ReplaceAll(c, "_", " "))
		}
	}

	return Flight{
		ID:         o.ID,
		Airline:    airline,
		From:       first.Departure.IATACode,
		To:         last.Arrival.IATACode,
		Date:       datePart(first.Departure.At),
		DepartTime: clockPart(first.Departure.At),
		ArriveTime: clockPart(last.Arrival.At),
		Duration:   humanDuration(it.Duration),
		Price:      price,
		Currency:   o.Price.Currency,
		Class:      class,
		Stops:      stopsLabel(len(it.Segments) - 1),
		Raw:        raw,
	}, nil
}

type hotelsByCityResponse struct {
	Data []struct {
		HotelID string `json:"hotelId"`
		Name    string `json:"name"`
	} `json:"data"`
}

type hotelOffersResponse struct {
	Data []json.RawMessage `json:"data"`
}

type hotelOffersEntry struct {
	Hotel struct {
		HotelID  string `json:"hotelId"`
		Name     string `json:"name"`
		CityCode string `json:"cityCode"`
		Rating   string `json:"rating"`
	} `json:"hotel"`
	Offers []struct {
		ID           string `json:"id"`
		CheckInDate  string `json:"checkInDate"`
		CheckOutDate string `json:"checkOutDate"`
		Price        Price  `json:"price"`
		Room         struct {
			TypeEstimated struct {
				Category string `json:"category"`
			} `json:"typeEstimated"`
		} `json:"room"`
	} `json:"offers"`
}

func (e hotelOffersEntry) toHotel(raw json.RawMessage) Hotel {
	h := Hotel{
		HotelID:  e.Hotel.HotelID,
		Name:     e.Hotel.Name,
		CityCode: e.Hotel.CityCode,
		Rating:   e.Hotel.Rating,
		Offers:   make([]HotelOffer, 0, len(e.Offers)),
		Raw:      raw,
	}
	for _, o := range e.Offers {
		h.Offers = append(h.Offers, HotelOffer{
			ID:           o.ID,
			CheckInDate:  o.CheckInDate,
			CheckOutDate: o.CheckOutDate,
			Price:        o.Price,
			RoomType:     o.Room.TypeEstimated.Category,
		})
	}
	return h
}

type poisResponse struct {
	Data []Activity `json:"data"`
}

func datePart(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

func clockPart(ts string) string {
	if len(ts) >= 16 {
		return ts[11:16]
	}
	return ""
}

// humanDuration turns an ISO-8601 duration such as PT2H15M into "2h 15m".
func humanDuration(iso string) string {
	s := strings.TrimPrefix(strings.ToUpper(iso), "PT")
	if s == "" || s == strings.ToUpper(iso) {
		return iso
	}
	var parts []string
	num := ""
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			num += string(r)
		case r == 'H' || r == 'M':
			if num != "" {
				parts = append(parts, num+strings.ToLower(string(r)))
			}
			num = ""
		default:
			num = ""
		}
	}
	if len(parts) == 0 {
		return iso
	}
	return strings.Join(parts, " ")
}

func stopsLabel(n int) string {
	switch {
	case n <= 0:
		return "Non-stop"
	case n == 1:
		return "1 stop"
	default:
		return fmt.Sprintf("%d stops", n)
	}
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
