package travel

import (
	"fmt"
	"strings"
)

// sampleDestinations backs destination search when the upstream API cannot be
// used. Order is stable so responses are deterministic.
var sampleDestinations = []Location{
	sampleCity("CPAR", "PARIS", "PAR", "FR", "France", 48.85341, 2.3488),
	sampleCity("CLON", "LONDON", "LON", "GB", "United Kingdom", 51.50853, -0.12574),
	sampleCity("CNYC", "NEW YORK", "NYC", "US", "United States of America", 40.71427, -74.00597),
	sampleCity("CTYO", "TOKYO", "TYO", "JP", "Japan", 35.6895, 139.69171),
	sampleCity("CDXB", "DUBAI", "DXB", "AE", "United Arab Emirates", 25.07725, 55.30927),
	sampleCity("CSIN", "SINGAPORE", "SIN", "SG", "Singapore", 1.28967, 103.85007),
	sampleCity("CBCN", "BARCELONA", "BCN", "ES", "Spain", 41.38879, 2.15899),
	sampleCity("CROM", "ROME", "ROM", "IT", "Italy", 41.89193, 12.51133),
	sampleCity("CAMS", "AMSTERDAM", "AMS", "NL", "Netherlands", 52.37403, 4.88969),
	sampleCity("CBKK", "BANGKOK", "BKK", "TH", "Thailand", 13.75398, 100.50144),
	sampleCity("CDEL", "DELHI", "DEL", "IN", "India", 28.65195, 77.23149),
	sampleCity("CBOM", "MUMBAI", "BOM", "IN", "India", 19.07283, 72.88261),
}

func sampleCity(id, name, code, country, countryName string, lat, lon float64) Location {
	return Location{
		ID:           id,
		Name:         name,
		IATACode:     code,
		SubType:      "CITY",
		DetailedName: fmt.Sprintf("%s/%s", name, country),
		Address:      Address{CountryCode: country, CountryName: countryName, CityName: name, CityCode: code},
		GeoCode:      &GeoCode{Latitude: lat, Longitude: lon},
	}
}

// fallbackDestinations filters the sample list by keyword and never returns
// an empty slice.
func fallbackDestinations(keyword string, limit int) []Location {
	k := strings.ToLower(strings.TrimSpace(keyword))
	var matched []Location
	for _, l := range sampleDestinations {
		if k == "" ||
			strings.Contains(strings.ToLower(l.Name), k) ||
			strings.Contains(strings.ToLower(l.Address.CountryName), k) ||
			strings.EqualFold(l.IATACode, k) {
			matched = append(matched, l)
		}
	}
	if len(matched) == 0 {
		matched = sampleDestinations
	}
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return append([]Location(nil), matched...)
}

// fallbackFlights is the two-offer sample schedule.
func fallbackFlights(origin, destination, date string) []Flight {
	return []Flight{
		{
			ID: "mock-1", Airline: "Air Global", From: origin, To: destination, Date: date,
			DepartTime: "08:30", ArriveTime: "10:45", Duration: "2h 15m",
			Price: 299, Currency: "USD", Class: "Economy", Stops: "Non-stop",
		},
		{
			ID: "mock-2", Airline: "SkyWings", From: origin, To: destination, Date: date,
			DepartTime: "14:20", ArriveTime: "16:50", Duration: "2h 30m",
			Price: 349, Currency: "USD", Class: "Economy", Stops: "Non-stop",
		},
	}
}

// fallbackHotels prices three sample hotels for the stay.
func fallbackHotels(cityCode, checkIn, checkOut string, nights int) []Hotel {
	if nights < 1 {
		nights = 1
	}
	type sample struct {
		id, name, rating string
		nightly          float64
	}
	samples := []sample{
		{"MOCK0001", "City Budget Inn", "2", 95},
		{"MOCK0002", "Central Comfort Hotel", "3", 180},
		{"MOCK0003", "Grand Palace Hotel", "5", 320},
	}
	out := make([]Hotel, 0, len(samples))
	for i, s := range samples {
		out = append(out, Hotel{
			HotelID:  s.id,
			Name:     s.name,
			CityCode: cityCode,
			Rating:   s.rating,
			Offers: []HotelOffer{{
				ID:           fmt.Sprintf("mock-offer-%d", i+1),
				CheckInDate:  checkIn,
				CheckOutDate: checkOut,
				Price:        Price{Currency: "USD", Total: fmt.Sprintf("%.2f", s.nightly*float64(nights))},
				RoomType:     "STANDARD_ROOM",
			}},
		})
	}
	return out
}

func fallbackActivities() []Activity {
	return []Activity{
		{ID: "mock-poi-1", Name: "City History Museum", Category: "MUSEUMS", Rank: 1, Tags: []string{"museum", "cultural", "history"}},
		{ID: "mock-poi-2", Name: "Old Town Walking Tour", Category: "HISTORICAL", Rank: 2, Tags: []string{"sightseeing", "cultural"}},
		{ID: "mock-poi-3", Name: "Riverside Kayaking", Category: "OUTDOOR", Rank: 3, Tags: []string{"adventure", "water"}},
		{ID: "mock-poi-4", Name: "Central Market Food Tour", Category: "RESTAURANT", Rank: 4, Tags: []string{"food", "market"}},
		{ID: "mock-poi-5", Name: "Hilltop Hike", Category: "OUTDOOR", Rank: 5, Tags: []string{"adventure", "nature"}},
	}
}

func fallbackAirports(lat, lon float64) []Location {
	return []Location{{
		ID:       "AMOCK",
		Name:     "INTERNATIONAL AIRPORT",
		IATACode: "XXX",
		SubType:  "AIRPORT",
		GeoCode:  &GeoCode{Latitude: lat, Longitude: lon},
	}}
}
