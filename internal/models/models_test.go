package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

func TestConsentState(t *testing.T) {
	u := &User{}
	require.Equal(t, ConsentUnset, u.ConsentState())
	u.Consent = BoolPtr(true)
	require.Equal(t, ConsentGranted, u.ConsentState())
	u.Consent = BoolPtr(false)
	require.Equal(t, ConsentDeclined, u.ConsentState())
}

func TestTripDurationDays(t *testing.T) {
	start := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	trip := Trip{StartDate: start, EndDate: start}
	require.Equal(t, 1, trip.DurationDays())

	trip.EndDate = start.AddDate(0, 0, 4)
	require.Equal(t, 5, trip.DurationDays())
}

func TestCartItem_DecodesByType(t *testing.T) {
	body := `[
		{"id": 7, "type": "flight", "airline": "Air Global", "from": "DEL", "to": "CDG", "date": "2025-10-15", "price": 599, "passengers": 2},
		{"id": "h-1", "type": "hotel", "name": "Grand Palace", "location": "Paris", "checkIn": "2025-10-15", "checkOut": "2025-10-22", "rooms": 1, "price": 1400},
		{"id": "t-1", "type": "train", "name": "Rajdhani", "number": "12951", "from": "NDLS", "to": "BCT", "date": "2025-11-02", "price": 80},
		{"id": "a-1", "type": "activity", "name": "Louvre tour", "category": "MUSEUMS", "date": "2025-10-16", "participants": 2, "price": 90}
	]`

	var items []CartItem
	require.NoError(t, json.Unmarshal([]byte(body), &items))
	require.Len(t, items, 4)

	require.Equal(t, "7", items[0].ID)
	require.NotNil(t, items[0].Flight)
	require.Equal(t, "CDG", items[0].Flight.To)
	require.Equal(t, 2, items[0].Flight.Passengers)
	require.Nil(t, items[0].Hotel)

	require.NotNil(t, items[1].Hotel)
	require.Equal(t, "2025-10-22", items[1].Hotel.CheckOut)
	require.NotNil(t, items[2].Train)
	require.Equal(t, "12951", items[2].Train.Number)
	require.NotNil(t, items[3].Activity)
	require.Equal(t, "MUSEUMS", items[3].Activity.Category)

	for _, it := range items {
		require.True(t, it.Valid())
	}
}

func TestCartItem_RejectsUnknownType(t *testing.T) {
	var item CartItem
	require.Error(t, json.Unmarshal([]byte(`{"id":"x","type":"cruise","price":10}`), &item))
	require.Error(t, json.Unmarshal([]byte(`{"id":"x","price":10}`), &item))
}

func TestCartItem_MarshalFlattensPayload(t *testing.T) {
	item := CartItem{ID: "f1", Type: ItemFlight, Price: 299, Flight: &FlightItem{Airline: "SkyWings", From: "DEL", To: "BOM", Date: "2025-12-01"}}
	raw, err := json.Marshal(item)
	require.NoError(t, err)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(raw, &flat))
	require.Equal(t, "flight", flat["type"])
	require.Equal(t, "SkyWings", flat["airline"])
	require.Equal(t, "BOM", flat["to"])
	require.EqualValues(t, 299, flat["price"])
}

func TestCartItem_ValidRequiresMatchingPayload(t *testing.T) {
	item := CartItem{Type: ItemHotel, Flight: &FlightItem{}}
	require.False(t, item.Valid())
}

func TestValidBookingStatus(t *testing.T) {
	require.True(t, ValidBookingStatus("cancelled"))
	require.False(t, ValidBookingStatus("lost"))
}

func TestItinerary_StoredAsDocument(t *testing.T) {
	plan := `{"days":[{"day":1,"city":"Paris","stops":["Louvre","Seine cruise"]}],"notes":"window seat"}`
	raw, err := bson.Marshal(Booking{UserID: "u1", Itinerary: Itinerary(plan)})
	require.NoError(t, err)

	doc := bson.Raw(raw)
	require.Equal(t, bsontype.EmbeddedDocument, doc.Lookup("itinerary").Type)
	require.Equal(t, bsontype.Array, doc.Lookup("itinerary", "days").Type)
	require.Equal(t, "window seat", doc.Lookup("itinerary", "notes").StringValue())

	var back Booking
	require.NoError(t, bson.Unmarshal(raw, &back))
	require.JSONEq(t, plan, string(back.Itinerary))

	out, err := json.Marshal(back)
	require.NoError(t, err)
	var view map[string]any
	require.NoError(t, json.Unmarshal(out, &view))
	require.Equal(t, "window seat", view["itinerary"].(map[string]any)["notes"])
}

func TestItinerary_ReadsBinaryAndOmitsEmpty(t *testing.T) {
	legacy, err := bson.Marshal(bson.M{"user_id": "u1", "itinerary": []byte(`{"a":1}`)})
	require.NoError(t, err)
	var b Booking
	require.NoError(t, bson.Unmarshal(legacy, &b))
	require.JSONEq(t, `{"a":1}`, string(b.Itinerary))

	raw, err := bson.Marshal(Booking{UserID: "u1"})
	require.NoError(t, err)
	_, err = bson.Raw(raw).LookupErr("itinerary")
	require.Error(t, err)
}
