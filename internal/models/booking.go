package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Booking statuses accepted by the owner-scoped update.
const (
	BookingConfirmed = "confirmed"
	BookingPending   = "pending"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"

	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

var bookingStatuses = map[string]bool{
	BookingConfirmed: true,
	BookingPending:   true,
	BookingCancelled: true,
	BookingCompleted: true,
}

// ValidBookingStatus reports whether s is a known booking status.
func ValidBookingStatus(s string) bool {
	return bookingStatuses[s]
}

type Booking struct {
	ID        string    `bson:"-" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`

	Items            []CartItem      `bson:"items" json:"items"`
	Itinerary        Itinerary       `bson:"itinerary,omitempty" json:"itinerary,omitempty"`
	TotalAmount      float64         `bson:"total_amount" json:"totalAmount"`
	BookingType      string          `bson:"booking_type" json:"bookingType"`
	Status           string          `bson:"status" json:"status"`
	PaymentStatus    string          `bson:"payment_status" json:"paymentStatus"`
	PaymentDetails   PaymentDetails  `bson:"payment_details" json:"paymentDetails"`
	BookingReference string          `bson:"booking_reference" json:"bookingReference"`
}

type PaymentDetails struct {
	Method        string    `bson:"method" json:"method"`
	CardLast4     string    `bson:"card_last4,omitempty" json:"cardLast4,omitempty"`
	TransactionID string    `bson:"transaction_id" json:"transactionId"`
	PaidAt        time.Time `bson:"paid_at" json:"paidAt"`
}

// BookingPatch is the owner-scoped mutable subset of a booking.
type BookingPatch struct {
	Status        string
	PaymentStatus string
	UpdatedAt     time.Time
}

// ItemType discriminates the cart item variants.
type ItemType string

const (
	ItemFlight   ItemType = "flight"
	ItemHotel    ItemType = "hotel"
	ItemTrain    ItemType = "train"
	ItemActivity ItemType = "activity"
)

// CartItem is a tagged variant: the common header plus exactly one payload
// selected by Type. On the wire it is a flat object with a "type" field.
type CartItem struct {
	ID    string   `bson:"id" json:"id"`
	Type  ItemType `bson:"type" json:"type"`
	Name  string   `bson:"name,omitempty" json:"name,omitempty"`
	Price float64  `bson:"price" json:"price"`

	Flight   *FlightItem   `bson:"flight,omitempty" json:"-"`
	Hotel    *HotelItem    `bson:"hotel,omitempty" json:"-"`
	Train    *TrainItem    `bson:"train,omitempty" json:"-"`
	Activity *ActivityItem `bson:"activity,omitempty" json:"-"`
}

type FlightItem struct {
	Airline      string `bson:"airline" json:"airline"`
	From         string `bson:"from" json:"from"`
	To           string `bson:"to" json:"to"`
	Date         string `bson:"date" json:"date"`
	DepartTime   string `bson:"depart_time,omitempty" json:"departTime,omitempty"`
	ArriveTime   string `bson:"arrive_time,omitempty" json:"arriveTime,omitempty"`
	Duration     string `bson:"duration,omitempty" json:"duration,omitempty"`
	Stops        string `bson:"stops,omitempty" json:"stops,omitempty"`
	Passengers   int    `bson:"passengers,omitempty" json:"passengers,omitempty"`
	BookingClass string `bson:"booking_class,omitempty" json:"bookingClass,omitempty"`
	TripType     string `bson:"trip_type,omitempty" json:"tripType,omitempty"`
	ReturnDate   string `bson:"return_date,omitempty" json:"returnDate,omitempty"`
}

type HotelItem struct {
	Location string  `bson:"location" json:"location"`
	CheckIn  string  `bson:"check_in" json:"checkIn"`
	CheckOut string  `bson:"check_out" json:"checkOut"`
	Guests   int     `bson:"guests,omitempty" json:"guests,omitempty"`
	Rooms    int     `bson:"rooms,omitempty" json:"rooms,omitempty"`
	Nights   int     `bson:"nights,omitempty" json:"nights,omitempty"`
	Rating   float64 `bson:"rating,omitempty" json:"rating,omitempty"`
}

type TrainItem struct {
	Number     string `bson:"number" json:"number"`
	From       string `bson:"from" json:"from"`
	To         string `bson:"to" json:"to"`
	Date       string `bson:"date" json:"date"`
	DepartTime string `bson:"depart_time,omitempty" json:"departTime,omitempty"`
	ArriveTime string `bson:"arrive_time,omitempty" json:"arriveTime,omitempty"`
	Class      string `bson:"class,omitempty" json:"class,omitempty"`
	Passengers int    `bson:"passengers,omitempty" json:"passengers,omitempty"`
}

type ActivityItem struct {
	Category     string `bson:"category,omitempty" json:"category,omitempty"`
	Location     string `bson:"location,omitempty" json:"location,omitempty"`
	Date         string `bson:"date" json:"date"`
	Duration     string `bson:"duration,omitempty" json:"duration,omitempty"`
	Participants int    `bson:"participants,omitempty" json:"participants,omitempty"`
}

type cartItemHeader struct {
	ID    json.RawMessage `json:"id"`
	Type  ItemType        `json:"type"`
	Name  string          `json:"name"`
	Price float64         `json:"price"`
}

// UnmarshalJSON reads the "type" discriminant and decodes the matching payload.
// Unknown or missing types are rejected.
func (c *CartItem) UnmarshalJSON(data []byte) error {
	var h cartItemHeader
	if err := json.Unmarshal(data, &h); err != nil {
		return err
	}
	item := CartItem{Type: h.Type, Name: h.Name, Price: h.Price, ID: rawID(h.ID)}

	var payload any
	switch h.Type {
	case ItemFlight:
		item.Flight = &FlightItem{}
		payload = item.Flight
	case ItemHotel:
		item.Hotel = &HotelItem{}
		payload = item.Hotel
	case ItemTrain:
		item.Train = &TrainItem{}
		payload = item.Train
	case ItemActivity:
		item.Activity = &ActivityItem{}
		payload = item.Activity
	default:
		return fmt.Errorf("unknown cart item type %q", h.Type)
	}
	if err := json.Unmarshal(data, payload); err != nil {
		return fmt.Errorf("decode %s item: %w", h.Type, err)
	}
	*c = item
	return nil
}

// MarshalJSON flattens the header and the active payload into one object.
func (c CartItem) MarshalJSON() ([]byte, error) {
	out := map[string]any{}
	if p := c.payload(); p != nil {
		raw, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, err
		}
	}
	out["id"] = c.ID
	out["type"] = c.Type
	out["price"] = c.Price
	if c.Name != "" {
		out["name"] = c.Name
	}
	return json.Marshal(out)
}

// Valid reports whether the discriminant and payload agree.
func (c *CartItem) Valid() bool {
	return c.payload() != nil && c.Price >= 0
}

func (c *CartItem) payload() any {
	switch c.Type {
	case ItemFlight:
		if c.Flight != nil {
			return c.Flight
		}
	case ItemHotel:
		if c.Hotel != nil {
			return c.Hotel
		}
	case ItemTrain:
		if c.Train != nil {
			return c.Train
		}
	case ItemActivity:
		if c.Activity != nil {
			return c.Activity
		}
	}
	return nil
}

// rawID accepts both string and numeric ids from the web client.
func rawID(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.Trim(string(raw), `"`)
}
