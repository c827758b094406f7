package models

import "time"

// DateLayout is the only accepted wire format for trip and search dates.
const DateLayout = "2006-01-02"

// Trip is a recorded journey. Dates are stored as UTC midnight.
type Trip struct {
	ID        string    `bson:"-" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`

	Destination    string    `bson:"destination" json:"destination"`
	StartDate      time.Time `bson:"start_date" json:"startDate"`
	EndDate        time.Time `bson:"end_date" json:"endDate"`
	Purpose        string    `bson:"purpose" json:"purpose"`
	Transportation string    `bson:"transportation" json:"transportation"`

	Accommodation string  `bson:"accommodation,omitempty" json:"accommodation,omitempty"`
	Companions    string  `bson:"companions,omitempty" json:"companions,omitempty"`
	Activities    string  `bson:"activities,omitempty" json:"activities,omitempty"`
	Notes         string  `bson:"notes,omitempty" json:"notes,omitempty"`
	Budget        float64 `bson:"budget,omitempty" json:"budget,omitempty"`
}

// DurationDays counts both ends, so a same-day trip lasts one day.
func (t *Trip) DurationDays() int {
	return int(t.EndDate.Sub(t.StartDate).Hours()/24) + 1
}
