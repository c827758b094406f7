package models

import "time"

// ConsentState is the tri-state view of a user's data-collection decision.
type ConsentState string

const (
	ConsentUnset    ConsentState = "unset"
	ConsentGranted  ConsentState = "granted"
	ConsentDeclined ConsentState = "declined"
)

type User struct {
	ID        string    `bson:"-" json:"id"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`

	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email"`
	Password string `bson:"password" json:"-"` // bcrypt hash, never returned

	// Consent is nil until the user makes an explicit choice.
	Consent *bool `bson:"consent" json:"consent"`
}

// ConsentState maps the stored pointer to unset/granted/declined.
func (u *User) ConsentState() ConsentState {
	return StateOf(u.Consent)
}

func StateOf(consent *bool) ConsentState {
	switch {
	case consent == nil:
		return ConsentUnset
	case *consent:
		return ConsentGranted
	default:
		return ConsentDeclined
	}
}

// BoolPtr is a small helper for building consent values.
func BoolPtr(v bool) *bool {
	return &v
}
