package domain

import (
	"fmt"
	"time"
)

// Identity is a durable user profile keyed by email. Profile fields are
// refreshed on every resolution; the record itself is never deleted.
type Identity struct {
	ID        string
	Email     string
	FullName  string
	Contact   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName renders the identity for ticket listings.
func (i Identity) DisplayName() string {
	if i.FullName == "" {
		return i.Email
	}
	return fmt.Sprintf("%s (%s)", i.FullName, i.Email)
}

// Profile carries user-supplied identity fields on a booking request.
// Email is required and acts as the natural key.
type Profile struct {
	Email    string
	FullName string
	Contact  string
}
