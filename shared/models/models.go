package models

import "time"

// Address is the postal address resolved for a user at registration.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
}

// User is created once per registration and never mutated afterwards.
// Address is nil when no provider could resolve the postal code.
type User struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Address   *Address  `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdTimestamp"`
}
