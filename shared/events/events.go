package events

import "time"

// Event types
const (
	UserCreated = "user.created"
)

// Stream names
const (
	UserEventsStream = "user.events"
)

// Base event structure
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// User events
type UserCreatedEvent struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	PostalCode string `json:"postalCode,omitempty"`
}
