package cqrs

// GetUserQuery fetches a single user by username.
type GetUserQuery struct {
	Username string
}
