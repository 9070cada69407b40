package cqrs

type RegisterUserCommand struct {
	Username   string
	Email      string
	Password   string
	PostalCode string
}
