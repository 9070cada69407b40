package command

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/eaglebank/registration/internal/notification"
	"github.com/eaglebank/registration/internal/repository"
	"github.com/eaglebank/registration/shared/cqrs"
	"github.com/eaglebank/registration/shared/events"
	"github.com/eaglebank/registration/shared/models"
)

// AddressResolver finds the address for a postal code, if any provider knows it.
type AddressResolver interface {
	Resolve(ctx context.Context, postalCode string) (*models.Address, bool)
}

// Notifier fans a created user out to its subscribers.
type Notifier interface {
	Publish(ctx context.Context, user *models.User) (int, error)
}

// RegistrationCommandService registers users: it resolves the address,
// persists the user and then notifies both the hub subscribers and the
// optional direct channel.
type RegistrationCommandService struct {
	store    repository.UserStore
	resolver AddressResolver
	hub      Notifier
	direct   notification.Handler
	now      func() time.Time
}

// NewRegistrationCommandService wires the flow. A nil direct handler disables
// direct-channel notification.
func NewRegistrationCommandService(
	store repository.UserStore,
	resolver AddressResolver,
	hub Notifier,
	direct notification.Handler,
) *RegistrationCommandService {
	return &RegistrationCommandService{
		store:    store,
		resolver: resolver,
		hub:      hub,
		direct:   direct,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// RegisterUser never fails because of an unknown postal code; the user is
// saved without an address instead. Store errors (including
// repository.ErrUsernameTaken) are returned and nobody is notified.
func (s *RegistrationCommandService) RegisterUser(ctx context.Context, cmd cqrs.RegisterUserCommand) (*models.User, error) {
	addr, found := s.resolver.Resolve(ctx, cmd.PostalCode)
	if !found {
		log.Printf("No address found for postal code %q, registering %s without one", cmd.PostalCode, cmd.Username)
	}

	user := &models.User{
		Username:  cmd.Username,
		Email:     cmd.Email,
		Password:  cmd.Password,
		Address:   addr,
		CreatedAt: s.now(),
	}

	saved, err := s.store.Save(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to save user %s: %w", cmd.Username, err)
	}

	if _, err := s.hub.Publish(ctx, saved); err != nil {
		log.Printf("Some notifications failed for user %s: %v", saved.Username, err)
	}

	if s.direct != nil {
		if err := s.direct.Handle(ctx, saved); err != nil {
			log.Printf("Direct notification (%T) failed for user %s: %v", s.direct, saved.Username, err)
		}
	}

	return saved, nil
}

// HandleUserEvent is the Redis stream subscriber handler for user.events.
// It records an audit line per registration seen on the stream.
func (s *RegistrationCommandService) HandleUserEvent(ctx context.Context, event events.Event) error {
	switch event.Type {
	case events.UserCreated:
		var data events.UserCreatedEvent
		if err := events.DecodeData(event, &data); err != nil {
			return err
		}
		log.Printf("Audit: user %s registered (event %s at %s)", data.Username, event.ID, event.Timestamp.Format(time.RFC3339))
	default:
		log.Printf("Ignoring user event %s", event.Type)
	}
	return nil
}
