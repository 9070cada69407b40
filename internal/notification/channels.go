package notification

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/eaglebank/registration/shared/events"
	"github.com/eaglebank/registration/shared/models"
)

// ChannelKind names a notification channel implementation in configuration.
type ChannelKind string

const (
	ChannelNone     ChannelKind = "none"
	ChannelEmail    ChannelKind = "email"
	ChannelWhatsapp ChannelKind = "whatsapp"
	ChannelStream   ChannelKind = "stream"
)

// ParseChannelKind maps a configuration value to a ChannelKind. An empty
// value means ChannelNone.
func ParseChannelKind(s string) (ChannelKind, error) {
	switch kind := ChannelKind(strings.ToLower(strings.TrimSpace(s))); kind {
	case "":
		return ChannelNone, nil
	case ChannelNone, ChannelEmail, ChannelWhatsapp, ChannelStream:
		return kind, nil
	default:
		return "", fmt.Errorf("unknown notification channel %q", s)
	}
}

// EventPublisher appends events to a stream. *events.Publisher satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) (string, error)
}

// ChannelDeps are the collaborators channels may need.
type ChannelDeps struct {
	Logger    *log.Logger
	Publisher EventPublisher
}

var errNoPublisher = errors.New("stream channel requires an event publisher")

// NewChannel builds the channel for kind. ChannelNone yields a nil Handler.
func NewChannel(kind ChannelKind, deps ChannelDeps) (Handler, error) {
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}
	switch kind {
	case ChannelNone, "":
		return nil, nil
	case ChannelEmail:
		return NewEmailChannel(logger), nil
	case ChannelWhatsapp:
		return NewWhatsappChannel(logger), nil
	case ChannelStream:
		if deps.Publisher == nil {
			return nil, errNoPublisher
		}
		return NewStreamChannel(deps.Publisher), nil
	default:
		return nil, fmt.Errorf("unknown notification channel %q", kind)
	}
}

// EmailChannel notifies the user's email address.
type EmailChannel struct {
	logger *log.Logger
}

func NewEmailChannel(logger *log.Logger) *EmailChannel {
	return &EmailChannel{logger: logger}
}

func (c *EmailChannel) Handle(_ context.Context, user *models.User) error {
	c.logger.Printf("Sending email notification to %s <%s>", user.Username, user.Email)
	return nil
}

// WhatsappChannel notifies the user by username over messaging.
type WhatsappChannel struct {
	logger *log.Logger
}

func NewWhatsappChannel(logger *log.Logger) *WhatsappChannel {
	return &WhatsappChannel{logger: logger}
}

func (c *WhatsappChannel) Handle(_ context.Context, user *models.User) error {
	c.logger.Printf("Sending whatsapp notification to %s", user.Username)
	return nil
}

// StreamChannel appends a user.created event to the user events stream so
// other services can react to the registration.
type StreamChannel struct {
	publisher EventPublisher
}

func NewStreamChannel(publisher EventPublisher) *StreamChannel {
	return &StreamChannel{publisher: publisher}
}

func (c *StreamChannel) Handle(ctx context.Context, user *models.User) error {
	data := events.UserCreatedEvent{
		Username: user.Username,
		Email:    user.Email,
	}
	if user.Address != nil {
		data.PostalCode = user.Address.PostalCode
	}
	if _, err := c.publisher.Publish(ctx, events.UserEventsStream, events.UserCreated, data); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", events.UserCreated, err)
	}
	return nil
}

// SetupHub builds a hub with one channel per kind, subscribed in order.
func SetupHub(kinds []ChannelKind, deps ChannelDeps) (*Hub, error) {
	hub := NewHub()
	for _, kind := range kinds {
		ch, err := NewChannel(kind, deps)
		if err != nil {
			return nil, err
		}
		if err := hub.Subscribe(ch); err != nil {
			return nil, err
		}
	}
	return hub, nil
}
