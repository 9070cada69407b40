// Package notification fans user-created events out to notification
// channels.
//
// A Hub keeps an ordered list of subscribed handlers and delivers every
// published user to each of them synchronously, in subscription order, on
// the caller's goroutine. A failing handler (error or panic) is logged and
// skipped; the remaining handlers still receive the event.
package notification

import (
	"context"
	"errors"
	"fmt"
	"log"
	"reflect"
	"sync"

	"github.com/eaglebank/registration/shared/models"
)

// Handler reacts to a newly created user.
//
// Handlers are removed by equality, so implementations must be comparable
// (pointer receivers are the simplest way to get that). Subscribe rejects
// handlers whose dynamic type is not comparable.
type Handler interface {
	Handle(ctx context.Context, user *models.User) error
}

type Hub struct {
	mu       sync.RWMutex
	handlers []Handler
}

// ErrUncomparableHandler is returned by Subscribe for handlers that could
// never be matched by Unsubscribe.
var ErrUncomparableHandler = errors.New("notification handler type is not comparable")

// NewHub returns a hub with handlers already subscribed, in order. Handlers
// Subscribe rejects are logged and left out.
func NewHub(handlers ...Handler) *Hub {
	h := &Hub{}
	for _, handler := range handlers {
		if err := h.Subscribe(handler); err != nil {
			log.Printf("Skipping notification handler: %v", err)
		}
	}
	return h
}

// Subscribe appends handler to the delivery order. Duplicates are allowed
// and receive one delivery per subscription. A nil handler is ignored.
func (h *Hub) Subscribe(handler Handler) error {
	if handler == nil {
		return nil
	}
	if !isComparable(handler) {
		return fmt.Errorf("%T: %w", handler, ErrUncomparableHandler)
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handlers = append(h.handlers, handler)
	return nil
}

// Unsubscribe removes the first subscription equal to handler and reports
// whether one was found.
func (h *Hub) Unsubscribe(handler Handler) bool {
	// only comparable handlers are ever stored, so nothing can match
	if handler == nil || !isComparable(handler) {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, existing := range h.handlers {
		if existing == handler {
			h.handlers = append(h.handlers[:i:i], h.handlers[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of current subscriptions.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.handlers)
}

// Publish delivers user to every handler subscribed at call time. It returns
// the number of successful deliveries and the joined handler failures.
// Handlers may subscribe or unsubscribe during delivery; the change applies
// from the next Publish.
func (h *Hub) Publish(ctx context.Context, user *models.User) (int, error) {
	h.mu.RLock()
	snapshot := make([]Handler, len(h.handlers))
	copy(snapshot, h.handlers)
	h.mu.RUnlock()

	delivered := 0
	var errs []error
	for i, handler := range snapshot {
		if err := deliver(ctx, handler, user); err != nil {
			log.Printf("Notification handler %d (%T) failed for user %s: %v", i, handler, user.Username, err)
			errs = append(errs, fmt.Errorf("handler %d (%T): %w", i, handler, err))
			continue
		}
		delivered++
	}
	return delivered, errors.Join(errs...)
}

func isComparable(handler Handler) bool {
	return reflect.TypeOf(handler).Comparable()
}

// deliver turns a handler panic into an error so one bad channel cannot stop
// the fan-out.
func deliver(ctx context.Context, handler Handler, user *models.User) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return handler.Handle(ctx, user)
}
