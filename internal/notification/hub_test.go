package notification

import (
	"context"
	"errors"
	"testing"

	"github.com/eaglebank/registration/shared/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder appends its name to a shared delivery log.
type recorder struct {
	name string
	log  *[]string
	err  error
}

func (r *recorder) Handle(_ context.Context, user *models.User) error {
	*r.log = append(*r.log, r.name+":"+user.Username)
	return r.err
}

type panicker struct{}

func (*panicker) Handle(context.Context, *models.User) error { panic("channel down") }

var alice = &models.User{Username: "alice", Email: "a@x.com"}

func TestHub_PublishInSubscriptionOrder(t *testing.T) {
	var got []string
	a := &recorder{name: "a", log: &got}
	b := &recorder{name: "b", log: &got}
	c := &recorder{name: "c", log: &got}

	hub := NewHub(a, b)
	hub.Subscribe(c)

	n, err := hub.Publish(context.Background(), alice)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"a:alice", "b:alice", "c:alice"}, got)
}

func TestHub_SubscribeUnsubscribeSequences(t *testing.T) {
	var got []string
	a := &recorder{name: "a", log: &got}
	b := &recorder{name: "b", log: &got}
	c := &recorder{name: "c", log: &got}

	tests := []struct {
		name string
		ops  func(h *Hub)
		want []string
	}{
		{
			name: "empty hub delivers nothing",
			ops:  func(h *Hub) {},
			want: nil,
		},
		{
			name: "unsubscribed handler is skipped",
			ops: func(h *Hub) {
				h.Subscribe(a)
				h.Subscribe(b)
				h.Subscribe(c)
				h.Unsubscribe(b)
			},
			want: []string{"a:alice", "c:alice"},
		},
		{
			name: "resubscribe moves handler to the end",
			ops: func(h *Hub) {
				h.Subscribe(a)
				h.Subscribe(b)
				h.Unsubscribe(a)
				h.Subscribe(a)
			},
			want: []string{"b:alice", "a:alice"},
		},
		{
			name: "duplicate subscription delivers twice and unsubscribes once",
			ops: func(h *Hub) {
				h.Subscribe(a)
				h.Subscribe(b)
				h.Subscribe(a)
				h.Unsubscribe(a)
			},
			want: []string{"b:alice", "a:alice"},
		},
		{
			name: "unsubscribe unknown handler is a no-op",
			ops: func(h *Hub) {
				h.Subscribe(a)
				h.Unsubscribe(c)
			},
			want: []string{"a:alice"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got = nil
			hub := NewHub()
			tt.ops(hub)

			n, err := hub.Publish(context.Background(), alice)
			require.NoError(t, err)
			assert.Equal(t, len(tt.want), n)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHub_UnsubscribeReportsRemoval(t *testing.T) {
	var got []string
	a := &recorder{name: "a", log: &got}
	hub := NewHub(a)

	assert.True(t, hub.Unsubscribe(a))
	assert.False(t, hub.Unsubscribe(a))
	assert.Zero(t, hub.Len())
}

func TestHub_NilHandlerIgnored(t *testing.T) {
	hub := NewHub(nil)
	hub.Subscribe(nil)
	assert.Zero(t, hub.Len())
}

func TestHub_FailingHandlersAreIsolated(t *testing.T) {
	var got []string
	boom := errors.New("smtp unavailable")
	a := &recorder{name: "a", log: &got, err: boom}
	b := &recorder{name: "b", log: &got}

	hub := NewHub(a, &panicker{}, b)

	n, err := hub.Publish(context.Background(), alice)
	assert.Equal(t, 1, n)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "panic: channel down")
	assert.Equal(t, []string{"a:alice", "b:alice"}, got)
}

// selfRemover unsubscribes itself on first delivery.
type selfRemover struct {
	hub   *Hub
	calls int
}

func (s *selfRemover) Handle(context.Context, *models.User) error {
	s.calls++
	s.hub.Unsubscribe(s)
	return nil
}

func TestHub_UnsubscribeDuringPublish(t *testing.T) {
	var got []string
	hub := NewHub()
	s := &selfRemover{hub: hub}
	hub.Subscribe(s)
	hub.Subscribe(&recorder{name: "b", log: &got})

	_, err := hub.Publish(context.Background(), alice)
	require.NoError(t, err)
	_, err = hub.Publish(context.Background(), alice)
	require.NoError(t, err)

	assert.Equal(t, 1, s.calls)
	assert.Equal(t, []string{"b:alice", "b:alice"}, got)
}

// taggedHandler is a value type holding a slice, so it cannot be compared.
type taggedHandler struct {
	tags []string
}

func (taggedHandler) Handle(context.Context, *models.User) error { return nil }

func TestHub_UncomparableHandlerRejected(t *testing.T) {
	var got []string
	a := &recorder{name: "a", log: &got}
	hub := NewHub(a, taggedHandler{tags: []string{"x"}})
	assert.Equal(t, 1, hub.Len())

	err := hub.Subscribe(taggedHandler{tags: []string{"y"}})
	assert.ErrorIs(t, err, ErrUncomparableHandler)
	assert.Equal(t, 1, hub.Len())

	assert.NotPanics(t, func() {
		assert.False(t, hub.Unsubscribe(taggedHandler{tags: []string{"x"}}))
	})
	assert.True(t, hub.Unsubscribe(a))
}
