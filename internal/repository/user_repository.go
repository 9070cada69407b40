package repository

import (
	"context"
	"errors"
	"sync"

	"github.com/eaglebank/registration/shared/models"
)

var (
	// ErrUsernameTaken is returned by Save when the username already exists.
	ErrUsernameTaken = errors.New("username already exists")
)

// UserStore persists registered users. A username that is not stored is
// reported as (nil, false, nil) by FindByUsername.
type UserStore interface {
	Save(ctx context.Context, user *models.User) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, bool, error)
}

// InMemoryUserRepository keeps users in a slice scanned linearly.
type InMemoryUserRepository struct {
	mu    sync.RWMutex
	users []*models.User
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{}
}

func (r *InMemoryUserRepository) Save(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.indexOf(user.Username) >= 0 {
		return nil, ErrUsernameTaken
	}
	r.users = append(r.users, user)
	return user, nil
}

func (r *InMemoryUserRepository) FindByUsername(_ context.Context, username string) (*models.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.indexOf(username); i >= 0 {
		return r.users[i], true, nil
	}
	return nil, false, nil
}

func (r *InMemoryUserRepository) indexOf(username string) int {
	for i, u := range r.users {
		if u.Username == username {
			return i
		}
	}
	return -1
}
