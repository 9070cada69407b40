package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/eaglebank/registration/internal/repository"
	"github.com/eaglebank/registration/shared/cqrs"
	"github.com/eaglebank/registration/shared/models"
)

var ErrUserNotFound = errors.New("user not found")

// UserQueryService serves user lookups from the configured store.
type UserQueryService struct {
	store repository.UserStore
}

func NewUserQueryService(store repository.UserStore) *UserQueryService {
	return &UserQueryService{store: store}
}

func (s *UserQueryService) GetUser(ctx context.Context, q cqrs.GetUserQuery) (*models.UserView, error) {
	user, ok, err := s.store.FindByUsername(ctx, q.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", q.Username, err)
	}
	if !ok {
		return nil, ErrUserNotFound
	}
	return models.NewUserView(user), nil
}
