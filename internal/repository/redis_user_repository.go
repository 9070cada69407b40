package repository

import (
	"context"

	"github.com/eaglebank/registration/shared/models"
	sharedredis "github.com/eaglebank/registration/shared/redis"
	goredis "github.com/redis/go-redis/v9"
)

const userKeyPrefix = "user:"

// RedisUserRepository stores each user as a JSON document keyed by username.
type RedisUserRepository struct {
	docs *sharedredis.DocumentCache[storedUser]
}

func NewRedisUserRepository(client *goredis.Client) *RedisUserRepository {
	return &RedisUserRepository{
		docs: sharedredis.NewDocumentCache[storedUser](client, 0),
	}
}

// storedUser keeps the password, which models.User hides from JSON.
type storedUser struct {
	models.User
	Password string `json:"password"`
}

func (r *RedisUserRepository) Save(ctx context.Context, user *models.User) (*models.User, error) {
	doc := &storedUser{User: *user, Password: user.Password}
	written, err := r.docs.SetIfAbsent(ctx, userKeyPrefix+user.Username, doc)
	if err != nil {
		return nil, err
	}
	if !written {
		return nil, ErrUsernameTaken
	}
	return user, nil
}

func (r *RedisUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, bool, error) {
	doc, ok, err := r.docs.Get(ctx, userKeyPrefix+username)
	if err != nil || !ok {
		return nil, false, err
	}
	user := doc.User
	user.Password = doc.Password
	return &user, true, nil
}
