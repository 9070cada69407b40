package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eaglebank/registration/shared/models"
	"github.com/lib/pq"
)

const createUsersTable = `
	CREATE TABLE IF NOT EXISTS users (
		username            TEXT PRIMARY KEY,
		email               TEXT NOT NULL,
		password            TEXT NOT NULL,
		address_street      TEXT,
		address_city        TEXT,
		address_state       TEXT,
		address_postal_code TEXT,
		created_at          TIMESTAMPTZ NOT NULL
	)
`

// PostgresUserRepository stores users in PostgreSQL. The username primary key
// enforces uniqueness.
type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// EnsureSchema creates the users table when it is missing.
func (r *PostgresUserRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	return nil
}

func (r *PostgresUserRepository) Save(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (username, email, password,
			address_street, address_city, address_state, address_postal_code,
			created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	var street, city, state, postalCode sql.NullString
	if a := user.Address; a != nil {
		street = sql.NullString{String: a.Street, Valid: true}
		city = sql.NullString{String: a.City, Valid: true}
		state = sql.NullString{String: a.State, Valid: true}
		postalCode = sql.NullString{String: a.PostalCode, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, query,
		user.Username, user.Email, user.Password,
		street, city, state, postalCode,
		user.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return user, nil
}

func (r *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, bool, error) {
	query := `
		SELECT username, email, password,
			   address_street, address_city, address_state, address_postal_code,
			   created_at
		FROM users
		WHERE username = $1
	`
	var user models.User
	var street, city, state, postalCode sql.NullString

	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.Username, &user.Email, &user.Password,
		&street, &city, &state, &postalCode,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get user: %w", err)
	}

	// address columns are written together; postal code marks presence
	if postalCode.Valid {
		user.Address = &models.Address{
			Street:     street.String,
			City:       city.String,
			State:      state.String,
			PostalCode: postalCode.String,
		}
	}
	return &user, true, nil
}
