package repository

import (
	"context"
	"fmt"
	"time"

	"stockroom/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// userRepository implements the UserRepository interface using PostgreSQL.
type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

// GetByUsername retrieves a staff account by username.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = $1
	`

	var u model.User
	err := r.pool.QueryRow(ctx, query, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("username", username).Msg("user not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("username", username).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &u, nil
}

// Upsert creates a staff account or refreshes its password hash.
func (r *userRepository) Upsert(ctx context.Context, username, passwordHash string) error {
	query := `
		INSERT INTO users (id, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash
	`

	_, err := r.pool.Exec(ctx, query, uuid.New(), username, passwordHash, time.Now().UTC())
	if err != nil {
		r.logger.Error().Err(err).Str("username", username).Msg("failed to upsert user")
		return fmt.Errorf("failed to upsert user %q: %w", username, err)
	}

	r.logger.Debug().Str("username", username).Msg("user upserted")

	return nil
}
