package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/tenkanji/internal/apperr"
	"github.com/example/tenkanji/pkg/models"
)

// UserRepository handles database operations for users
type UserRepository struct{}

// NewUserRepository creates a new repository instance
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// GetByInitials returns the user with the given initials
func (r *UserRepository) GetByInitials(ctx context.Context, initials string) (*models.User, error) {
	var user models.User
	err := DB.GetContext(ctx, &user,
		"SELECT initials, chunk_size, created_at FROM users WHERE initials = $1", initials)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("getUser", initials, "user not found")
	}
	if err != nil {
		return nil, apperr.Storage("getUser", initials, err)
	}
	return &user, nil
}

// CreateIfMissing inserts the user unless it already exists and returns the
// stored row either way. Login and registration are the same operation.
func (r *UserRepository) CreateIfMissing(ctx context.Context, initials string) (*models.User, error) {
	var query string
	if Type() == "postgres" {
		query = "INSERT INTO users (initials) VALUES ($1) ON CONFLICT (initials) DO NOTHING"
	} else {
		query = "INSERT OR IGNORE INTO users (initials) VALUES ($1)"
	}
	if _, err := DB.ExecContext(ctx, query, initials); err != nil {
		return nil, apperr.Storage("login", initials, err)
	}
	return r.GetByInitials(ctx, initials)
}

// UpdateChunkSize changes the user's preferred study chunk size
func (r *UserRepository) UpdateChunkSize(ctx context.Context, initials string, chunkSize int) error {
	result, err := DB.ExecContext(ctx,
		"UPDATE users SET chunk_size = $1 WHERE initials = $2", chunkSize, initials)
	if err != nil {
		return apperr.Storage("updateSettings", initials, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return apperr.NotFound("updateSettings", initials, "user not found")
	}
	return nil
}
