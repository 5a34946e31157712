package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/famtrack/vaxtrack/internal/common"
	"github.com/famtrack/vaxtrack/internal/models"
)

const userColumns = `id, username, name, COALESCE(email, ''), password_hash, created_at, updated_at`

// PostgresUserRepository implements account persistence against PostgreSQL.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository with the
// given database connection.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// Create inserts a new account row with a freshly generated UUIDv7 key and
// returns the stored row. A taken username yields common.ErrorConflict.
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate id: %w", err)
	}

	row := r.DB.QueryRowContext(ctx, `
		INSERT INTO users (id, username, name, email, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		id.String(), user.Username, user.Name, nullIfEmpty(user.Email), user.PasswordHash,
	)

	created, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return created, nil
}

// GetByUsername fetches the account with the given username.
// Returns common.ErrorNotFound when no such account exists.
func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE username = $1`,
		username,
	)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return user, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
