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

const memberColumns = `id, user_id, name, birthdate::text, COALESCE(sex, ''), created_at, updated_at`

// PostgresMemberRepository implements family-member persistence against
// PostgreSQL. Reads are always filtered by the owning account id.
type PostgresMemberRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresMemberRepository creates a new PostgresMemberRepository with
// the given database connection.
func NewPostgresMemberRepository(db *sql.DB) *PostgresMemberRepository {
	return &PostgresMemberRepository{DB: db}
}

// Create inserts a family member under member.UserID. A duplicate
// (user_id, name, birthdate) triple yields common.ErrorConflict.
func (r *PostgresMemberRepository) Create(ctx context.Context, member *models.FamilyMember) (*models.FamilyMember, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate id: %w", err)
	}

	row := r.DB.QueryRowContext(ctx, `
		INSERT INTO family_members (id, user_id, name, birthdate, sex)
		VALUES ($1, $2, $3, $4::date, $5)
		RETURNING `+memberColumns,
		id.String(), member.UserID, member.Name, member.Birthdate, nullIfEmpty(member.Sex),
	)

	created, err := scanMember(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("insert family member: %w", err)
	}
	return created, nil
}

// ListByUser fetches all family members owned by the given account,
// oldest first (UUIDv7 keys are time-ordered).
func (r *PostgresMemberRepository) ListByUser(ctx context.Context, userID string) ([]models.FamilyMember, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+memberColumns+` FROM family_members WHERE user_id = $1 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list family members: %w", err)
	}
	defer rows.Close()

	var members []models.FamilyMember
	for rows.Next() {
		var m models.FamilyMember
		if err := rows.Scan(&m.ID, &m.UserID, &m.Name, &m.Birthdate, &m.Sex, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// GetOwned fetches the family member with the given id only when it is
// owned by userID. Both an absent row and a row owned by another account
// yield common.ErrorNotFound, so callers cannot tell the cases apart.
func (r *PostgresMemberRepository) GetOwned(ctx context.Context, memberID, userID string) (*models.FamilyMember, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT `+memberColumns+` FROM family_members WHERE id = $1 AND user_id = $2`,
		memberID, userID,
	)

	member, err := scanMember(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("get family member: %w", err)
	}
	return member, nil
}

func scanMember(row *sql.Row) (*models.FamilyMember, error) {
	var m models.FamilyMember
	err := row.Scan(&m.ID, &m.UserID, &m.Name, &m.Birthdate, &m.Sex, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
