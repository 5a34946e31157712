package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/famtrack/vaxtrack/internal/common"
	"github.com/famtrack/vaxtrack/internal/models"
)

const recordColumns = `id, family_member_id, vaccine_id, date::text, location, COALESCE(dosage, ''), created_at, updated_at`

// PostgresRecordRepository implements vaccination-record persistence
// against PostgreSQL. Ownership of the enclosing family member is checked
// by the service layer before any call lands here.
type PostgresRecordRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresRecordRepository creates a new PostgresRecordRepository with
// the given database connection.
func NewPostgresRecordRepository(db *sql.DB) *PostgresRecordRepository {
	return &PostgresRecordRepository{DB: db}
}

// Create inserts a vaccination record for record.FamilyMemberID. A second
// record for the same (family member, vaccine) pair yields
// common.ErrorConflict; an unknown vaccine id yields common.ErrorNotFound.
func (r *PostgresRecordRepository) Create(ctx context.Context, record *models.VaccineRecord) (*models.VaccineRecord, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate id: %w", err)
	}

	row := r.DB.QueryRowContext(ctx, `
		INSERT INTO vaccine_records (id, family_member_id, vaccine_id, date, location, dosage)
		VALUES ($1, $2, $3, $4::date, $5, $6)
		RETURNING `+recordColumns,
		id.String(), record.FamilyMemberID, record.VaccineID, record.Date, record.Location, nullIfEmpty(record.Dosage),
	)

	var created models.VaccineRecord
	err = row.Scan(&created.ID, &created.FamilyMemberID, &created.VaccineID, &created.Date,
		&created.Location, &created.Dosage, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrorConflict
		}
		if isForeignKeyViolation(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("insert vaccine record: %w", err)
	}
	return &created, nil
}

// ListByMember fetches all vaccination records of one family member,
// ordered by administration date.
func (r *PostgresRecordRepository) ListByMember(ctx context.Context, memberID string) ([]models.VaccineRecord, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+recordColumns+` FROM vaccine_records WHERE family_member_id = $1 ORDER BY date`,
		memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("list vaccine records: %w", err)
	}
	defer rows.Close()

	var records []models.VaccineRecord
	for rows.Next() {
		var rec models.VaccineRecord
		if err := rows.Scan(&rec.ID, &rec.FamilyMemberID, &rec.VaccineID, &rec.Date,
			&rec.Location, &rec.Dosage, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
