package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/famtrack/vaxtrack/internal/models"
)

// PostgresVaccineRepository reads the shared vaccine catalog. The catalog
// is maintained administratively; the API surface only lists it.
type PostgresVaccineRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresVaccineRepository creates a new PostgresVaccineRepository with
// the given database connection.
func NewPostgresVaccineRepository(db *sql.DB) *PostgresVaccineRepository {
	return &PostgresVaccineRepository{DB: db}
}

// List fetches the full vaccine catalog ordered by name.
func (r *PostgresVaccineRepository) List(ctx context.Context) ([]models.Vaccine, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, COALESCE(description, ''), created_at, updated_at FROM vaccines ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list vaccines: %w", err)
	}
	defer rows.Close()

	var vaccines []models.Vaccine
	for rows.Next() {
		var v models.Vaccine
		if err := rows.Scan(&v.ID, &v.Name, &v.Description, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		vaccines = append(vaccines, v)
	}
	return vaccines, rows.Err()
}
