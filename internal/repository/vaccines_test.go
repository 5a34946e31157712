package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestVaccineList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	defer db.Close()
	repo := NewPostgresVaccineRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM vaccines ORDER BY name`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "created_at", "updated_at"}).
			AddRow("v1", "MMR", "Measles, mumps, rubella", time.Now(), time.Now()).
			AddRow("v2", "Tdap", "", time.Now(), time.Now()))

	vaccines, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(vaccines) != 2 {
		t.Fatalf("expected 2 vaccines, got %d", len(vaccines))
	}
	if vaccines[0].Name != "MMR" {
		t.Errorf("unexpected first vaccine: %+v", vaccines[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestVaccineList_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	defer db.Close()
	repo := NewPostgresVaccineRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM vaccines ORDER BY name`)).
		WillReturnError(errors.New("query failed"))

	if _, err := repo.List(context.Background()); err == nil {
		t.Error("expected error, got nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
