// Package repository provides PostgreSQL persistence for accounts, family
// members, the vaccine catalog and vaccination records. Driver errors are
// translated to the sentinel errors of internal/common.
package repository

import (
	"errors"

	"github.com/lib/pq"
)

// isUniqueViolation reports whether err is a postgres unique-constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// isForeignKeyViolation reports whether err is a postgres foreign-key
// violation (SQLSTATE 23503).
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}

// nullIfEmpty maps the empty string to NULL for optional text columns.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
