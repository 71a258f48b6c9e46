package repository

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"tasklist/internal/models"
)

// pgUniqueViolation is the SQLSTATE Postgres reports for unique constraint failures.
const pgUniqueViolation = "23505"

// uniqueViolation maps driver unique-constraint errors to *models.DuplicateError.
// Other errors are returned unchanged.
func uniqueViolation(err error, fields ...string) error {
	var detail string
	var pqErr *pq.Error
	var liteErr sqlite3.Error
	switch {
	case errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation:
		detail = pqErr.Constraint + " " + pqErr.Detail
	case errors.As(err, &liteErr) && liteErr.ExtendedCode == sqlite3.ErrConstraintUnique:
		detail = liteErr.Error()
	default:
		return err
	}
	for _, f := range fields {
		if strings.Contains(detail, f) {
			return &models.DuplicateError{Field: f}
		}
	}
	return &models.DuplicateError{Field: "record"}
}
