package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const (
	pgCodeUndefinedTable    = "42P01"
	pgCodeUndefinedFunction = "42883"
)

// IsUniqueViolation reports whether the provided error references a Postgres
// unique violation constraint. When constraintName is provided, the helper
// looks for the constraint text in the error message.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if constraintName != "" {
		return strings.Contains(msg, constraintName)
	}
	return strings.Contains(msg, "duplicate key value")
}

// IsSchemaNotReady reports whether the error means a table or function the
// feature depends on has not been migrated yet. Callers use this to degrade
// (empty list, "pending setup" message) instead of failing the whole action.
func IsSchemaNotReady(err error) bool {
	if err == nil {
		return false
	}

	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code == pgCodeUndefinedTable || pgxErr.Code == pgCodeUndefinedFunction
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		return code == pgCodeUndefinedTable || code == pgCodeUndefinedFunction
	}

	// sqlite reports missing relations as plain text
	msg := err.Error()
	return strings.Contains(msg, "no such table") || strings.Contains(msg, "does not exist")
}
