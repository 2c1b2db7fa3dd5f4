package repo

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/tbourn/go-qa-backend/internal/apperr"
)

// Backend codes that signal a uniqueness violation.
const (
	pgUniqueViolation       = "23505" // SQLSTATE unique_violation
	sqliteConstraintUnique  = 2067    // SQLITE_CONSTRAINT_UNIQUE
	sqliteConstraintPrimKey = 1555    // SQLITE_CONSTRAINT_PRIMARYKEY
)

// sqliteCoder is satisfied by the pure-Go SQLite driver's error type.
type sqliteCoder interface {
	Code() int
}

// classifyWriteError maps a failed insert into the taxonomy: uniqueness
// violations become UniqueViolation, everything else Persistence.
func classifyWriteError(err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return apperr.UniqueViolation(err)
	}
	return apperr.Persistence(err)
}

func isUniqueViolation(err error) bool {
	// Only seen when a caller opens the DB with TranslateError.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}

	var se sqliteCoder
	if errors.As(err, &se) {
		switch se.Code() {
		case sqliteConstraintUnique, sqliteConstraintPrimKey:
			return true
		}
	}
	return false
}

// ErrNotFound is returned by lookups where absence is an expected outcome
// rather than a failure (idempotency records).
var ErrNotFound = gorm.ErrRecordNotFound
