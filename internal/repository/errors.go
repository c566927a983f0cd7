package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound keeps store-level misses consistent: the member either does
// not exist or has been soft-deleted.
var ErrNotFound = errors.New("member not found")

// DuplicateKeyError is the store rejecting a value that an active member
// already holds. The partial unique indexes are the final arbiter of
// uniqueness; the pre-insert count checks are only a fast path.
type DuplicateKeyError struct {
	Field string
}

func (e *DuplicateKeyError) Error() string {
	return "duplicate " + e.Field
}

const uniqueViolationCode = "23505"

var uniqueConstraintFields = map[string]string{
	"uidx_members_email":        "email",
	"uidx_members_phone_number": "phone_number",
	"uidx_members_nickname":     "nickname",
}

// asDuplicateKey maps a Postgres unique-violation onto the field whose
// constraint was hit, or returns nil for any other error.
func asDuplicateKey(err error) *DuplicateKeyError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		if field, ok := uniqueConstraintFields[pgErr.ConstraintName]; ok {
			return &DuplicateKeyError{Field: field}
		}
	}
	return nil
}
