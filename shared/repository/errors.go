package repository

import (
	"errors"
	"roombook/shared/constant"

	"github.com/lib/pq"
)

// IsUniqueViolation reports whether err carries a Postgres unique violation.
func IsUniqueViolation(err error) bool {
	return hasCode(err, constant.PqErrorCodeUniqueViolation)
}

// IsExclusionViolation reports whether err carries a Postgres exclusion constraint violation.
func IsExclusionViolation(err error) bool {
	return hasCode(err, constant.PqErrorCodeExclusionViolation)
}

// IsForeignKeyViolation reports whether err carries a Postgres foreign key violation.
func IsForeignKeyViolation(err error) bool {
	return hasCode(err, constant.PqErrorCodeFkViolation)
}

func hasCode(err error, code string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == code
	}

	return false
}
