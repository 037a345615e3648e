package common

import (
	"errors"

	"github.com/lib/pq"
)

// ForeignKeyError reports whether err is a postgres foreign key violation on
// the named constraint. Handlers use this to turn a rejected insert into the
// matching not-found error without a separate existence check.
func ForeignKeyError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23503" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}

// UniqueViolationError reports whether err is a postgres unique constraint
// violation on the named constraint.
func UniqueViolationError(err error, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23505" && pqErr.Constraint == name {
			return true
		}
	}

	return false
}
