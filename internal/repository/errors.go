package repository

import (
	"errors"

	"github.com/lib/pq"
)

// ErrUniqueViolation is returned when a write hits a primary key or unique
// constraint.
var ErrUniqueViolation = errors.New("unique violation")

const pqUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}
	return false
}
