package sqlconfig

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

const uniqueViolation pq.ErrorCode = "23505"

// ErrNotFound is returned when a lookup, update or delete names an unknown ID.
var ErrNotFound = errors.New("record not found")

// ErrUniqueViolation is returned when a write would break a unique index.
var ErrUniqueViolation = errors.New("unique constraint violated")

// StoreError wraps a failure of the underlying store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return &StoreError{Op: op, Err: fmt.Errorf("%w: %s", ErrUniqueViolation, pqErr.Constraint)}
	}
	return &StoreError{Op: op, Err: err}
}
