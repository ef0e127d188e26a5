package ledger

import "errors"

// ErrInvalidInput marks a record or parameter that fails validation.
var ErrInvalidInput = errors.New("invalid input")
