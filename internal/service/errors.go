package service

import (
	"github.com/carson-networks/spendwise/internal/ledger"
	"github.com/carson-networks/spendwise/internal/operator/actions"
	"github.com/carson-networks/spendwise/internal/storage/sqlconfig"
)

// Errors callers are expected to match with errors.Is.
var (
	ErrInvalidInput    = ledger.ErrInvalidInput
	ErrNotFound        = sqlconfig.ErrNotFound
	ErrDuplicateBudget = actions.ErrDuplicateBudget
)
