package aggregate

import (
	"slices"
	"strings"

	"github.com/carson-networks/spendwise/internal/ledger"
)

// TransactionQuery narrows a transaction list. Zero fields match everything.
type TransactionQuery struct {
	Type ledger.TransactionType
	Text string
}

// Search keeps transactions of the query type whose category label or note
// contains the query text, ignoring case.
func Search(txs []ledger.Transaction, q TransactionQuery) []ledger.Transaction {
	needle := strings.ToLower(strings.TrimSpace(q.Text))
	out := []ledger.Transaction{}
	for _, tx := range txs {
		if q.Type != "" && tx.Type != q.Type {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(tx.Category.Label()), needle) &&
			!strings.Contains(strings.ToLower(tx.Note), needle) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// SortNewestFirst returns a copy ordered by date descending.
func SortNewestFirst(txs []ledger.Transaction) []ledger.Transaction {
	out := slices.Clone(txs)
	slices.SortStableFunc(out, func(a, b ledger.Transaction) int {
		return b.Date.Compare(a.Date)
	})
	return out
}

// Recent returns up to n of the newest transactions.
func Recent(txs []ledger.Transaction, n int) []ledger.Transaction {
	sorted := SortNewestFirst(txs)
	if n < 0 {
		n = 0
	}
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
