// Package memory keeps transactions and budgets in process memory. It backs
// DATA_BACKEND=memory and the service tests.
package memory

import (
	"maps"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/spendwise/internal/storage/sqlconfig"
)

type transactionEntry struct {
	row sqlconfig.Transaction
	seq uint64
}

type budgetEntry struct {
	row sqlconfig.Budget
	seq uint64
}

type Store struct {
	writeMu sync.Mutex

	mu           sync.RWMutex
	seq          uint64
	transactions map[uuid.UUID]transactionEntry
	budgets      map[uuid.UUID]budgetEntry

	now func() time.Time
}

func New() *Store {
	return &Store{
		transactions: make(map[uuid.UUID]transactionEntry),
		budgets:      make(map[uuid.UUID]budgetEntry),
		now:          time.Now,
	}
}

func (s *Store) Transactions() *TransactionsTable {
	return &TransactionsTable{store: s}
}

func (s *Store) Budgets() *BudgetsTable {
	return &BudgetsTable{store: s}
}

func (s *Store) nextSeq() uint64 {
	s.seq++
	return s.seq
}

func newID() (uuid.UUID, error) {
	return uuid.NewV4()
}

// Tx serialises writers and restores the previous contents on rollback.
type Tx struct {
	store        *Store
	transactions map[uuid.UUID]transactionEntry
	budgets      map[uuid.UUID]budgetEntry
	once         sync.Once
}

// Begin blocks until no other Tx is open.
func (s *Store) Begin() *Tx {
	s.writeMu.Lock()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return &Tx{
		store:        s,
		transactions: maps.Clone(s.transactions),
		budgets:      maps.Clone(s.budgets),
	}
}

func (t *Tx) Commit() error {
	t.once.Do(func() {
		t.store.writeMu.Unlock()
	})
	return nil
}

func (t *Tx) Rollback() error {
	t.once.Do(func() {
		t.store.mu.Lock()
		t.store.transactions = t.transactions
		t.store.budgets = t.budgets
		t.store.mu.Unlock()
		t.store.writeMu.Unlock()
	})
	return nil
}
