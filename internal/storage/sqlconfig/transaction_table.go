package sqlconfig

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

const transactionsTable = "transactions"

var transactionColumns = []any{
	"id", "amount", "type", "category", "transaction_date",
	"note", "is_recurring", "recurring_interval", "created_at",
}

var _ ITransactionTable = (*TransactionsTable)(nil)

type TransactionsTable struct {
	exec bob.Executor
}

// NewTransactionsTable binds the table to a database handle or an open transaction.
func NewTransactionsTable(exec bob.Executor) *TransactionsTable {
	return &TransactionsTable{exec: exec}
}

// FindByID retrieves a transaction by primary key.
func (t *TransactionsTable) FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	query := psql.Select(
		sm.Columns(transactionColumns...),
		sm.From(transactionsTable),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, t.exec, query, scan.StructMapper[Transaction]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeErr("transactions.FindByID", err)
	}
	return &row, nil
}

// Insert creates a new transaction and returns its generated ID.
func (t *TransactionsTable) Insert(ctx context.Context, values *TransactionValues) (uuid.UUID, error) {
	query := psql.Insert(
		im.Into(transactionsTable, "amount", "type", "category", "transaction_date",
			"note", "is_recurring", "recurring_interval"),
		im.Values(psql.Arg(
			values.Amount,
			values.Type,
			values.Category,
			values.TransactionDate,
			values.Note,
			values.IsRecurring,
			values.RecurringInterval,
		)),
		im.Returning("id"),
	)
	id, err := bob.One(ctx, t.exec, query, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return uuid.Nil, storeErr("transactions.Insert", err)
	}
	return id, nil
}

// Update replaces every writable column of the transaction.
func (t *TransactionsTable) Update(ctx context.Context, id uuid.UUID, values *TransactionValues) error {
	query := psql.Update(
		um.Table(transactionsTable),
		um.SetCol("amount").ToArg(values.Amount),
		um.SetCol("type").ToArg(values.Type),
		um.SetCol("category").ToArg(values.Category),
		um.SetCol("transaction_date").ToArg(values.TransactionDate),
		um.SetCol("note").ToArg(values.Note),
		um.SetCol("is_recurring").ToArg(values.IsRecurring),
		um.SetCol("recurring_interval").ToArg(values.RecurringInterval),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	res, err := bob.Exec(ctx, t.exec, query)
	if err != nil {
		return storeErr("transactions.Update", err)
	}
	return expectOneRow("transactions.Update", res)
}

func (t *TransactionsTable) Delete(ctx context.Context, id uuid.UUID) error {
	query := psql.Delete(
		dm.From(transactionsTable),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	res, err := bob.Exec(ctx, t.exec, query)
	if err != nil {
		return storeErr("transactions.Delete", err)
	}
	return expectOneRow("transactions.Delete", res)
}

// List returns transactions matching the filter, newest first. Nil filter returns all.
func (t *TransactionsTable) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(transactionColumns...),
		sm.From(transactionsTable),
	}
	if filter != nil {
		var where []bob.Expression
		if c, ok := filter.Category.Get(); ok {
			where = append(where, psql.Quote("category").EQ(psql.Arg(c)))
		}
		if typ, ok := filter.Type.Get(); ok {
			where = append(where, psql.Quote("type").EQ(psql.Arg(typ)))
		}
		if from, ok := filter.From.Get(); ok {
			where = append(where, psql.Quote("transaction_date").GTE(psql.Arg(from)))
		}
		if to, ok := filter.To.Get(); ok {
			where = append(where, psql.Quote("transaction_date").LTE(psql.Arg(to)))
		}
		if len(where) > 0 {
			queryMods = append(queryMods, sm.Where(psql.And(where...)))
		}
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit))
		}
	}
	queryMods = append(queryMods,
		sm.OrderBy("transaction_date").Desc(),
		sm.OrderBy("id").Desc(),
	)

	rows, err := bob.All(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[*Transaction]())
	if err != nil {
		return nil, storeErr("transactions.List", err)
	}
	return rows, nil
}

func expectOneRow(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return storeErr(op, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
