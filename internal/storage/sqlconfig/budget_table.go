package sqlconfig

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aarondl/opt/omit"
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

const budgetsTable = "budgets"

var budgetColumns = []any{"id", "category", "limit_amount", "period", "created_at"}

var _ IBudgetTable = (*BudgetsTable)(nil)

type BudgetsTable struct {
	exec bob.Executor
}

func NewBudgetsTable(exec bob.Executor) *BudgetsTable {
	return &BudgetsTable{exec: exec}
}

func (t *BudgetsTable) FindByID(ctx context.Context, id uuid.UUID) (*Budget, error) {
	query := psql.Select(
		sm.Columns(budgetColumns...),
		sm.From(budgetsTable),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	row, err := bob.One(ctx, t.exec, query, scan.StructMapper[Budget]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storeErr("budgets.FindByID", err)
	}
	return &row, nil
}

func (t *BudgetsTable) ListByCategory(ctx context.Context, category string) ([]*Budget, error) {
	return t.List(ctx, &BudgetFilter{Category: omit.From(category)})
}

func (t *BudgetsTable) Insert(ctx context.Context, values *BudgetValues) (uuid.UUID, error) {
	query := psql.Insert(
		im.Into(budgetsTable, "category", "limit_amount", "period"),
		im.Values(psql.Arg(values.Category, values.LimitAmount, values.Period)),
		im.Returning("id"),
	)
	id, err := bob.One(ctx, t.exec, query, scan.SingleColumnMapper[uuid.UUID])
	if err != nil {
		return uuid.Nil, storeErr("budgets.Insert", err)
	}
	return id, nil
}

func (t *BudgetsTable) Update(ctx context.Context, id uuid.UUID, values *BudgetValues) error {
	query := psql.Update(
		um.Table(budgetsTable),
		um.SetCol("category").ToArg(values.Category),
		um.SetCol("limit_amount").ToArg(values.LimitAmount),
		um.SetCol("period").ToArg(values.Period),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	res, err := bob.Exec(ctx, t.exec, query)
	if err != nil {
		return storeErr("budgets.Update", err)
	}
	return expectOneRow("budgets.Update", res)
}

func (t *BudgetsTable) Delete(ctx context.Context, id uuid.UUID) error {
	query := psql.Delete(
		dm.From(budgetsTable),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)
	res, err := bob.Exec(ctx, t.exec, query)
	if err != nil {
		return storeErr("budgets.Delete", err)
	}
	return expectOneRow("budgets.Delete", res)
}

// List returns budgets oldest first, so a later budget for the same
// category follows an earlier one.
func (t *BudgetsTable) List(ctx context.Context, filter *BudgetFilter) ([]*Budget, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(budgetColumns...),
		sm.From(budgetsTable),
	}
	if filter != nil {
		if c, ok := filter.Category.Get(); ok {
			queryMods = append(queryMods, sm.Where(psql.Quote("category").EQ(psql.Arg(c))))
		}
	}
	queryMods = append(queryMods,
		sm.OrderBy("created_at").Asc(),
		sm.OrderBy("id").Asc(),
	)

	rows, err := bob.All(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[*Budget]())
	if err != nil {
		return nil, storeErr("budgets.List", err)
	}
	return rows, nil
}
