package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/spendwise/internal/storage"
	"github.com/carson-networks/spendwise/internal/storage/sqlconfig"
)

// ErrDuplicateBudget is returned when a category already has a budget.
var ErrDuplicateBudget = errors.New("budget already exists for category")

type CreateBudget struct {
	Values *sqlconfig.BudgetValues

	// ID is set once Perform succeeds.
	ID uuid.UUID
}

func (c *CreateBudget) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := ensureCategoryFree(ctx, writer, c.Values.Category, uuid.Nil); err != nil {
		return err
	}

	id, err := writer.Budgets.Insert(ctx, c.Values)
	if err != nil {
		return duplicateFrom(err, c.Values.Category)
	}
	c.ID = id
	return nil
}

type UpdateBudget struct {
	ID     uuid.UUID
	Values *sqlconfig.BudgetValues
}

func (u *UpdateBudget) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := ensureCategoryFree(ctx, writer, u.Values.Category, u.ID); err != nil {
		return err
	}
	return duplicateFrom(writer.Budgets.Update(ctx, u.ID, u.Values), u.Values.Category)
}

type DeleteBudget struct {
	ID uuid.UUID
}

func (d *DeleteBudget) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.Budgets.Delete(ctx, d.ID)
}

// duplicateFrom reports a unique index hit on budgets.category as
// ErrDuplicateBudget. Concurrent writers can both pass ensureCategoryFree;
// the index rejects the second insert.
func duplicateFrom(err error, category string) error {
	if errors.Is(err, sqlconfig.ErrUniqueViolation) {
		return fmt.Errorf("%w: %s", ErrDuplicateBudget, category)
	}
	return err
}

// ensureCategoryFree fails if a budget other than self covers category.
func ensureCategoryFree(ctx context.Context, writer *storage.Writer, category string, self uuid.UUID) error {
	existing, err := writer.Budgets.ListByCategory(ctx, category)
	if err != nil {
		return err
	}
	for _, b := range existing {
		if b.ID != self {
			return fmt.Errorf("%w: %s", ErrDuplicateBudget, category)
		}
	}
	return nil
}
