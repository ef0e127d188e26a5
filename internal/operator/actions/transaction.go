package actions

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/spendwise/internal/storage"
	"github.com/carson-networks/spendwise/internal/storage/sqlconfig"
)

type CreateTransaction struct {
	Values *sqlconfig.TransactionValues

	// ID is set once Perform succeeds.
	ID uuid.UUID
}

func (c *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	id, err := writer.Transactions.Insert(ctx, c.Values)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

// UpdateTransaction replaces every writable column of an existing row.
type UpdateTransaction struct {
	ID     uuid.UUID
	Values *sqlconfig.TransactionValues
}

func (u *UpdateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.Transactions.Update(ctx, u.ID, u.Values)
}

type DeleteTransaction struct {
	ID uuid.UUID
}

func (d *DeleteTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	return writer.Transactions.Delete(ctx, d.ID)
}
