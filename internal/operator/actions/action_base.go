package actions

import (
	"context"
	"fmt"
	"strings"

	"github.com/carson-networks/spendwise/internal/storage"
)

type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}

// Name is the action's type name, for logs.
func Name(a IAction) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", a), "*actions.")
}
