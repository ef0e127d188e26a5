package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/carson-networks/spendwise/internal/money"
)

// Comparison relates a current total to the previous period's.
type Comparison struct {
	Current       money.Money
	Previous      money.Money
	Delta         money.Money
	PercentChange decimal.Decimal
}

// Compare computes the change from previous to current. PercentChange is
// zero whenever previous is not positive.
func Compare(current, previous money.Money) Comparison {
	delta := current.Sub(previous)
	return Comparison{
		Current:       current,
		Previous:      previous,
		Delta:         delta,
		PercentChange: delta.Percent(previous),
	}
}
