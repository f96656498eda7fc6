// internal/ipn/money.go
package ipn

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount in minor units (cents) with its currency code.
type Money struct {
	Cents    int64
	Currency string
}

func (m Money) Decimal() decimal.Decimal {
	return fromCents(m.Cents)
}

// toCents converts a PayPal amount string like "15.05" to 1505.
// Empty or unparsable amounts count as zero, the same as a missing fee.
func toCents(amount string) int64 {
	d, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return 0
	}
	return d.Shift(2).Round(0).IntPart()
}

func fromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
