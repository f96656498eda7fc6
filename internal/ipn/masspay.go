// internal/ipn/masspay.go
package ipn

import (
	"fmt"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// MasspayNotification is a batch payout IPN. The individual payments are encoded
// with numbered field names (mc_gross_1, mc_gross_2, ...) and are available through
// Payments as ordinary notifications.
type MasspayNotification struct {
	base

	paymentsOnce sync.Once
	payments     []*Subpayment

	totalsOnce sync.Once
	currency   string
	fee        decimal.Decimal
	gross      decimal.Decimal
}

// NewMasspayNotification parses raw as a MassPay IPN. A body with a txn_type other than
// "masspay" (any case) is rejected with *TypeMismatchError; no txn_type is accepted.
func NewMasspayNotification(raw string, v *Validator) (*MasspayNotification, error) {
	n := &MasspayNotification{}
	n.init(raw, v)
	if err := n.validateType(); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *MasspayNotification) validateType() error {
	if t := n.Type(); t != "" && !strings.EqualFold(t, MasspayType) {
		return &TypeMismatchError{Type: t, Variant: masspayVariant, UseType: singleVariant}
	}
	return nil
}

// Account is the email of the account that sent the MassPay.
func (n *MasspayNotification) Account() string { return n.params.Get("payer_email") }

// Payments returns one notification per sub-payment, in the order their
// masspay_txn_id_N keys appear in the body. Built on first call; later calls return
// the same values. Acknowledging any of them acknowledges this notification.
func (n *MasspayNotification) Payments() []*Subpayment {
	n.paymentsOnce.Do(func() {
		n.payments = decompose(n)
	})
	return n.payments
}

// Currency is the first payment's currency. PayPal requires one currency per MassPay;
// CheckCurrency verifies it.
func (n *MasspayNotification) Currency() string {
	n.computeTotals()
	return n.currency
}

// Fee is the sum of the payments' fees.
func (n *MasspayNotification) Fee() decimal.Decimal {
	n.computeTotals()
	return n.fee
}

// Gross is the sum of the payments' gross amounts.
func (n *MasspayNotification) Gross() decimal.Decimal {
	n.computeTotals()
	return n.gross
}

// Amount is the batch gross with its currency.
func (n *MasspayNotification) Amount() Money {
	return Money{Cents: n.Gross().Shift(2).IntPart(), Currency: n.Currency()}
}

// CheckCurrency returns ErrMixedCurrency when the payments disagree on mc_currency.
func (n *MasspayNotification) CheckCurrency() error {
	payments := n.Payments()
	for _, p := range payments[min(1, len(payments)):] {
		if p.Currency() != payments[0].Currency() {
			return fmt.Errorf("%w: %s and %s", ErrMixedCurrency, payments[0].Currency(), p.Currency())
		}
	}
	return nil
}

func (n *MasspayNotification) computeTotals() {
	n.totalsOnce.Do(func() {
		payments := n.Payments()
		if len(payments) == 0 {
			n.fee, n.gross = decimal.Zero, decimal.Zero
			return
		}
		var feeCents, grossCents int64
		for _, p := range payments {
			feeCents += p.FeeCents()
			grossCents += p.GrossCents()
		}
		n.currency = payments[0].Currency()
		n.fee = fromCents(feeCents)
		n.gross = fromCents(grossCents)
	})
}
