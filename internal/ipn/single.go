// internal/ipn/single.go
package ipn

import "strings"

const (
	// MasspayType is the txn_type of a batch notification.
	MasspayType = "masspay"

	// SubpaymentType is forced onto bodies rebuilt from a MassPay notification.
	SubpaymentType = "masspay_subpayment"

	singleVariant  = "Notification"
	masspayVariant = "MasspayNotification"
)

// Notification is a single-payment IPN.
//
// The usual handler tries this first and falls back to MasspayNotification on
// ErrTypeMismatch; Parse does exactly that.
type Notification struct {
	base
}

// NewNotification parses raw as a single-payment IPN. A body whose txn_type is
// "masspay" (any case) is rejected with *TypeMismatchError. A missing txn_type is fine:
// PayPal omits it on some notification subtypes.
func NewNotification(raw string, v *Validator) (*Notification, error) {
	n := &Notification{}
	n.init(raw, v)
	if err := n.validateType(); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *Notification) validateType() error {
	if t := n.Type(); strings.EqualFold(t, MasspayType) {
		return &TypeMismatchError{Type: t, Variant: singleVariant, UseType: masspayVariant}
	}
	return nil
}

// TransactionID is PayPal's transaction number.
func (n *Notification) TransactionID() string { return n.params.Get("txn_id") }

// Gross is the amount received, as sent ("500.00").
func (n *Notification) Gross() string { return n.params.Get("mc_gross") }

// GrossCents is Gross in minor units.
func (n *Notification) GrossCents() int64 { return toCents(n.Gross()) }

// Fee is what PayPal charged for the transaction, as sent.
func (n *Notification) Fee() string { return n.params.Get("mc_fee") }

func (n *Notification) FeeCents() int64 { return toCents(n.Fee()) }

func (n *Notification) Currency() string { return n.params.Get("mc_currency") }

// Amount is the gross with its currency.
func (n *Notification) Amount() Money {
	return Money{Cents: n.GrossCents(), Currency: n.Currency()}
}

// ItemID is the item_number we submitted to PayPal. custom is the fallback because
// dispute notifications do not carry item_number.
func (n *Notification) ItemID() string {
	if id := n.params.Get("item_number"); id != "" {
		return id
	}
	return n.params.Get("custom")
}

func (n *Notification) Invoice() string { return n.params.Get("invoice") }

// Account is the receiving PayPal account.
func (n *Notification) Account() string {
	if b := n.params.Get("business"); b != "" {
		return b
	}
	return n.params.Get("receiver_email")
}
