// internal/ipn/subpayment.go
package ipn

import "context"

// Subpayment is one payment of a MassPay notification. It reads like a single
// Notification built from the payment's fields, and shares its parent's
// acknowledgement: the batch is validated with PayPal once, whatever the number of
// payments.
type Subpayment struct {
	*Notification
	parent *MasspayNotification
}

// UniqueID is the payer-supplied unique_id of this payment.
func (s *Subpayment) UniqueID() string { return s.params.Get("unique_id") }

// MasspayTransactionID is PayPal's id for this payment (masspay_txn_id_N in the batch).
func (s *Subpayment) MasspayTransactionID() string { return s.params.Get("masspay_txn_id") }

func (s *Subpayment) Parent() *MasspayNotification { return s.parent }

// Acknowledge acknowledges the parent MassPay notification.
func (s *Subpayment) Acknowledge(ctx context.Context) (bool, error) {
	return s.parent.Acknowledge(ctx)
}

func (s *Subpayment) Acknowledgement() Acknowledgement {
	return s.parent.Acknowledgement()
}
