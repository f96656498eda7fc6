// internal/ipn/decompose.go
package ipn

import (
	"fmt"
	"regexp"
)

var (
	// A key ending in an underscore and a 1-3 digit number (mc_gross_123) belongs to
	// one payment of the batch; the number is the payment index.
	paymentSpecificKey = regexp.MustCompile(`^(.*)_(\d{1,3})$`)

	// Only indices with a masspay_txn_id_N key count as payments.
	masspayTxnIDKey = regexp.MustCompile(`^masspay_txn_id_(\d{1,3})$`)

	// verify_sign signs the whole batch body; it is meaningless on a rebuilt slice.
	disallowedPaymentKeys = map[string]struct{}{
		"verify_sign": {},
	}
)

type field struct {
	key   string
	value string
}

// decompose rebuilds one single-payment notification per sub-payment of parent:
//
//	masspay_txn_id_1=A&mc_gross_1=4.58&masspay_txn_id_2=B&mc_gross_2=0.06&payer_email=x
//
// becomes
//
//	masspay_txn_id=A&mc_gross=4.58&payer_email=x&txn_type=masspay_subpayment
//	masspay_txn_id=B&mc_gross=0.06&payer_email=x&txn_type=masspay_subpayment
func decompose(parent *MasspayNotification) []*Subpayment {
	var (
		indices []string
		seen    = make(map[string]struct{})
		byIndex = make(map[string][]field)
		global  []field
	)
	for _, key := range parent.params.Keys() {
		value := parent.params.Get(key)
		if m := paymentSpecificKey.FindStringSubmatch(key); m != nil {
			byIndex[m[2]] = append(byIndex[m[2]], field{key: m[1], value: value})
			if t := masspayTxnIDKey.FindStringSubmatch(key); t != nil {
				if _, ok := seen[t[1]]; !ok {
					seen[t[1]] = struct{}{}
					indices = append(indices, t[1])
				}
			}
			continue
		}
		if _, denied := disallowedPaymentKeys[key]; denied {
			continue
		}
		global = append(global, field{key: key, value: value})
	}

	payments := make([]*Subpayment, 0, len(indices))
	for _, idx := range indices {
		synthesized := newParams()
		for _, f := range byIndex[idx] {
			synthesized.Set(f.key, f.value)
		}
		for _, f := range global {
			synthesized.Set(f.key, f.value)
		}
		synthesized.Set("txn_type", SubpaymentType)

		payments = append(payments, newSubpayment(parent, synthesized))
	}
	return payments
}

// newSubpayment goes through NewFromParams like any inbound body so txn_type routing
// stays in one place. The forced SubpaymentType always routes to *Notification.
// The rebuilt body was never sent by PayPal, so it gets no validator: only the parent
// can be acknowledged.
func newSubpayment(parent *MasspayNotification, synthesized *Params) *Subpayment {
	notifier, err := NewFromParams(synthesized, nil)
	if err != nil {
		panic(fmt.Sprintf("ipn: rebuilt masspay payment rejected: %v", err))
	}
	single, ok := notifier.(*Notification)
	if !ok {
		panic(fmt.Sprintf("ipn: rebuilt masspay payment parsed as %T", notifier))
	}
	return &Subpayment{Notification: single, parent: parent}
}
