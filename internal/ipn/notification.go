// internal/ipn/notification.go
package ipn

import (
	"context"
	"sync"
	"time"
)

// Acknowledgement is the memoized result of the validation round-trip.
type Acknowledgement int

const (
	Unverified Acknowledgement = iota
	Verified
	Invalid
)

func (a Acknowledgement) String() string {
	switch a {
	case Verified:
		return "VERIFIED"
	case Invalid:
		return "INVALID"
	}
	return "UNVERIFIED"
}

// Transaction statuses PayPal reports in status / payment_status.
//
// Single payments: Canceled-Reversal, Completed, Denied, Expired, Failed, In-Progress,
// Partially-Refunded, Pending, Processed, Refunded, Reversed, Voided.
// MassPay: Completed, Denied, Processed.
// MassPay sub-payments: Completed, Failed, Reversed, Unclaimed.
const (
	StatusCompleted = "Completed"
	StatusProcessed = "Processed"
	StatusPending   = "Pending"
	StatusFailed    = "Failed"
)

// paymentDateLayout is PayPal's payment_date format, e.g. "15:23:54 Apr 15, 2005 PDT".
const paymentDateLayout = "15:04:05 Jan 2, 2006 MST"

// PayPal stamps payment_date in Pacific time. time.Parse gives zone abbreviations it
// does not know a zero offset, so these are resolved by hand.
var paymentDateZones = map[string]int{
	"PST": -8 * 60 * 60,
	"PDT": -7 * 60 * 60,
}

// Notifier is what every notification shape offers: the parsed body, the fields common
// to all shapes and the acknowledgement.
type Notifier interface {
	Raw() string
	Params() *Params
	Type() string
	Status() string
	Complete() bool
	Test() bool
	Acknowledge(ctx context.Context) (bool, error)
	Acknowledgement() Acknowledgement
}

// base holds the state shared by all variants. Its acknowledgement is computed at most
// once: VERIFIED and INVALID are cached, errors are not.
type base struct {
	raw       string
	params    *Params
	validator *Validator

	mu  sync.Mutex
	ack Acknowledgement
}

func (b *base) init(raw string, v *Validator) {
	b.raw = raw
	b.params = ParseParams(raw)
	b.validator = v
}

// Raw is the body exactly as received. It is what gets posted back to PayPal.
func (b *base) Raw() string { return b.raw }

func (b *base) Params() *Params { return b.params }

// Type is the txn_type field.
func (b *base) Type() string { return b.params.Get("txn_type") }

// Status is the status field, falling back to payment_status.
func (b *base) Status() string {
	if s := b.params.Get("status"); s != "" {
		return s
	}
	return b.params.Get("payment_status")
}

func (b *base) Complete() bool { return b.Status() == StatusCompleted }

// Test reports a sandbox notification.
func (b *base) Test() bool { return b.params.Get("test_ipn") == "1" }

// ReceivedAt parses payment_date. PayPal may deliver a notification long after the
// payment (it retries while our endpoint is down), so this is not the arrival time.
func (b *base) ReceivedAt() (time.Time, error) {
	t, err := time.Parse(paymentDateLayout, b.params.Get("payment_date"))
	if err != nil {
		return time.Time{}, err
	}
	zone, _ := t.Zone()
	if offset, ok := paymentDateZones[zone]; ok {
		t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.FixedZone(zone, offset))
	}
	return t, nil
}

// Acknowledge asks PayPal whether this body is authentic. The first VERIFIED or INVALID
// answer is stored and returned on every later call without another request.
//
//	notify, err := ipn.Parse(body, validator)
//	ok, err := notify.Acknowledge(ctx)
//	if ok { ... process order if notify.Complete() ... } else { ... log possible fraud ... }
func (b *base) Acknowledge(ctx context.Context) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.ack != Unverified {
		return b.ack == Verified, nil
	}
	if b.validator == nil {
		return false, ErrNoValidator
	}
	ok, err := b.validator.Validate(ctx, b.raw)
	if err != nil {
		return false, err
	}
	if ok {
		b.ack = Verified
	} else {
		b.ack = Invalid
	}
	return ok, nil
}

// Acknowledgement returns the cached state without any network call.
func (b *base) Acknowledgement() Acknowledgement {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ack
}
