// internal/payment/models.payment.go
package payment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Standard IPN processing errors
var (
	ErrNotVerified  = errors.New("paypal did not verify the notification")
	ErrProviderDown = errors.New("payment provider is currently unavailable") //e.g paypal postback endpoint down

	// ErrUnprocessable marks a verified notification we can never handle (e.g. a MassPay
	// batch in several currencies). Redelivery cannot fix it.
	ErrUnprocessable = errors.New("verified notification cannot be processed")
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentSucceeded     PaymentStatus = "SUCCEEDED"
	PaymentFailed        PaymentStatus = "FAILED"
	PaymentStatusUnknown PaymentStatus = "UNKNOWN"
)

// NormalizedEvent is the "Universal Language" of our payment system.
// One IPN gives one event; a MassPay IPN gives one event per sub-payment.
type NormalizedEvent struct {
	EventID           uuid.UUID     // Unique per emitted event, lets consumers dedupe redeliveries
	Provider          string        // e.g., "PayPal"
	ProviderPaymentID string        // txn_id, or masspay_txn_id for a sub-payment
	Masspay           bool          // true when the event is one payment of a MassPay batch
	NotificationType  string        // txn_type as sent
	Status            PaymentStatus // e.g., SUCCEEDED, FAILED
	RawStatus         string        // PayPal's status before mapping, e.g. "Unclaimed"
	ItemID            string        // item_number / custom, what we sent to PayPal
	UniqueID          string        // payer supplied id of a MassPay sub-payment
	Invoice           string
	Account           string
	AmountCents       int64
	FeeCents          int64
	Currency          string
	Test              bool
	ErrorCode         *string // e.g., reason_code
	ErrorMessage      *string
	OccurredAt        time.Time // payment_date, zero when PayPal sent none
}

// MapStatus converts a PayPal status to our state machine.
func MapStatus(status string) PaymentStatus {
	switch status {
	case "Completed", "Processed", "Canceled-Reversal":
		return PaymentSucceeded
	case "Pending", "In-Progress", "Unclaimed":
		return PaymentStatusPending
	case "Failed", "Denied", "Reversed", "Expired", "Voided", "Refunded", "Partially-Refunded":
		return PaymentFailed
	}
	return PaymentStatusUnknown
}
