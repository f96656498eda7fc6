// internal/ipn/errors.go
package ipn

import (
	"errors"
	"fmt"
)

var (
	// ErrTypeMismatch means the body's txn_type belongs to the other notification variant.
	// Callers catch it and retry with the other constructor (see Parse).
	ErrTypeMismatch = errors.New("ipn txn_type does not match notification variant")

	// ErrMalformedUpstreamResponse means PayPal answered the validation call with something
	// other than VERIFIED or INVALID. That is a broken integration, not a forged IPN.
	ErrMalformedUpstreamResponse = errors.New("faulty paypal validation result")

	// ErrTransportFailure wraps network and timeout errors from the validation call.
	ErrTransportFailure = errors.New("paypal validation request failed")

	// ErrNoValidator is returned by Acknowledge when the notification was built without one.
	ErrNoValidator = errors.New("notification has no validator configured")

	// ErrMixedCurrency is returned by MasspayNotification.CheckCurrency.
	ErrMixedCurrency = errors.New("masspay sub-payments use different currencies")
)

// TypeMismatchError is the construction error of both notification variants.
type TypeMismatchError struct {
	Type    string // txn_type found in the body
	Variant string // variant that rejected it
	UseType string // variant that should be used instead
}

func (e *TypeMismatchError) Error() string {
	if e.Variant == masspayVariant {
		return fmt.Sprintf("IPN is of txn_type %q. %s supports IPNs of txn_type %q only", e.Type, e.Variant, MasspayType)
	}
	return fmt.Sprintf("%s does not support IPNs of txn_type %q. Please use %s instead", e.Variant, e.Type, e.UseType)
}

func (e *TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}
