// internal/ipn/dispatch.go
package ipn

import "errors"

// Parse builds the right notification for raw: a *Notification, or a
// *MasspayNotification when the single variant refuses the body's txn_type.
func Parse(raw string, v *Validator) (Notifier, error) {
	n, err := NewNotification(raw, v)
	if err == nil {
		return n, nil
	}
	if !errors.Is(err, ErrTypeMismatch) {
		return nil, err
	}
	return NewMasspayNotification(raw, v)
}

// NewFromParams builds a notification from an already parsed field set. The fields are
// encoded in order and go through Parse, so routing by txn_type is the same as for an
// inbound body.
func NewFromParams(p *Params, v *Validator) (Notifier, error) {
	return Parse(p.Encode(), v)
}
