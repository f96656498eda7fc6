// internal/payment/webhook/paypal/processor.paypalWebhook.go
package paypal

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/Tanmoy095/LogiSynapse/ipn-service/internal/ipn"
	"github.com/Tanmoy095/LogiSynapse/ipn-service/internal/payment"
	paypalapi "github.com/Tanmoy095/LogiSynapse/ipn-service/internal/paypal"
)

const providerName = "PayPal"

// Processor turns PayPal IPN bodies into normalized events.
type Processor struct {
	validator *ipn.Validator
}

func New(validator *ipn.Validator) *Processor {
	return &Processor{validator: validator}
}

func (p *Processor) Provider() string {
	return providerName
}

// VerifyAndParse parses the body, acknowledges it with PayPal (once, even for a MassPay)
// and maps it to one event per payment. PayPal IPNs carry no signature header; the
// postback is the verification, so headers are unused.
func (p *Processor) VerifyAndParse(ctx context.Context, payload []byte, headers map[string]string) ([]payment.NormalizedEvent, error) {
	// 1. Parse (single or MassPay)
	notify, err := ipn.Parse(string(payload), p.validator)
	if err != nil {
		return nil, fmt.Errorf("paypal ipn rejected: %w", err)
	}

	// 2. Verify with PayPal (Security)
	ok, err := notify.Acknowledge(ctx)
	if err != nil {
		if paypalapi.IsRetryableError(err) {
			return nil, fmt.Errorf("%w: %w", payment.ErrProviderDown, err)
		}
		return nil, fmt.Errorf("paypal postback failed: %w", err)
	}
	if !ok {
		return nil, payment.ErrNotVerified
	}

	// 3. Map to Domain Events
	switch n := notify.(type) {
	case *ipn.MasspayNotification:
		if err := n.CheckCurrency(); err != nil {
			return nil, fmt.Errorf("%w: %w", payment.ErrUnprocessable, err)
		}
		payments := n.Payments()
		events := make([]payment.NormalizedEvent, 0, len(payments))
		for _, sp := range payments {
			event := normalize(sp.Notification)
			event.ProviderPaymentID = sp.MasspayTransactionID()
			event.UniqueID = sp.UniqueID()
			event.Masspay = true
			events = append(events, event)
		}
		return events, nil

	case *ipn.Notification:
		return []payment.NormalizedEvent{normalize(n)}, nil
	}
	return nil, fmt.Errorf("paypal ipn: unexpected notification %T", notify)
}

func normalize(n *ipn.Notification) payment.NormalizedEvent {
	event := payment.NormalizedEvent{
		EventID:           uuid.New(),
		Provider:          providerName,
		ProviderPaymentID: n.TransactionID(),
		NotificationType:  n.Type(),
		Status:            payment.MapStatus(n.Status()),
		RawStatus:         n.Status(),
		ItemID:            n.ItemID(),
		Invoice:           n.Invoice(),
		Account:           n.Account(),
		AmountCents:       n.GrossCents(),
		FeeCents:          n.FeeCents(),
		Currency:          n.Currency(),
		Test:              n.Test(),
	}
	if code := n.Params().Get("reason_code"); code != "" {
		event.ErrorCode = &code
	}
	if reason := n.Params().Get("pending_reason"); reason != "" {
		event.ErrorMessage = &reason
	}
	if at, err := n.ReceivedAt(); err == nil {
		event.OccurredAt = at
	}
	return event
}
