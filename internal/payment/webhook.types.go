// internal/payment/webhook.types.go
package payment

import "context"

// WebhookProcessor describes a component that can turn raw callback bytes into
// NormalizedEvents. Verification may need the network (PayPal postback), hence ctx.
type WebhookProcessor interface {
	Provider() string
	VerifyAndParse(ctx context.Context, payload []byte, headers map[string]string) ([]NormalizedEvent, error)
}

// Publisher is where normalized events go once verified (Kafka, RabbitMQ...).
type Publisher interface {
	Publish(ctx context.Context, key string, value interface{}) error
}
