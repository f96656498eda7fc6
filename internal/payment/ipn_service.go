// internal/payment/ipn_service.go
package payment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/Tanmoy095/LogiSynapse/ipn-service/internal/ipn"
	"github.com/Tanmoy095/LogiSynapse/ipn-service/internal/store"
)

// IPNService orchestrates one inbound callback: audit log, verification, event publishing.
type IPNService struct {
	processor WebhookProcessor
	logStore  store.NotificationLogStore
	publisher Publisher

	// PayPal redelivers an IPN until it gets a 200. When two copies of the same body
	// land at the same time, only one postback and one publish happen; the other
	// caller receives the same Outcome.
	sf singleflight.Group
}

// Outcome is what HandleIPN did with a callback.
type Outcome struct {
	LogID  uuid.UUID
	Events []NormalizedEvent
	Shared bool // true when the result came from a concurrent identical callback
}

func NewIPNService(processor WebhookProcessor, logStore store.NotificationLogStore, publisher Publisher) *IPNService {
	return &IPNService{
		processor: processor,
		logStore:  logStore,
		publisher: publisher,
		//sf is zero-value initialized, which is safe to use.
	}
}

// HandleIPN processes a raw callback body. ErrNotVerified means PayPal answered
// INVALID: the body must be dropped, not retried.
func (s *IPNService) HandleIPN(ctx context.Context, payload []byte) (*Outcome, error) {
	sum := sha256.Sum256(payload)
	key := "ipn_" + hex.EncodeToString(sum[:])

	// Duplicates wait on the first caller's work, so it must not die with that caller's request.
	v, err, shared := s.sf.Do(key, func() (interface{}, error) {
		return s.process(context.WithoutCancel(ctx), payload)
	})
	if err != nil {
		return nil, err
	}
	out := *v.(*Outcome)
	out.Shared = shared
	return &out, nil
}

func (s *IPNService) process(ctx context.Context, payload []byte) (*Outcome, error) {
	// 1. Record the callback before anything can fail
	params := ipn.ParseParams(string(payload))
	entry := &store.NotificationLog{
		ID:            uuid.New(),
		Provider:      s.processor.Provider(),
		TransactionID: params.Get("txn_id"),
		TxnType:       params.Get("txn_type"),
		Payload:       string(payload),
		Status:        store.LogReceived,
		ReceivedAt:    time.Now(),
	}
	log.Printf("[IPN] Received %s callback (txn_type=%q txn_id=%q) log=%s", entry.Provider, entry.TxnType, entry.TransactionID, entry.ID)
	if err := s.logStore.CreateLog(ctx, entry); err != nil {
		// Non-blocking. Losing the audit row must not make PayPal resend forever.
		log.Printf("[WARN] Could not record IPN %s: %v", entry.ID, err)
	}

	// 2. Verify and normalize
	events, err := s.processor.VerifyAndParse(ctx, payload, nil)
	if err != nil {
		status := store.LogHandleFailed
		switch {
		case errors.Is(err, ErrNotVerified):
			status = store.LogRejected
			log.Printf("[IPN] PayPal answered INVALID for log=%s, possible forged notification", entry.ID)
		case errors.Is(err, ErrUnprocessable):
			status = store.LogUnprocessable
			log.Printf("[CRITICAL] Verified IPN log=%s cannot be processed, needs manual review: %v", entry.ID, err)
		}
		s.updateLog(ctx, entry.ID, status, 0, err)
		return nil, err
	}

	// 3. Publish
	if err := s.publishAll(ctx, events); err != nil {
		s.updateLog(ctx, entry.ID, store.LogHandleFailed, 0, err)
		return nil, fmt.Errorf("failed to publish ipn events: %w", err)
	}

	s.updateLog(ctx, entry.ID, store.LogHandled, len(events), nil)
	log.Printf("[IPN] Handled log=%s, %d event(s) published", entry.ID, len(events))
	return &Outcome{LogID: entry.ID, Events: events}, nil
}

// publishAll sends every event concurrently. If one publish fails the group context
// is cancelled and the first error is returned; the whole callback then fails and
// PayPal redelivers it.
func (s *IPNService) publishAll(ctx context.Context, events []NormalizedEvent) error {
	if s.publisher == nil || len(events) == 0 {
		return nil
	}
	group, gctx := errgroup.WithContext(ctx)
	for _, event := range events {
		event := event
		group.Go(func() error {
			key := event.ProviderPaymentID
			if key == "" {
				key = event.EventID.String()
			}
			if err := s.publisher.Publish(gctx, key, event); err != nil {
				return fmt.Errorf("event %s: %w", event.EventID, err)
			}
			return nil
		})
	}
	return group.Wait()
}

func (s *IPNService) updateLog(ctx context.Context, id uuid.UUID, status store.LogStatus, eventCount int, cause error) {
	var msg *string
	if cause != nil {
		m := cause.Error()
		msg = &m
	}
	if err := s.logStore.UpdateLogStatus(ctx, id, status, eventCount, msg); err != nil {
		log.Printf("[WARN] IPN log %s could not move to %s: %v", id, status, err)
	}
}
