// internal/store/notification_log.go
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrLogNotFound = errors.New("notification log not found")

type LogStatus string

const (
	LogReceived      LogStatus = "received"
	LogHandled       LogStatus = "handled"
	LogHandleFailed  LogStatus = "handle_failed"
	LogRejected      LogStatus = "rejected"      // PayPal answered INVALID
	LogUnprocessable LogStatus = "unprocessable" // verified, but can never be handled
)

// NotificationLog is the audit record of one inbound IPN callback.
// It is not a business record: invoices and bills live with their own services.
type NotificationLog struct {
	ID            uuid.UUID
	Provider      string
	TransactionID string // txn_id, empty for MassPay
	TxnType       string
	Payload       string // raw body exactly as received
	Status        LogStatus
	EventCount    int
	ErrorMessage  *string // Pointer to allow NULL
	ReceivedAt    time.Time
	UpdatedAt     time.Time
}

// NotificationLogStore persists IPN audit records.
type NotificationLogStore interface {
	// CreateLog records the callback BEFORE verification, so even crashes leave a trace.
	CreateLog(ctx context.Context, entry *NotificationLog) error
	// UpdateLogStatus transitions the state (e.g., received -> handled).
	UpdateLogStatus(ctx context.Context, id uuid.UUID, status LogStatus, eventCount int, errMsg *string) error
	GetLog(ctx context.Context, id uuid.UUID) (*NotificationLog, error)
}
