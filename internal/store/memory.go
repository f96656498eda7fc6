package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps notification logs in process. Used when no database is configured.
type MemoryStore struct {
	logs map[uuid.UUID]NotificationLog
	mu   sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		logs: make(map[uuid.UUID]NotificationLog),
	}
}

func (s *MemoryStore) CreateLog(ctx context.Context, entry *NotificationLog) error {
	// Check if the context is canceled or timed out
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry.ReceivedAt.IsZero() {
		entry.ReceivedAt = time.Now()
	}
	entry.UpdatedAt = entry.ReceivedAt
	s.logs[entry.ID] = *entry
	return nil
}

func (s *MemoryStore) UpdateLogStatus(ctx context.Context, id uuid.UUID, status LogStatus, eventCount int, errMsg *string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.logs[id]
	if !ok {
		return ErrLogNotFound
	}
	entry.Status = status
	entry.EventCount = eventCount
	entry.ErrorMessage = errMsg
	entry.UpdatedAt = time.Now()
	s.logs[id] = entry
	return nil
}

func (s *MemoryStore) GetLog(ctx context.Context, id uuid.UUID) (*NotificationLog, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.logs[id]
	if !ok {
		return nil, ErrLogNotFound
	}
	return &entry, nil
}
