// Package events delivers normalized payment events to the rest of the platform.
package events

import (
	"context"
	"encoding/json"
	"log"
)

const contentTypeJSON = "application/json"

// Publisher is the interface used by services to publish events.
type Publisher interface {
	Publish(ctx context.Context, key string, value interface{}) error
	Close() error
}

// LogPublisher only logs events. Used when no broker is configured (local runs).
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, key string, value interface{}) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	log.Printf("[Publisher] %s %s", key, b)
	return nil
}

func (LogPublisher) Close() error { return nil }
