// Package realtime distributes change notifications for the data
// collections over Redis Pub/Sub. Delivery is at-most-once and carries no
// ordering guarantee relative to the write that caused it; consumers must
// treat an event as "data may have changed, re-derive" rather than as a
// precise delta.
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Collection names published on the bus.
const (
	CollectionDonations = "donations"
	CollectionMembers   = "kakasaku_members"
	CollectionPrograms  = "programs"
	CollectionSessions  = "sessions"
)

// Op is the kind of change that happened to a record.
type Op string

const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Change describes a single insert/update/delete on a collection. NewRow and
// OldRow are optional row snapshots; subscribers that cannot use them fall
// back to a full re-read.
type Change struct {
	Collection string          `json:"collection"`
	Op         Op              `json:"op"`
	RecordID   string          `json:"record_id,omitempty"`
	NewRow     json.RawMessage `json:"new_row,omitempty"`
	OldRow     json.RawMessage `json:"old_row,omitempty"`
}

// Bus publishes and subscribes collection change events.
type Bus struct {
	rdb *redis.Client
}

// NewBus wraps the given Redis client.
func NewBus(rdb *redis.Client) (*Bus, error) {
	if rdb == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	return &Bus{rdb: rdb}, nil
}

func channelFor(collection string) string {
	return "changes:" + collection
}

// Publish sends a change event to every subscriber of its collection.
func (b *Bus) Publish(ctx context.Context, change Change) error {
	if change.Collection == "" {
		return fmt.Errorf("change collection is required")
	}
	payload, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("marshal change: %w", err)
	}
	if err := b.rdb.Publish(ctx, channelFor(change.Collection), payload).Err(); err != nil {
		return fmt.Errorf("publish change: %w", err)
	}
	return nil
}

// Subscription represents an active subscription to one collection. Caller
// must call Close() when done; Close is idempotent and also runs when the
// subscribing context is cancelled.
type Subscription struct {
	events <-chan Change
	errors <-chan error
	cancel func()
	once   sync.Once
}

// Events returns the channel of change events.
func (s *Subscription) Events() <-chan Change {
	return s.events
}

// Errors returns the channel of subscription errors (malformed payloads).
func (s *Subscription) Errors() <-chan error {
	return s.errors
}

// Close stops the subscription and releases the underlying Pub/Sub
// connection. Implements io.Closer.
func (s *Subscription) Close() error {
	s.once.Do(s.cancel)
	return nil
}

// Subscribe opens a subscription to a collection. When recordID is not
// empty, only events for that record (or events without a record id, which
// cannot be filtered) are delivered.
//
// Events arrive on a buffered channel (size 16); a slow consumer can miss
// events because Redis Pub/Sub is at-most-once, which is acceptable since
// every consumer re-reads on notification anyway.
func (b *Bus) Subscribe(ctx context.Context, collection, recordID string) (*Subscription, error) {
	if collection == "" {
		return nil, fmt.Errorf("collection is required")
	}
	pubsub := b.rdb.Subscribe(ctx, channelFor(collection))

	eventsChan := make(chan Change, 16)
	errorsChan := make(chan error, 16)
	subCtx, cancelFunc := context.WithCancel(ctx)

	go func() {
		defer close(eventsChan)
		defer close(errorsChan)
		defer pubsub.Close()

		ch := pubsub.Channel()
		for {
			select {
			case <-subCtx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var change Change
				if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
					select {
					case errorsChan <- fmt.Errorf("unmarshal change event: %w", err):
					case <-subCtx.Done():
						return
					}
					continue
				}
				if recordID != "" && change.RecordID != "" && change.RecordID != recordID {
					continue
				}
				select {
				case eventsChan <- change:
				case <-subCtx.Done():
					return
				}
			}
		}
	}()

	return &Subscription{
		events: eventsChan,
		errors: errorsChan,
		cancel: cancelFunc,
	}, nil
}
