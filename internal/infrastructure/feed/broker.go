package feed

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"tigawane/internal/bootstrap/logging"
	"tigawane/internal/ports"
)

const subscriberBuffer = 32

// Broker is an in-process change feed: repositories' mutations are published
// as row events and pushed to subscribers (the websocket endpoint, the admin
// console). A slow subscriber loses its oldest buffered event rather than
// blocking publishers.
type Broker struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]*subscriber
	closed bool
}

type subscriber struct {
	table  string
	filter func(ports.ChangeEvent) bool
	ch     chan ports.ChangeEvent
}

var _ ports.ChangeFeed = (*Broker)(nil)

func NewBroker() *Broker {
	return &Broker{subs: make(map[int]*subscriber)}
}

func (b *Broker) Publish(ctx context.Context, event ports.ChangeEvent) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if event.Table == "" || event.Op == "" {
		return errors.New("event table and op are required")
	}
	if event.OccurredAt == "" {
		event.OccurredAt = time.Now().UTC().Format(time.RFC3339Nano)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return errors.New("change feed is closed")
	}

	for _, sub := range b.subs {
		if sub.table != "" && sub.table != event.Table {
			continue
		}
		if sub.filter != nil && !sub.filter(event) {
			continue
		}
		select {
		case sub.ch <- event:
		default:
			// Buffer full: drop the oldest queued event for this subscriber.
			select {
			case dropped := <-sub.ch:
				logging.Warn(ctx, "change feed subscriber lagging, dropping event",
					slog.String("table", dropped.Table),
					slog.String("op", dropped.Op),
					slog.String("record_id", dropped.RecordID))
			default:
			}
			select {
			case sub.ch <- event:
			default:
			}
		}
	}
	return nil
}

func (b *Broker) Subscribe(table string, filter func(ports.ChangeEvent) bool) (<-chan ports.ChangeEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	sub := &subscriber{
		table:  table,
		filter: filter,
		ch:     make(chan ports.ChangeEvent, subscriberBuffer),
	}
	if b.closed {
		close(sub.ch)
		return sub.ch, func() {}
	}
	b.subs[id] = sub

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if _, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub.ch)
			}
		})
	}
	return sub.ch, cancel
}

// Close shuts the feed down and closes every subscriber channel.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, sub := range b.subs {
		delete(b.subs, id)
		close(sub.ch)
	}
}
