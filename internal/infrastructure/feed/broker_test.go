package feed

import (
	"context"
	"testing"
	"time"

	"tigawane/internal/ports"
)

func receive(t *testing.T, ch <-chan ports.ChangeEvent) ports.ChangeEvent {
	t.Helper()
	select {
	case ev, ok := <-ch:
		if !ok {
			t.Fatal("channel closed")
		}
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
	return ports.ChangeEvent{}
}

func TestBrokerDeliversMatchingTable(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	items, cancelItems := b.Subscribe("items", nil)
	defer cancelItems()
	claims, cancelClaims := b.Subscribe("claims", nil)
	defer cancelClaims()

	if err := b.Publish(context.Background(), ports.ChangeEvent{
		Table:    "items",
		Op:       ports.OpInsert,
		RecordID: "item-1",
	}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	ev := receive(t, items)
	if ev.RecordID != "item-1" || ev.Op != ports.OpInsert {
		t.Fatalf("event = %+v", ev)
	}
	if ev.OccurredAt == "" {
		t.Fatal("OccurredAt not stamped")
	}

	select {
	case ev := <-claims:
		t.Fatalf("claims subscriber received item event: %+v", ev)
	default:
	}
}

func TestBrokerAppliesPredicate(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	mine, cancel := b.Subscribe("notifications", func(ev ports.ChangeEvent) bool {
		return ev.Payload["recipient_id"] == "user-1"
	})
	defer cancel()

	_ = b.Publish(context.Background(), ports.ChangeEvent{
		Table: "notifications", Op: ports.OpInsert, RecordID: "n1",
		Payload: map[string]any{"recipient_id": "user-2"},
	})
	_ = b.Publish(context.Background(), ports.ChangeEvent{
		Table: "notifications", Op: ports.OpInsert, RecordID: "n2",
		Payload: map[string]any{"recipient_id": "user-1"},
	})

	ev := receive(t, mine)
	if ev.RecordID != "n2" {
		t.Fatalf("predicate let the wrong event through: %+v", ev)
	}
}

func TestBrokerEmptyTableSubscribesToAll(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	all, cancel := b.Subscribe("", nil)
	defer cancel()

	_ = b.Publish(context.Background(), ports.ChangeEvent{Table: "items", Op: ports.OpUpdate, RecordID: "i"})
	_ = b.Publish(context.Background(), ports.ChangeEvent{Table: "claims", Op: ports.OpInsert, RecordID: "c"})

	if receive(t, all).Table != "items" {
		t.Fatal("missed items event")
	}
	if receive(t, all).Table != "claims" {
		t.Fatal("missed claims event")
	}
}

func TestBrokerCancelClosesChannel(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	ch, cancel := b.Subscribe("items", nil)
	cancel()
	cancel() // double cancel is safe

	if _, ok := <-ch; ok {
		t.Fatal("channel still open after cancel")
	}

	// Publishing after cancel must not panic.
	if err := b.Publish(context.Background(), ports.ChangeEvent{Table: "items", Op: ports.OpInsert}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
}

func TestBrokerDropsOldestWhenLagging(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	ch, cancel := b.Subscribe("items", nil)
	defer cancel()

	for i := 0; i < subscriberBuffer+5; i++ {
		_ = b.Publish(context.Background(), ports.ChangeEvent{
			Table: "items", Op: ports.OpInsert, RecordID: "r",
		})
	}

	// The subscriber fell behind; it must still receive a full buffer of the
	// most recent events without the publisher having blocked.
	for i := 0; i < subscriberBuffer; i++ {
		receive(t, ch)
	}
}
