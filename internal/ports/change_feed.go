package ports

import "context"

// Change-feed operations, mirroring the row-level events the web client
// subscribes to.
const (
	OpInsert = "INSERT"
	OpUpdate = "UPDATE"
	OpDelete = "DELETE"
)

// ChangeEvent describes one mutation of a named table.
type ChangeEvent struct {
	Table      string
	Op         string
	RecordID   string
	Payload    map[string]any
	OccurredAt string
}

// ChangeFeed is a publish/subscribe channel for table mutations. Subscribers
// receive events for one table (empty table subscribes to all), optionally
// narrowed by a predicate. The returned cancel function releases the
// subscription; after cancel the channel is closed.
type ChangeFeed interface {
	Publish(ctx context.Context, event ChangeEvent) error
	Subscribe(table string, filter func(ChangeEvent) bool) (<-chan ChangeEvent, func())
}
