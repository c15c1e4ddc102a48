package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"tigawane/internal/bootstrap/logging"
	"tigawane/internal/ports"
)

var feedUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The browser client is served from elsewhere; identity rides in the
	// first-party headers, not in the origin.
	CheckOrigin: func(*http.Request) bool { return true },
}

const feedWriteTimeout = 10 * time.Second

type feedEventMessage struct {
	Table      string         `json:"table"`
	Op         string         `json:"op"`
	RecordID   string         `json:"record_id"`
	Payload    map[string]any `json:"payload,omitempty"`
	OccurredAt string         `json:"occurred_at"`
}

// handleFeed upgrades to a websocket and streams change events for the
// requested table (all tables when the query parameter is empty) until the
// client goes away.
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	if s.feed == nil {
		writeError(w, http.StatusServiceUnavailable, "change feed is not configured")
		return
	}

	table := r.URL.Query().Get("table")
	conn, err := feedUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	events, cancel := s.feed.Subscribe(table, nil)
	defer cancel()

	// Reads only surface client disconnects; the feed is one-way.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	ctx := logging.WithAttrs(r.Context(), slog.String("feed_table", table))
	for event := range events {
		_ = conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
		if err := conn.WriteJSON(toFeedMessage(event)); err != nil {
			logging.Warn(ctx, "feed subscriber dropped", slog.Any("err", err))
			return
		}
	}
}

func toFeedMessage(event ports.ChangeEvent) feedEventMessage {
	return feedEventMessage{
		Table:      event.Table,
		Op:         event.Op,
		RecordID:   event.RecordID,
		Payload:    event.Payload,
		OccurredAt: event.OccurredAt,
	}
}
