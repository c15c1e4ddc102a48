package sharing

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"tigawane/internal/bootstrap/logging"
	"tigawane/internal/ports"
	"tigawane/internal/usecase/location"
)

// Caches groups the namespaces the service memoizes into. Every mutation
// path must invalidate the namespaces it can stale.
type Caches struct {
	Profiles ports.Cache
	Stats    ports.Cache
	Items    ports.Cache
	Nearby   ports.Cache
}

type Service struct {
	items          ports.ItemRepository
	claims         ports.ClaimRepository
	profiles       ports.ProfileRepository
	notifications  ports.NotificationRepository
	collaborations ports.CollaborationRepository
	uow            ports.UnitOfWork
	resolver       *location.Resolver
	store          ports.ObjectStore
	feed           ports.ChangeFeed
	caches         Caches
	catalog        Catalog

	now   func() time.Time
	newID func() string
}

// NewService wires the sharing usecases with their repositories, the pickup
// coordinate resolver and the supporting cache/feed/storage collaborators.
func NewService(
	items ports.ItemRepository,
	claims ports.ClaimRepository,
	profiles ports.ProfileRepository,
	notifications ports.NotificationRepository,
	collaborations ports.CollaborationRepository,
	uow ports.UnitOfWork,
	resolver *location.Resolver,
	store ports.ObjectStore,
	feed ports.ChangeFeed,
	caches Caches,
	catalog Catalog,
) *Service {
	return &Service{
		items:          items,
		claims:         claims,
		profiles:       profiles,
		notifications:  notifications,
		collaborations: collaborations,
		uow:            uow,
		resolver:       resolver,
		store:          store,
		feed:           feed,
		caches:         caches,
		catalog:        catalog,
		now:            func() time.Time { return time.Now().UTC() },
		newID:          func() string { return uuid.NewString() },
	}
}

func (s *Service) timestamp() string {
	return s.now().Format(time.RFC3339Nano)
}

// invalidateItemCaches drops everything derived from item rows. Stats are
// flushed too since they aggregate over items and claims.
func (s *Service) invalidateItemCaches() {
	s.caches.Items.Flush()
	s.caches.Nearby.Flush()
	s.caches.Stats.Flush()
}

// publishChange emits a feed event. The feed is advisory; a publish error is
// logged and never fails the mutation that triggered it.
func (s *Service) publishChange(ctx context.Context, table, op, recordID string, payload map[string]any) {
	if s.feed == nil {
		return
	}
	if err := s.feed.Publish(ctx, ports.ChangeEvent{
		Table:    table,
		Op:       op,
		RecordID: recordID,
		Payload:  payload,
	}); err != nil {
		logging.Warn(ctx, "publish change event failed",
			slog.String("table", table),
			slog.String("op", op),
			slog.Any("err", err))
	}
}

// readCachedJSON loads key from c into v. Any cache or decode problem is
// treated as a miss.
func readCachedJSON(ctx context.Context, c ports.Cache, key string, v any) bool {
	if c == nil {
		return false
	}
	data, found := c.Get(key)
	if !found {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		logging.Warn(ctx, "corrupt cache entry, treating as miss",
			slog.String("key", key),
			slog.Any("err", err))
		c.Invalidate(key)
		return false
	}
	return true
}

// writeCachedJSON stores v under key, best-effort.
func writeCachedJSON(ctx context.Context, c ports.Cache, key string, v any) {
	if c == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		logging.Warn(ctx, "cache marshal failed, skipping store",
			slog.String("key", key),
			slog.Any("err", err))
		return
	}
	c.Set(key, data, 0)
}
