package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gormsqlite "github.com/glebarez/sqlite"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"tigawane/internal/domain/geo"
	"tigawane/internal/infrastructure/cache"
	"tigawane/internal/infrastructure/feed"
	"tigawane/internal/infrastructure/persistence/sqlite/model"
	sqliterepo "tigawane/internal/infrastructure/persistence/sqlite/repository"
	sqliteuow "tigawane/internal/infrastructure/persistence/sqlite/uow"
	"tigawane/internal/infrastructure/storage"
	"tigawane/internal/usecase/location"
	"tigawane/internal/usecase/sharing"
)

type fixedGeocoder struct {
	coordinate geo.Coordinate
	err        error
}

func (g *fixedGeocoder) Geocode(_ context.Context, _ string) (geo.Coordinate, error) {
	if g.err != nil {
		return geo.Coordinate{}, g.err
	}
	return g.coordinate, nil
}

func setupServer(t *testing.T) (*Server, *fixedGeocoder) {
	t.Helper()

	db, err := gorm.Open(gormsqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Item{},
		&model.Claim{},
		&model.Profile{},
		&model.Notification{},
		&model.CollaborationRequest{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	geocoder := &fixedGeocoder{coordinate: geo.Coordinate{Latitude: -13.9626, Longitude: 33.7741}}
	store := storage.NewStore(t.TempDir(), "/uploads")
	broker := feed.NewBroker()

	svc := sharing.NewService(
		sqliterepo.NewItemRepository(db),
		sqliterepo.NewClaimRepository(db),
		sqliterepo.NewProfileRepository(db),
		sqliterepo.NewNotificationRepository(db),
		sqliterepo.NewCollaborationRepository(db),
		sqliteuow.NewUnitOfWork(db),
		location.NewResolver(geocoder, time.Second, time.Second),
		store,
		broker,
		sharing.Caches{
			Profiles: cache.NewMemory("profiles", 64, time.Minute),
			Stats:    cache.NewMemory("stats", 8, time.Minute),
			Items:    cache.NewMemory("items", 64, time.Minute),
			Nearby:   cache.NewMemory("nearby", 64, time.Minute),
		},
		sharing.DefaultCatalog(),
	)
	return NewServer(":0", svc, broker, ""), geocoder
}

func postJSON(t *testing.T, handler http.Handler, path, user string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if user != "" {
		req.Header.Set("X-User-ID", user)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestShareItemEndpointCoercesStringCoordinates(t *testing.T) {
	server, geocoder := setupServer(t)
	geocoder.err = errors.New("geocoder down")

	rec := postJSON(t, server.Handler(), "/items", "owner-1", map[string]any{
		"title":          "Maize flour",
		"category":       "grains",
		"item_type":      "food",
		"quantity":       1,
		"pickup_address": "unmappable landmark",
		"device": map[string]any{
			"latitude":  "-13.98",
			"longitude": "33.79",
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var item struct {
		LocationSource string  `json:"location_source"`
		Latitude       float64 `json:"latitude"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &item); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if item.LocationSource != string(geo.SourceFreshDevice) {
		t.Fatalf("location source = %q, want %q", item.LocationSource, geo.SourceFreshDevice)
	}
	if item.Latitude != -13.98 {
		t.Fatalf("latitude = %v, want -13.98", item.Latitude)
	}
}

func TestShareItemEndpointResolutionFailureIs422(t *testing.T) {
	server, geocoder := setupServer(t)
	geocoder.err = errors.New("geocoder down")

	rec := postJSON(t, server.Handler(), "/items", "owner-1", map[string]any{
		"title":          "Maize flour",
		"category":       "grains",
		"item_type":      "food",
		"quantity":       1,
		"pickup_address": "nowhere",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "location") {
		t.Fatalf("body = %s, want resolution guidance", rec.Body.String())
	}
}

func TestShareItemEndpointRequiresIdentity(t *testing.T) {
	server, _ := setupServer(t)

	rec := postJSON(t, server.Handler(), "/items", "", map[string]any{"title": "x"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestClaimEndpointsMapDomainErrors(t *testing.T) {
	server, _ := setupServer(t)

	rec := postJSON(t, server.Handler(), "/items", "owner-1", map[string]any{
		"title":          "Garden tools",
		"category":       "tools",
		"item_type":      "non-food",
		"quantity":       1,
		"pickup_address": "Area 25, Lilongwe",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("share status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var item struct {
		ItemID string `json:"item_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &item); err != nil {
		t.Fatalf("decode item: %v", err)
	}

	// Claiming your own item is a conflict, not a validation problem.
	rec = postJSON(t, server.Handler(), "/items/"+item.ItemID+"/claims", "owner-1", map[string]any{"quantity": 1})
	if rec.Code != http.StatusConflict {
		t.Fatalf("own-claim status = %d, want 409", rec.Code)
	}

	rec = postJSON(t, server.Handler(), "/items/missing/claims", "claimant-1", map[string]any{"quantity": 1})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing-item status = %d, want 404", rec.Code)
	}
}

func TestNearbyEndpointValidatesQuery(t *testing.T) {
	server, _ := setupServer(t)

	req := httptest.NewRequest(http.MethodGet, "/items/nearby?lat=abc&lon=33.7", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/items/nearby?lat=-13.96&lon=33.77&radius_km=5", nil)
	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestProfileEndpointOwnerOnly(t *testing.T) {
	server, _ := setupServer(t)

	req := httptest.NewRequest(http.MethodPut, "/profiles/user-2", strings.NewReader(`{"display_name":"X"}`))
	req.Header.Set("X-User-ID", "user-1")
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestFeedWebsocketStreamsItemEvents(t *testing.T) {
	server, _ := setupServer(t)
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/feed?table=items"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial feed: %v", err)
	}
	defer conn.Close()

	rec := postJSON(t, server.Handler(), "/items", "owner-1", map[string]any{
		"title":          "Children's books",
		"category":       "books",
		"item_type":      "non-food",
		"quantity":       3,
		"pickup_address": "Area 25, Lilongwe",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("share status = %d, body = %s", rec.Code, rec.Body.String())
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event feedEventMessage
	if err := conn.ReadJSON(&event); err != nil {
		t.Fatalf("read feed event: %v", err)
	}
	if event.Table != "items" || event.Op != "INSERT" {
		t.Fatalf("event = %+v, want items INSERT", event)
	}
}
