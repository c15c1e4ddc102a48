package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tigawane/internal/ports"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestGeocodeCoercesStringCoordinates(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Area 25, Lilongwe" {
			t.Errorf("q = %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != "tigawane-test/1.0" {
			t.Errorf("User-Agent = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"lat": "-13.9626", "lon": "33.7741", "display_name": "Area 25, Lilongwe, Malawi"}]`))
	})

	c := NewClient(srv.URL, "tigawane-test/1.0", time.Second)
	got, err := c.Geocode(context.Background(), "Area 25, Lilongwe")
	if err != nil {
		t.Fatalf("Geocode() error = %v", err)
	}
	if got.Latitude != -13.9626 || got.Longitude != 33.7741 {
		t.Fatalf("Geocode() = %v", got)
	}
}

func TestGeocodeEmptyResultSet(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})

	c := NewClient(srv.URL, "tigawane-test/1.0", time.Second)
	_, err := c.Geocode(context.Background(), "nowhere at all")
	if !errors.Is(err, ports.ErrNoGeocodeResult) {
		t.Fatalf("err = %v, want ErrNoGeocodeResult", err)
	}
}

func TestGeocodeNonNumericCoordinate(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"lat": "not-a-number", "lon": "33.7741"}]`))
	})

	c := NewClient(srv.URL, "tigawane-test/1.0", time.Second)
	if _, err := c.Geocode(context.Background(), "Area 25"); err == nil {
		t.Fatal("Geocode() accepted a non-numeric latitude")
	}
}

func TestGeocodeServerError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "over capacity", http.StatusServiceUnavailable)
	})

	c := NewClient(srv.URL, "tigawane-test/1.0", time.Second)
	if _, err := c.Geocode(context.Background(), "Area 25"); err == nil {
		t.Fatal("Geocode() ignored a 503")
	}
}

func TestGeocodeRespectsContext(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`[]`))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	c := NewClient(srv.URL, "tigawane-test/1.0", time.Second)
	if _, err := c.Geocode(ctx, "Area 25"); err == nil {
		t.Fatal("Geocode() did not honor context deadline")
	}
}
