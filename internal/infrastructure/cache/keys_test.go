package cache

import "testing"

func TestBuildKeyIsOrderIndependent(t *testing.T) {
	a := BuildKey("nearby", map[string]string{"lat": "-13.96", "lon": "33.78", "radius": "10"})
	b := BuildKey("nearby", map[string]string{"radius": "10", "lon": "33.78", "lat": "-13.96"})
	if a != b {
		t.Fatalf("keys differ for identical params: %q vs %q", a, b)
	}
	if a != "nearby:lat=-13.96,lon=33.78,radius=10" {
		t.Fatalf("key = %q", a)
	}
}

func TestBuildKeyWithoutParams(t *testing.T) {
	if got := BuildKey("stats", nil); got != "stats" {
		t.Fatalf("BuildKey() = %q, want %q", got, "stats")
	}
	if got := BuildKey("stats", map[string]string{}); got != "stats" {
		t.Fatalf("BuildKey() = %q, want %q", got, "stats")
	}
}

func TestBuildKeyDistinguishesValues(t *testing.T) {
	a := BuildKey("profile", map[string]string{"user_id": "u1"})
	b := BuildKey("profile", map[string]string{"user_id": "u2"})
	if a == b {
		t.Fatal("keys for different params collided")
	}
}
