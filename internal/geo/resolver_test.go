package geo_test

import (
	"errors"
	"testing"

	"github.com/Abhisg5/trafficDetector/internal/domain"
	"github.com/Abhisg5/trafficDetector/internal/geo"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantLat float64
		wantLng float64
	}{
		{
			name:    "exact name",
			query:   "atlanta",
			wantLat: 33.7490,
			wantLng: -84.3880,
		},
		{
			name:    "case insensitive",
			query:   "Sandy Springs",
			wantLat: 33.9304,
			wantLng: -84.3733,
		},
		{
			name:    "substring containment",
			query:   "Downtown Decatur, GA",
			wantLat: 33.7748,
			wantLng: -84.2963,
		},
		{
			// "atlanta" precedes other entries, so a name containing both
			// resolves via the earlier table entry.
			name:    "table order decides overlapping matches",
			query:   "Tucker near Atlanta",
			wantLat: 33.7490,
			wantLng: -84.3880,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lat, lng, err := geo.Resolve(tt.query)
			if err != nil {
				t.Fatalf("Resolve(%q) returned error: %v", tt.query, err)
			}
			if lat != tt.wantLat || lng != tt.wantLng {
				t.Errorf("Resolve(%q) = (%v, %v), want (%v, %v)", tt.query, lat, lng, tt.wantLat, tt.wantLng)
			}
		})
	}
}

func TestResolveUnknownFailsClosed(t *testing.T) {
	_, _, err := geo.Resolve("Springfield")
	if !errors.Is(err, domain.ErrLocationNotFound) {
		t.Fatalf("Resolve(unknown) error = %v, want ErrLocationNotFound", err)
	}
}

func TestKnownOrder(t *testing.T) {
	names := geo.Known()
	if len(names) != 20 {
		t.Fatalf("Known() returned %d names, want 20", len(names))
	}
	if names[0] != "atlanta" {
		t.Errorf("Known()[0] = %q, want atlanta first", names[0])
	}
}
