package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Abhisg5/trafficDetector/internal/domain"
)

func newTomTomAgainst(t *testing.T, apiKey string, handler http.HandlerFunc) *TomTom {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	adapter := NewTomTom(apiKey, srv.Client())
	adapter.baseURL = srv.URL
	return adapter
}

func TestTomTomFetch(t *testing.T) {
	adapter := newTomTomAgainst(t, "key", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("unit"); got != "KMPH" {
			t.Errorf("unit = %q, want KMPH", got)
		}
		if got := r.URL.Query().Get("point"); got != "33.7490,-84.3880" {
			t.Errorf("point = %q, want 33.7490,-84.3880", got)
		}
		w.Write([]byte(`{"flowSegmentData":{"currentSpeed":30,"freeFlowSpeed":60}}`))
	})

	r, err := adapter.Fetch(context.Background(), "atlanta", 33.7490, -84.3880)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if r.Source != "tomtom" {
		t.Errorf("Source = %q, want tomtom", r.Source)
	}
	if r.CongestionScore != 0.5 {
		t.Errorf("CongestionScore = %v, want 0.5", r.CongestionScore)
	}
	if r.TrafficLevel != domain.LevelMedium {
		t.Errorf("TrafficLevel = %q, want medium", r.TrafficLevel)
	}
	if r.AverageSpeed != 30 {
		t.Errorf("AverageSpeed = %v, want 30", r.AverageSpeed)
	}
	if r.Timestamp.IsZero() {
		t.Error("Timestamp not set")
	}
}

func TestTomTomMissingCredential(t *testing.T) {
	called := false
	adapter := newTomTomAgainst(t, "", func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := adapter.Fetch(context.Background(), "atlanta", 33.7490, -84.3880)
	if !errors.Is(err, domain.ErrMissingCredential) {
		t.Fatalf("error = %v, want ErrMissingCredential", err)
	}
	if called {
		t.Error("adapter made a network call without a credential")
	}
}

func TestTomTomNoData(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"missing flowSegmentData": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{}`))
		},
		"404 for unmapped point": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		},
	}

	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			adapter := newTomTomAgainst(t, "key", handler)
			_, err := adapter.Fetch(context.Background(), "atlanta", 33.7490, -84.3880)
			if !errors.Is(err, domain.ErrNoData) {
				t.Fatalf("error = %v, want ErrNoData", err)
			}
		})
	}
}

func TestTomTomCredentialRejected(t *testing.T) {
	adapter := newTomTomAgainst(t, "stale", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := adapter.Fetch(context.Background(), "atlanta", 33.7490, -84.3880)
	if !errors.Is(err, domain.ErrCredentialRejected) {
		t.Fatalf("error = %v, want ErrCredentialRejected", err)
	}
}

func TestTomTomTransientFailures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		},
		"malformed payload": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"flowSegmentData":`))
		},
	}

	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			adapter := newTomTomAgainst(t, "key", handler)
			_, err := adapter.Fetch(context.Background(), "atlanta", 33.7490, -84.3880)
			if err == nil {
				t.Fatal("expected an error")
			}
			// Transient failures carry no sentinel: they are whatever is
			// left after the classified cases.
			for _, sentinel := range []error{domain.ErrNoData, domain.ErrMissingCredential, domain.ErrCredentialRejected} {
				if errors.Is(err, sentinel) {
					t.Errorf("error %v wrongly classified as %v", err, sentinel)
				}
			}
		})
	}
}
