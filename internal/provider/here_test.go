package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Abhisg5/trafficDetector/internal/domain"
)

const hereFlowBody = `{"RWS":[{"RW":[{"FIS":[{"FI":[{"CF":[{"SP":20,"FF":80}]}]}]}]}]}`

func newHereAgainst(t *testing.T, apiKey string, handler http.HandlerFunc) *Here {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	adapter := NewHere(apiKey, srv.Client())
	adapter.baseURL = srv.URL
	return adapter
}

func TestHereFetch(t *testing.T) {
	adapter := newHereAgainst(t, "key", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("bbox"); got != "33.7390,-84.3980,33.7590,-84.3780" {
			t.Errorf("bbox = %q", got)
		}
		w.Write([]byte(hereFlowBody))
	})

	r, err := adapter.Fetch(context.Background(), "atlanta", 33.7490, -84.3880)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if r.Source != "here" {
		t.Errorf("Source = %q, want here", r.Source)
	}
	if r.CongestionScore != 0.75 {
		t.Errorf("CongestionScore = %v, want 0.75", r.CongestionScore)
	}
	if r.TrafficLevel != domain.LevelSevere {
		t.Errorf("TrafficLevel = %q, want severe", r.TrafficLevel)
	}
	if r.AverageSpeed != 20 {
		t.Errorf("AverageSpeed = %v, want 20", r.AverageSpeed)
	}
}

func TestHereMissingCredential(t *testing.T) {
	adapter := newHereAgainst(t, "", func(w http.ResponseWriter, r *http.Request) {
		t.Error("adapter made a network call without a credential")
	})

	_, err := adapter.Fetch(context.Background(), "atlanta", 33.7490, -84.3880)
	if !errors.Is(err, domain.ErrMissingCredential) {
		t.Fatalf("error = %v, want ErrMissingCredential", err)
	}
}

func TestHereNoDataOnSparsePayloads(t *testing.T) {
	// HERE signals lack of coverage by omitting nested levels.
	bodies := []string{
		`{}`,
		`{"RWS":[]}`,
		`{"RWS":[{"RW":[]}]}`,
		`{"RWS":[{"RW":[{"FIS":[]}]}]}`,
		`{"RWS":[{"RW":[{"FIS":[{"FI":[]}]}]}]}`,
		`{"RWS":[{"RW":[{"FIS":[{"FI":[{"CF":[]}]}]}]}]}`,
	}

	for _, body := range bodies {
		adapter := newHereAgainst(t, "key", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		})
		_, err := adapter.Fetch(context.Background(), "atlanta", 33.7490, -84.3880)
		if !errors.Is(err, domain.ErrNoData) {
			t.Errorf("body %s: error = %v, want ErrNoData", body, err)
		}
	}
}

func TestHereCredentialRejected(t *testing.T) {
	adapter := newHereAgainst(t, "stale", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := adapter.Fetch(context.Background(), "atlanta", 33.7490, -84.3880)
	if !errors.Is(err, domain.ErrCredentialRejected) {
		t.Fatalf("error = %v, want ErrCredentialRejected", err)
	}
}

func TestPoolScopesInsecureTransport(t *testing.T) {
	pool := NewPool()
	defer pool.Close()

	verified := pool.Client(0, false)
	relaxed := pool.Client(0, true)

	if verified.Transport == relaxed.Transport {
		t.Fatal("TLS-relaxed client shares the verified transport")
	}
	vt := verified.Transport.(*http.Transport)
	if vt.TLSClientConfig != nil && vt.TLSClientConfig.InsecureSkipVerify {
		t.Error("verified transport has TLS verification disabled")
	}
	rt := relaxed.Transport.(*http.Transport)
	if rt.TLSClientConfig == nil || !rt.TLSClientConfig.InsecureSkipVerify {
		t.Error("relaxed transport does not skip verification")
	}
}
