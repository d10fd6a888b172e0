package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Abhisg5/trafficDetector/internal/congestion"
	"github.com/Abhisg5/trafficDetector/internal/domain"
)

const hereFlowURL = "https://traffic.ls.hereapi.com/traffic/6.2/flow.json"

// bbox half-size in degrees around the resolved point, roughly 1 km.
const hereBBoxDelta = 0.01

// Here queries the HERE Traffic Flow API over a small bounding box around a
// point. HERE's certificate chain is not always validated by default clients,
// so the collector may hand this adapter a TLS-relaxed client; that
// relaxation is scoped to this adapter's transport only.
type Here struct {
	apiKey  string
	client  *http.Client
	baseURL string
}

// NewHere creates a HERE adapter. client is provided by the collector's
// connection pool.
func NewHere(apiKey string, client *http.Client) *Here {
	return &Here{apiKey: apiKey, client: client, baseURL: hereFlowURL}
}

// Name implements Adapter.
func (h *Here) Name() string { return "here" }

// hereResponse mirrors HERE's deeply nested flow payload. Any empty level
// means no flow data inside the box.
type hereResponse struct {
	RWS []struct {
		RW []struct {
			FIS []struct {
				FI []struct {
					CF []struct {
						SP float64 `json:"SP"`
						FF float64 `json:"FF"`
					} `json:"CF"`
				} `json:"FI"`
			} `json:"FIS"`
		} `json:"RW"`
	} `json:"RWS"`
}

// Fetch implements Adapter.
func (h *Here) Fetch(ctx context.Context, location string, lat, lng float64) (domain.Reading, error) {
	if h.apiKey == "" {
		return domain.Reading{}, fmt.Errorf("here: %w", domain.ErrMissingCredential)
	}

	params := url.Values{}
	params.Set("apiKey", h.apiKey)
	params.Set("bbox", fmt.Sprintf("%.4f,%.4f,%.4f,%.4f",
		lat-hereBBoxDelta, lng-hereBBoxDelta, lat+hereBBoxDelta, lng+hereBBoxDelta))
	params.Set("responseattributes", "sh,fc")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.Reading{}, fmt.Errorf("here: build request: %w", err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return domain.Reading{}, fmt.Errorf("here: request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return domain.Reading{}, fmt.Errorf("here: status %d: %w", resp.StatusCode, domain.ErrCredentialRejected)
	case resp.StatusCode == http.StatusNotFound:
		return domain.Reading{}, fmt.Errorf("here: %w", domain.ErrNoData)
	case resp.StatusCode != http.StatusOK:
		return domain.Reading{}, fmt.Errorf("here: unexpected status %d", resp.StatusCode)
	}

	var body hereResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Reading{}, fmt.Errorf("here: decode response: %w", err)
	}

	cf, ok := firstFlow(body)
	if !ok {
		return domain.Reading{}, fmt.Errorf("here: %w", domain.ErrNoData)
	}

	score := congestion.Score(cf.sp, cf.ff)

	return domain.Reading{
		Location:        location,
		Latitude:        lat,
		Longitude:       lng,
		TrafficLevel:    congestion.LevelFor(score),
		CongestionScore: score,
		AverageSpeed:    cf.sp,
		Source:          h.Name(),
		Timestamp:       time.Now().UTC(),
	}, nil
}

type hereFlow struct{ sp, ff float64 }

// firstFlow walks RWS[0].RW[0].FIS[0].FI[0].CF[0]; absence at any level is
// the provider's way of signaling no data here.
func firstFlow(body hereResponse) (hereFlow, bool) {
	if len(body.RWS) == 0 || len(body.RWS[0].RW) == 0 {
		return hereFlow{}, false
	}
	rw := body.RWS[0].RW[0]
	if len(rw.FIS) == 0 || len(rw.FIS[0].FI) == 0 {
		return hereFlow{}, false
	}
	fi := rw.FIS[0].FI[0]
	if len(fi.CF) == 0 {
		return hereFlow{}, false
	}
	return hereFlow{sp: fi.CF[0].SP, ff: fi.CF[0].FF}, true
}
