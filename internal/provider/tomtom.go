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

const tomtomFlowURL = "https://api.tomtom.com/traffic/services/4/flowSegmentData/absolute/10/json"

// TomTom queries the TomTom Traffic Flow Segment API for the road segment
// nearest a point.
type TomTom struct {
	apiKey  string
	client  *http.Client
	baseURL string
}

// NewTomTom creates a TomTom adapter. client is provided by the collector's
// connection pool.
func NewTomTom(apiKey string, client *http.Client) *TomTom {
	return &TomTom{apiKey: apiKey, client: client, baseURL: tomtomFlowURL}
}

// Name implements Adapter.
func (t *TomTom) Name() string { return "tomtom" }

// tomtomResponse covers the subset of the flow segment payload we read.
// flowSegmentData absent means no traffic data for the point.
type tomtomResponse struct {
	FlowSegmentData *struct {
		CurrentSpeed  float64 `json:"currentSpeed"`
		FreeFlowSpeed float64 `json:"freeFlowSpeed"`
	} `json:"flowSegmentData"`
}

// Fetch implements Adapter.
func (t *TomTom) Fetch(ctx context.Context, location string, lat, lng float64) (domain.Reading, error) {
	if t.apiKey == "" {
		return domain.Reading{}, fmt.Errorf("tomtom: %w", domain.ErrMissingCredential)
	}

	params := url.Values{}
	params.Set("key", t.apiKey)
	params.Set("point", fmt.Sprintf("%.4f,%.4f", lat, lng))
	params.Set("unit", "KMPH")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.Reading{}, fmt.Errorf("tomtom: build request: %w", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return domain.Reading{}, fmt.Errorf("tomtom: request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return domain.Reading{}, fmt.Errorf("tomtom: status %d: %w", resp.StatusCode, domain.ErrCredentialRejected)
	case resp.StatusCode == http.StatusNotFound:
		// TomTom answers 404 for points without a mapped road segment.
		return domain.Reading{}, fmt.Errorf("tomtom: %w", domain.ErrNoData)
	case resp.StatusCode != http.StatusOK:
		return domain.Reading{}, fmt.Errorf("tomtom: unexpected status %d", resp.StatusCode)
	}

	var body tomtomResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Reading{}, fmt.Errorf("tomtom: decode response: %w", err)
	}
	if body.FlowSegmentData == nil {
		return domain.Reading{}, fmt.Errorf("tomtom: %w", domain.ErrNoData)
	}

	score := congestion.Score(body.FlowSegmentData.CurrentSpeed, body.FlowSegmentData.FreeFlowSpeed)

	return domain.Reading{
		Location:        location,
		Latitude:        lat,
		Longitude:       lng,
		TrafficLevel:    congestion.LevelFor(score),
		CongestionScore: score,
		AverageSpeed:    body.FlowSegmentData.CurrentSpeed,
		Source:          t.Name(),
		Timestamp:       time.Now().UTC(),
	}, nil
}
