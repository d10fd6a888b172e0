// Package provider wraps external traffic APIs behind a common adapter
// contract. Each adapter issues one coordinate-bounded HTTP request per
// invocation and normalizes the provider's response shape into a canonical
// reading, or reports the absence of data.
package provider

import (
	"context"

	"github.com/Abhisg5/trafficDetector/internal/domain"
)

// Adapter is one external traffic data source.
//
// Fetch returns domain.ErrMissingCredential without a network call when the
// adapter has no API key, domain.ErrNoData when the provider has nothing for
// the coordinates, and domain.ErrCredentialRejected on 401/403. Any other
// error is transient (timeout, 5xx, malformed payload) and safe to retry.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context, location string, lat, lng float64) (domain.Reading, error)
}
