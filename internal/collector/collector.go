// Package collector fans out one location across every configured provider
// adapter and merges whatever succeeds.
package collector

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Abhisg5/trafficDetector/internal/config"
	"github.com/Abhisg5/trafficDetector/internal/domain"
	"github.com/Abhisg5/trafficDetector/internal/geo"
	"github.com/Abhisg5/trafficDetector/internal/metrics"
	"github.com/Abhisg5/trafficDetector/internal/provider"
)

// Collector queries multiple traffic providers concurrently for one
// location. Adapter failures are absorbed here: callers get the union of
// whatever succeeded, possibly empty, and never need per-provider error
// handling. The collector never synthesizes data.
type Collector struct {
	adapters map[string]provider.Adapter
	defaults []string
	pool     *provider.Pool
	log      *slog.Logger
}

// New creates a collector over the given adapters. defaults is the source
// set used when a Collect call passes none.
func New(log *slog.Logger, defaults []string, adapters ...provider.Adapter) *Collector {
	m := make(map[string]provider.Adapter, len(adapters))
	for _, a := range adapters {
		m[a.Name()] = a
	}
	return &Collector{adapters: m, defaults: defaults, log: log}
}

// FromConfig wires the TomTom and HERE adapters over a fresh connection
// pool. The TLS relaxation, when enabled, applies to the HERE adapter's
// transport only. Close the collector to release the pool.
func FromConfig(cfg *config.Config, log *slog.Logger) *Collector {
	pool := provider.NewPool()
	c := New(log, cfg.DefaultSources,
		provider.NewTomTom(cfg.TomTomAPIKey, pool.Client(cfg.HTTPTimeout, false)),
		provider.NewHere(cfg.HereAPIKey, pool.Client(cfg.HTTPTimeout, cfg.HereInsecureTLS)),
	)
	c.pool = pool
	return c
}

// Close releases pooled connections held for this collector.
func (c *Collector) Close() {
	if c.pool != nil {
		c.pool.Close()
	}
}

// Sources returns the names of the configured adapters.
func (c *Collector) Sources() []string {
	names := make([]string, 0, len(c.adapters))
	for name := range c.adapters {
		names = append(names, name)
	}
	return names
}

// Collect resolves the location and queries the requested sources
// concurrently. A single adapter's failure or lack of data does not abort
// the others; a timeout on one call never cancels its siblings. The
// returned slice has no guaranteed order across sources. An unknown
// location is the only error.
func (c *Collector) Collect(ctx context.Context, location string, sources []string) ([]domain.Reading, error) {
	lat, lng, err := geo.Resolve(location)
	if err != nil {
		return nil, err
	}

	if len(sources) == 0 {
		sources = c.defaults
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		readings []domain.Reading
	)

	for _, name := range sources {
		adapter, ok := c.adapters[name]
		if !ok {
			c.log.Warn("unknown traffic source requested", "source", name, "location", location)
			continue
		}

		wg.Add(1)
		go func(adapter provider.Adapter) {
			defer wg.Done()

			start := time.Now()
			r, err := adapter.Fetch(ctx, location, lat, lng)
			metrics.ProviderRequestDuration.WithLabelValues(adapter.Name()).Observe(time.Since(start).Seconds())

			if err != nil {
				c.observeFailure(adapter.Name(), location, err)
				return
			}

			metrics.ReadingsCollected.WithLabelValues(adapter.Name()).Inc()
			mu.Lock()
			readings = append(readings, r)
			mu.Unlock()
		}(adapter)
	}

	wg.Wait()
	return readings, nil
}

// observeFailure logs and counts an adapter miss without surfacing it.
// Credential problems are reported distinctly so operators can spot stale
// keys; everything unclassified is transient.
func (c *Collector) observeFailure(source, location string, err error) {
	kind := "transient"
	switch {
	case errors.Is(err, domain.ErrNoData):
		kind = "no_data"
		c.log.Debug("provider has no data", "source", source, "location", location)
	case errors.Is(err, domain.ErrMissingCredential):
		kind = "missing_credential"
		c.log.Warn("provider credential not configured", "source", source)
	case errors.Is(err, domain.ErrCredentialRejected):
		kind = "credential_rejected"
		c.log.Warn("provider rejected credential", "source", source, "error", err)
	default:
		c.log.Error("provider call failed", "source", source, "location", location, "error", err)
	}
	metrics.ProviderFailures.WithLabelValues(source, kind).Inc()
}
