package provider

import (
	"crypto/tls"
	"net/http"
	"time"
)

// Pool owns the HTTP transports shared by the adapters of one collector.
// The verified transport is shared by every adapter; an insecure transport
// is built only on demand for adapters whose provider has known certificate
// quirks, so the TLS relaxation stays scoped to that adapter and is never
// process-wide. Close releases pooled connections on all exit paths.
type Pool struct {
	base     *http.Transport
	insecure *http.Transport
}

// NewPool creates a connection pool for one collection lifecycle.
func NewPool() *Pool {
	return &Pool{
		base: &http.Transport{
			MaxIdleConns:        16,
			MaxIdleConnsPerHost: 8,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// Client returns an HTTP client bound to this pool. insecureTLS selects a
// separate transport that skips certificate verification; it affects only
// clients requested with the flag set.
func (p *Pool) Client(timeout time.Duration, insecureTLS bool) *http.Client {
	if !insecureTLS {
		return &http.Client{Timeout: timeout, Transport: p.base}
	}
	if p.insecure == nil {
		t := p.base.Clone()
		t.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402 -- explicit per-adapter escape hatch
		p.insecure = t
	}
	return &http.Client{Timeout: timeout, Transport: p.insecure}
}

// Close releases idle pooled connections.
func (p *Pool) Close() {
	p.base.CloseIdleConnections()
	if p.insecure != nil {
		p.insecure.CloseIdleConnections()
	}
}
