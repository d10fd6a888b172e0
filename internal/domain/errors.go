package domain

import "errors"

// Sentinel errors for the collection and analysis core. Callers classify with
// errors.Is; anything not matching a sentinel is treated as transient by the
// collector and as a hard failure everywhere else.
var (
	// ErrLocationNotFound means the gazetteer has no entry for a place name.
	ErrLocationNotFound = errors.New("location not found")

	// ErrMissingCredential means an adapter has no API key configured and
	// made no network call.
	ErrMissingCredential = errors.New("missing provider credential")

	// ErrCredentialRejected means the provider refused the configured key
	// (401/403). Retrying without operator action is pointless.
	ErrCredentialRejected = errors.New("provider rejected credential")

	// ErrNoData means the provider responded but has no traffic data for
	// the queried coordinates. This is a normal empty outcome.
	ErrNoData = errors.New("no traffic data for location")

	// ErrNoReadings means the store holds no readings matching a lookup.
	ErrNoReadings = errors.New("no readings stored for location")

	// ErrInvalidArgument means an analysis parameter was rejected before
	// any I/O.
	ErrInvalidArgument = errors.New("invalid argument")
)
