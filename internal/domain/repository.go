package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ReadingRepository defines the interface for reading persistence.
// This follows the Dependency Inversion Principle - domain defines the interface.
// The store is append-only: readings are never mutated or deleted here;
// retention is an external administrative concern.
type ReadingRepository interface {
	// SaveReading appends one reading and returns its assigned ID.
	SaveReading(ctx context.Context, r Reading) (uuid.UUID, error)

	// ReadingsByLocation returns all readings for a location at or after
	// since, newest first.
	ReadingsByLocation(ctx context.Context, location string, since time.Time) ([]Reading, error)

	// ReadingsSince returns all readings at or after since across every
	// location, newest first.
	ReadingsSince(ctx context.Context, since time.Time) ([]Reading, error)

	// LatestReading returns the most recent reading for a location, or
	// ErrNoReadings.
	LatestReading(ctx context.Context, location string) (Reading, error)

	// Health checks store connectivity.
	Health(ctx context.Context) error
}
