package postgres

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Abhisg5/trafficDetector/internal/domain"
	"github.com/Abhisg5/trafficDetector/internal/metrics"
)

// MemoryRepository implements domain.ReadingRepository in memory. Used when
// no database is configured and in tests. Same append-only contract as the
// PostgreSQL repository; appends are safe under concurrent callers.
type MemoryRepository struct {
	mu       sync.RWMutex
	readings []domain.Reading
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// SaveReading appends one reading.
func (r *MemoryRepository) SaveReading(_ context.Context, reading domain.Reading) (uuid.UUID, error) {
	if reading.ID == uuid.Nil {
		reading.ID = uuid.New()
	}

	r.mu.Lock()
	r.readings = append(r.readings, reading)
	r.mu.Unlock()

	metrics.ReadingsSaved.Inc()
	return reading.ID, nil
}

// ReadingsByLocation returns readings for one location at or after since,
// newest first.
func (r *MemoryRepository) ReadingsByLocation(_ context.Context, location string, since time.Time) ([]domain.Reading, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var results []domain.Reading
	for _, reading := range r.readings {
		if reading.Location == location && !reading.Timestamp.Before(since) {
			results = append(results, reading)
		}
	}
	sortNewestFirst(results)
	return results, nil
}

// ReadingsSince returns readings across all locations at or after since,
// newest first.
func (r *MemoryRepository) ReadingsSince(_ context.Context, since time.Time) ([]domain.Reading, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var results []domain.Reading
	for _, reading := range r.readings {
		if !reading.Timestamp.Before(since) {
			results = append(results, reading)
		}
	}
	sortNewestFirst(results)
	return results, nil
}

// LatestReading returns the most recent reading for a location.
func (r *MemoryRepository) LatestReading(_ context.Context, location string) (domain.Reading, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *domain.Reading
	for i := range r.readings {
		reading := &r.readings[i]
		if reading.Location != location {
			continue
		}
		if latest == nil || reading.Timestamp.After(latest.Timestamp) {
			latest = reading
		}
	}
	if latest == nil {
		return domain.Reading{}, fmt.Errorf("memory: %q: %w", location, domain.ErrNoReadings)
	}
	return *latest, nil
}

// Health always succeeds for the in-memory store.
func (r *MemoryRepository) Health(_ context.Context) error {
	return nil
}

func sortNewestFirst(readings []domain.Reading) {
	sort.SliceStable(readings, func(i, j int) bool {
		return readings[i].Timestamp.After(readings[j].Timestamp)
	})
}
