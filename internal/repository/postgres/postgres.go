package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Abhisg5/trafficDetector/internal/domain"
	"github.com/Abhisg5/trafficDetector/internal/metrics"
)

// PostgresRepository implements domain.ReadingRepository over pgxpool.
// The table is append-only; nothing here updates or deletes rows.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const schema = `
	CREATE TABLE IF NOT EXISTS traffic_readings (
		id               UUID PRIMARY KEY,
		location         TEXT NOT NULL,
		latitude         DOUBLE PRECISION NOT NULL,
		longitude        DOUBLE PRECISION NOT NULL,
		traffic_level    TEXT NOT NULL,
		congestion_score DOUBLE PRECISION NOT NULL,
		average_speed    DOUBLE PRECISION NOT NULL,
		travel_time      DOUBLE PRECISION NOT NULL DEFAULT 0,
		distance         DOUBLE PRECISION NOT NULL DEFAULT 0,
		source           TEXT NOT NULL,
		timestamp        TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_traffic_readings_location_ts
		ON traffic_readings (location, timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_traffic_readings_ts
		ON traffic_readings (timestamp DESC);
`

// InitSchema creates the readings table and its indexes if absent.
func (r *PostgresRepository) InitSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres: init schema: %w", err)
	}
	return nil
}

// SaveReading appends one reading. The ID is assigned here when the caller
// left it zero.
func (r *PostgresRepository) SaveReading(ctx context.Context, reading domain.Reading) (uuid.UUID, error) {
	if reading.ID == uuid.Nil {
		reading.ID = uuid.New()
	}

	query := `
		INSERT INTO traffic_readings (
			id, location, latitude, longitude, traffic_level,
			congestion_score, average_speed, travel_time, distance, source, timestamp
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		reading.ID, reading.Location, reading.Latitude, reading.Longitude, reading.TrafficLevel,
		reading.CongestionScore, reading.AverageSpeed, reading.TravelTime, reading.Distance,
		reading.Source, reading.Timestamp,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("postgres: failed to save reading: %w", err)
	}

	metrics.ReadingsSaved.Inc()
	return reading.ID, nil
}

const readingColumns = `id, location, latitude, longitude, traffic_level,
	congestion_score, average_speed, travel_time, distance, source, timestamp`

// ReadingsByLocation returns readings for one location at or after since,
// newest first.
func (r *PostgresRepository) ReadingsByLocation(ctx context.Context, location string, since time.Time) ([]domain.Reading, error) {
	query := `
		SELECT ` + readingColumns + `
		FROM traffic_readings
		WHERE location = $1 AND timestamp >= $2
		ORDER BY timestamp DESC
	`

	rows, err := r.pool.Query(ctx, query, location, since)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query readings: %w", err)
	}
	defer rows.Close()

	return scanReadings(rows)
}

// ReadingsSince returns readings across all locations at or after since,
// newest first.
func (r *PostgresRepository) ReadingsSince(ctx context.Context, since time.Time) ([]domain.Reading, error) {
	query := `
		SELECT ` + readingColumns + `
		FROM traffic_readings
		WHERE timestamp >= $1
		ORDER BY timestamp DESC
	`

	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query readings: %w", err)
	}
	defer rows.Close()

	return scanReadings(rows)
}

// LatestReading returns the most recent reading for a location.
func (r *PostgresRepository) LatestReading(ctx context.Context, location string) (domain.Reading, error) {
	query := `
		SELECT ` + readingColumns + `
		FROM traffic_readings
		WHERE location = $1
		ORDER BY timestamp DESC
		LIMIT 1
	`

	var reading domain.Reading
	err := r.pool.QueryRow(ctx, query, location).Scan(
		&reading.ID, &reading.Location, &reading.Latitude, &reading.Longitude, &reading.TrafficLevel,
		&reading.CongestionScore, &reading.AverageSpeed, &reading.TravelTime, &reading.Distance,
		&reading.Source, &reading.Timestamp,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Reading{}, fmt.Errorf("postgres: %q: %w", location, domain.ErrNoReadings)
	}
	if err != nil {
		return domain.Reading{}, fmt.Errorf("postgres: failed to query latest reading: %w", err)
	}

	return reading, nil
}

// Health checks database connectivity.
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}

func scanReadings(rows pgx.Rows) ([]domain.Reading, error) {
	var results []domain.Reading
	for rows.Next() {
		var reading domain.Reading
		err := rows.Scan(
			&reading.ID, &reading.Location, &reading.Latitude, &reading.Longitude, &reading.TrafficLevel,
			&reading.CongestionScore, &reading.AverageSpeed, &reading.TravelTime, &reading.Distance,
			&reading.Source, &reading.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan reading row: %w", err)
		}
		results = append(results, reading)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: rows: %w", err)
	}

	return results, nil
}
