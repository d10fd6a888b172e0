// Package simulate generates synthetic readings with realistic rush-hour
// congestion shapes, so the analyzer has data to rank before any real
// provider credentials exist.
package simulate

import (
	"math/rand"
	"time"

	"github.com/jaswdr/faker"

	"github.com/Abhisg5/trafficDetector/internal/congestion"
	"github.com/Abhisg5/trafficDetector/internal/domain"
	"github.com/Abhisg5/trafficDetector/pkg/utils"
)

const freeFlowSpeed = 60.0 // km/h baseline for synthetic segments

// Generator produces synthetic canonical readings.
type Generator struct {
	fake faker.Faker
}

// New creates a deterministic generator for the given seed.
func New(seed int64) *Generator {
	return &Generator{fake: faker.NewWithSeed(rand.NewSource(seed))}
}

// Reading builds one synthetic reading for a place at an instant. The
// congestion follows weekday rush-hour patterns; speed is derived from it
// against the free-flow baseline so Score and LevelFor stay consistent with
// real readings.
func (g *Generator) Reading(location string, lat, lng float64, at time.Time) domain.Reading {
	score := g.congestionAt(at)
	currentSpeed := utils.RoundTo(freeFlowSpeed*(1-score), 1)

	return domain.Reading{
		Location:        location,
		Latitude:        lat,
		Longitude:       lng,
		TrafficLevel:    congestion.LevelFor(score),
		CongestionScore: score,
		AverageSpeed:    currentSpeed,
		Source:          g.fake.RandomStringElement([]string{"tomtom", "here"}),
		Timestamp:       at.UTC(),
	}
}

// congestionAt returns a score in [0, 1] shaped by time of day and weekday.
func (g *Generator) congestionAt(at time.Time) float64 {
	hour := at.Hour()
	weekday := at.Weekday()

	if weekday == time.Saturday || weekday == time.Sunday {
		return g.fake.Float64(2, 20, 45) / 100
	}

	switch {
	case hour >= 7 && hour <= 9: // Morning rush
		return g.fake.Float64(2, 60, 95) / 100
	case hour >= 17 && hour <= 19: // Evening rush
		return g.fake.Float64(2, 65, 95) / 100
	case hour >= 12 && hour <= 14: // Lunch
		return g.fake.Float64(2, 40, 65) / 100
	case hour >= 22 || hour <= 5: // Night
		return g.fake.Float64(2, 5, 20) / 100
	default:
		return g.fake.Float64(2, 30, 55) / 100
	}
}
