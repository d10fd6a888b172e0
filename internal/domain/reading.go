package domain

import (
	"time"

	"github.com/google/uuid"
)

// TrafficLevel categorizes a congestion score.
type TrafficLevel string

const (
	LevelLow    TrafficLevel = "low"
	LevelMedium TrafficLevel = "medium"
	LevelHigh   TrafficLevel = "high"
	LevelSevere TrafficLevel = "severe"
)

// LevelsBySeverity lists all traffic levels from most to least severe.
// Tie-breaking in aggregations follows this order.
var LevelsBySeverity = []TrafficLevel{LevelSevere, LevelHigh, LevelMedium, LevelLow}

// Severity returns a comparable rank, higher is worse. Unknown levels rank lowest.
func (l TrafficLevel) Severity() int {
	switch l {
	case LevelSevere:
		return 3
	case LevelHigh:
		return 2
	case LevelMedium:
		return 1
	case LevelLow:
		return 0
	}
	return -1
}

// Reading is one normalized traffic observation from one provider for one
// location at one instant. Readings are immutable once created; corrections
// are new readings.
type Reading struct {
	ID              uuid.UUID    `json:"id"`
	Location        string       `json:"location"`
	Latitude        float64      `json:"latitude"`
	Longitude       float64      `json:"longitude"`
	TrafficLevel    TrafficLevel `json:"traffic_level"`
	CongestionScore float64      `json:"congestion_score"`
	AverageSpeed    float64      `json:"average_speed"` // km/h
	TravelTime      float64      `json:"travel_time"`   // minutes, 0 when not supplied
	Distance        float64      `json:"distance"`      // km, 0 when not supplied
	Source          string       `json:"source"`
	Timestamp       time.Time    `json:"timestamp"`
}
