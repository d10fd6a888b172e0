package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Abhisg5/trafficDetector/internal/collector"
	"github.com/Abhisg5/trafficDetector/internal/domain"
	"github.com/Abhisg5/trafficDetector/internal/hotspot"
	"github.com/Abhisg5/trafficDetector/pkg/utils"
)

// TrafficService orchestrates collection, persistence and analysis. It is
// the surface the HTTP handlers and the CLI call into.
type TrafficService struct {
	collector *collector.Collector
	analyzer  *hotspot.Analyzer
	repo      domain.ReadingRepository
	log       *slog.Logger
}

// NewTrafficService creates a new traffic service.
func NewTrafficService(c *collector.Collector, a *hotspot.Analyzer, repo domain.ReadingRepository, log *slog.Logger) *TrafficService {
	return &TrafficService{collector: c, analyzer: a, repo: repo, log: log}
}

// Collect fetches current readings for a location from the requested
// sources without persisting them.
func (s *TrafficService) Collect(ctx context.Context, location string, sources []string) ([]domain.Reading, error) {
	return s.collector.Collect(ctx, location, sources)
}

// CollectAndSave fetches current readings and appends each to the store.
// Storage failures propagate; readings saved before the failure keep their
// IDs in the returned slice.
func (s *TrafficService) CollectAndSave(ctx context.Context, location string, sources []string) ([]domain.Reading, []uuid.UUID, error) {
	readings, err := s.collector.Collect(ctx, location, sources)
	if err != nil {
		return nil, nil, err
	}

	ids := make([]uuid.UUID, 0, len(readings))
	for _, r := range readings {
		id, err := s.repo.SaveReading(ctx, r)
		if err != nil {
			return readings, ids, err
		}
		ids = append(ids, id)
	}

	s.log.Info("traffic data collected", "location", location, "readings", len(readings))
	return readings, ids, nil
}

// Current returns the most recent stored reading for a location.
func (s *TrafficService) Current(ctx context.Context, location string) (domain.Reading, error) {
	return s.repo.LatestReading(ctx, location)
}

// Historical summarizes the stored readings for a location over a trailing
// window of days.
func (s *TrafficService) Historical(ctx context.Context, location string, days int) (domain.HistorySummary, error) {
	if days < 1 {
		return domain.HistorySummary{}, fmt.Errorf("service: days %d: %w", days, domain.ErrInvalidArgument)
	}

	since := time.Now().UTC().AddDate(0, 0, -days)
	readings, err := s.repo.ReadingsByLocation(ctx, location, since)
	if err != nil {
		return domain.HistorySummary{}, err
	}

	summary := domain.HistorySummary{
		Location:        location,
		PeriodDays:      days,
		TotalDataPoints: len(readings),
		TrafficLevelDistribution: map[domain.TrafficLevel]int{
			domain.LevelLow: 0, domain.LevelMedium: 0, domain.LevelHigh: 0, domain.LevelSevere: 0,
		},
		DataPoints: readings,
	}

	var total float64
	for _, r := range readings {
		total += r.CongestionScore
		summary.TrafficLevelDistribution[r.TrafficLevel]++
	}
	if len(readings) > 0 {
		summary.AverageCongestion = utils.RoundTo(total/float64(len(readings)), 3)
	}

	return summary, nil
}

// Hotspots runs a hotspot analysis.
func (s *TrafficService) Hotspots(ctx context.Context, p hotspot.Params) (domain.HotspotReport, error) {
	return s.analyzer.Analyze(ctx, p)
}

// Health checks the persistence layer.
func (s *TrafficService) Health(ctx context.Context) error {
	return s.repo.Health(ctx)
}
