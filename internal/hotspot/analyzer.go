// Package hotspot ranks locations whose historical congestion is both high
// and reliably observed. The analyzer is stateless: every report is
// recomputed from stored readings, nothing is cached between calls.
package hotspot

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Abhisg5/trafficDetector/internal/domain"
	"github.com/Abhisg5/trafficDetector/pkg/utils"
)

// DefaultTopN bounds the report when the caller does not.
const DefaultTopN = 20

// Params describe one analysis request.
type Params struct {
	// Region filters locations by case-insensitive containment of the
	// region, or of any word of it. Empty matches everything.
	Region string

	// WindowDays is the trailing analysis window. Must be >= 1.
	WindowDays int

	// MinCongestion excludes locations whose average congestion is below
	// it. Must be in [0, 1].
	MinCongestion float64

	// TopN truncates the ranked entries; 0 or negative means DefaultTopN.
	TopN int
}

// Analyzer computes hotspot reports from stored readings.
type Analyzer struct {
	repo domain.ReadingRepository
	log  *slog.Logger
	now  func() time.Time
}

// New creates an analyzer over the given repository.
func New(repo domain.ReadingRepository, log *slog.Logger) *Analyzer {
	return &Analyzer{repo: repo, log: log, now: time.Now}
}

// Analyze aggregates readings per location over the window and ranks
// locations by hotspot score. Arguments are validated before any I/O.
// Locations with no readings in the window never appear: no evidence, no
// score.
func (a *Analyzer) Analyze(ctx context.Context, p Params) (domain.HotspotReport, error) {
	if p.WindowDays < 1 {
		return domain.HotspotReport{}, fmt.Errorf("hotspot: window_days %d: %w", p.WindowDays, domain.ErrInvalidArgument)
	}
	if p.MinCongestion < 0 || p.MinCongestion > 1 {
		return domain.HotspotReport{}, fmt.Errorf("hotspot: min_congestion %g: %w", p.MinCongestion, domain.ErrInvalidArgument)
	}
	topN := p.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}

	since := a.now().UTC().AddDate(0, 0, -p.WindowDays)
	readings, err := a.repo.ReadingsSince(ctx, since)
	if err != nil {
		return domain.HotspotReport{}, err
	}

	var (
		regionTotal float64
		regionCount int
		byLocation  = map[string]*locationStats{}
	)
	for _, r := range readings {
		if !matchesRegion(r.Location, p.Region) {
			continue
		}
		regionTotal += r.CongestionScore
		regionCount++

		stats, ok := byLocation[r.Location]
		if !ok {
			stats = newLocationStats(r)
			byLocation[r.Location] = stats
		}
		stats.add(r)
	}

	hotspots := make([]domain.Hotspot, 0, len(byLocation))
	for location, stats := range byLocation {
		avg := stats.scoreSum / float64(stats.points)
		if avg < p.MinCongestion {
			continue
		}

		consistency := math.Min(float64(stats.points)/float64(p.WindowDays), 1.0)

		hotspots = append(hotspots, domain.Hotspot{
			Location:                 location,
			Coordinates:              stats.coords,
			HotspotScore:             math.Min(avg*consistency, 1.0),
			AverageCongestion:        utils.RoundTo(avg, 3),
			DataPoints:               stats.points,
			DataConsistency:          utils.RoundTo(consistency, 3),
			DominantTrafficLevel:     stats.dominantLevel(),
			TrafficLevelDistribution: stats.levels,
			DataSources:              stats.sourceList(),
			AnalysisPeriod:           fmt.Sprintf("%d days", p.WindowDays),
		})
	}

	sort.Slice(hotspots, func(i, j int) bool {
		if hotspots[i].HotspotScore != hotspots[j].HotspotScore {
			return hotspots[i].HotspotScore > hotspots[j].HotspotScore
		}
		return hotspots[i].Location < hotspots[j].Location
	})

	report := domain.HotspotReport{
		Region:             p.Region,
		AnalysisPeriodDays: p.WindowDays,
		TotalDataPoints:    regionCount,
		HotspotsFound:      len(hotspots),
		Summary:            summarize(hotspots),
	}
	if regionCount > 0 {
		report.AverageRegionCongestion = utils.RoundTo(regionTotal/float64(regionCount), 3)
	}
	if len(hotspots) > topN {
		hotspots = hotspots[:topN]
	}
	report.Hotspots = hotspots

	a.log.Debug("hotspot analysis complete",
		"region", p.Region, "window_days", p.WindowDays,
		"data_points", regionCount, "hotspots", report.HotspotsFound)

	return report, nil
}

type locationStats struct {
	coords   domain.Coordinates
	scoreSum float64
	points   int
	levels   map[domain.TrafficLevel]int
	sources  map[string]struct{}
}

func newLocationStats(r domain.Reading) *locationStats {
	return &locationStats{
		coords: domain.Coordinates{Latitude: r.Latitude, Longitude: r.Longitude},
		levels: map[domain.TrafficLevel]int{
			domain.LevelLow: 0, domain.LevelMedium: 0, domain.LevelHigh: 0, domain.LevelSevere: 0,
		},
		sources: map[string]struct{}{},
	}
}

func (s *locationStats) add(r domain.Reading) {
	s.scoreSum += r.CongestionScore
	s.points++
	s.levels[r.TrafficLevel]++
	s.sources[r.Source] = struct{}{}
}

// dominantLevel is the mode of the observed levels; ties favor the more
// severe category so ambiguity surfaces the serious case.
func (s *locationStats) dominantLevel() domain.TrafficLevel {
	dominant := domain.LevelLow
	best := -1
	for _, level := range domain.LevelsBySeverity {
		if s.levels[level] > best {
			best = s.levels[level]
			dominant = level
		}
	}
	return dominant
}

func (s *locationStats) sourceList() []string {
	sources := make([]string, 0, len(s.sources))
	for src := range s.sources {
		sources = append(sources, src)
	}
	sort.Strings(sources)
	return sources
}

// matchesRegion reports whether a stored location belongs to the requested
// region: containment of the whole region string or of any single word.
func matchesRegion(location, region string) bool {
	if region == "" {
		return true
	}
	loc := strings.ToLower(location)
	reg := strings.ToLower(region)
	if strings.Contains(loc, reg) {
		return true
	}
	for _, word := range strings.Fields(reg) {
		if strings.Contains(loc, word) {
			return true
		}
	}
	return false
}

func summarize(hotspots []domain.Hotspot) domain.HotspotSummary {
	var s domain.HotspotSummary
	for _, h := range hotspots {
		switch {
		case h.AverageCongestion > 0.7:
			s.HighCongestionLocations++
		case h.AverageCongestion >= 0.5:
			s.MediumCongestionLocations++
		default:
			s.LowCongestionLocations++
		}
	}
	return s
}
