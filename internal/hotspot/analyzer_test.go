package hotspot_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/Abhisg5/trafficDetector/internal/domain"
	"github.com/Abhisg5/trafficDetector/internal/hotspot"
	"github.com/Abhisg5/trafficDetector/internal/repository/postgres"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seed(t *testing.T, repo domain.ReadingRepository, location string, lat, lng float64, scores []float64, sources ...string) {
	t.Helper()
	now := time.Now().UTC()
	for i, score := range scores {
		source := "tomtom"
		if len(sources) > 0 {
			source = sources[i%len(sources)]
		}
		level := domain.LevelLow
		switch {
		case score > 0.7:
			level = domain.LevelSevere
		case score > 0.5:
			level = domain.LevelHigh
		case score > 0.3:
			level = domain.LevelMedium
		}
		_, err := repo.SaveReading(context.Background(), domain.Reading{
			Location:        location,
			Latitude:        lat,
			Longitude:       lng,
			TrafficLevel:    level,
			CongestionScore: score,
			AverageSpeed:    60 * (1 - score),
			Source:          source,
			Timestamp:       now.Add(-time.Duration(i+1) * time.Hour),
		})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func TestAnalyzeValidation(t *testing.T) {
	Convey("Given an analyzer", t, func() {
		analyzer := hotspot.New(postgres.NewMemoryRepository(), discard())

		Convey("Then a zero or negative window is rejected before any I/O", func() {
			_, err := analyzer.Analyze(context.Background(), hotspot.Params{WindowDays: 0})
			So(errors.Is(err, domain.ErrInvalidArgument), ShouldBeTrue)

			_, err = analyzer.Analyze(context.Background(), hotspot.Params{WindowDays: -7})
			So(errors.Is(err, domain.ErrInvalidArgument), ShouldBeTrue)
		})

		Convey("Then a threshold outside [0,1] is rejected", func() {
			_, err := analyzer.Analyze(context.Background(), hotspot.Params{WindowDays: 7, MinCongestion: 1.5})
			So(errors.Is(err, domain.ErrInvalidArgument), ShouldBeTrue)

			_, err = analyzer.Analyze(context.Background(), hotspot.Params{WindowDays: 7, MinCongestion: -0.1})
			So(errors.Is(err, domain.ErrInvalidArgument), ShouldBeTrue)
		})
	})
}

func TestAnalyzeScoring(t *testing.T) {
	Convey("Given Atlanta with 3 readings over a 90-day window", t, func() {
		repo := postgres.NewMemoryRepository()
		seed(t, repo, "atlanta", 33.7490, -84.3880, []float64{0.3, 0.4, 0.35}, "tomtom", "here")
		analyzer := hotspot.New(repo, discard())

		report, err := analyzer.Analyze(context.Background(), hotspot.Params{
			Region: "atlanta", WindowDays: 90, MinCongestion: 0,
		})
		So(err, ShouldBeNil)
		So(report.HotspotsFound, ShouldEqual, 1)

		entry := report.Hotspots[0]

		Convey("Then the average couples with sampling consistency", func() {
			So(entry.AverageCongestion, ShouldAlmostEqual, 0.35, 0.001)
			So(entry.DataPoints, ShouldEqual, 3)
			So(entry.DataConsistency, ShouldAlmostEqual, 3.0/90, 0.001)
			So(entry.HotspotScore, ShouldAlmostEqual, 0.35*(3.0/90), 0.001)
		})

		Convey("Then provenance is carried", func() {
			So(entry.DataSources, ShouldResemble, []string{"here", "tomtom"})
			So(entry.AnalysisPeriod, ShouldEqual, "90 days")
			So(entry.Coordinates.Latitude, ShouldEqual, 33.7490)
		})
	})
}

func TestAnalyzeFiltersAndRanking(t *testing.T) {
	Convey("Given several locations with different congestion profiles", t, func() {
		repo := postgres.NewMemoryRepository()
		// Heavily congested and densely observed.
		seed(t, repo, "marietta", 33.9525, -84.5499, []float64{0.8, 0.9, 0.85, 0.8, 0.9, 0.8, 0.85})
		// Congested but sparsely observed: one alarming reading.
		seed(t, repo, "smyrna", 33.8834, -84.5144, []float64{0.95})
		// Consistently observed but clear.
		seed(t, repo, "decatur", 33.7748, -84.2963, []float64{0.1, 0.05, 0.1, 0.1, 0.05, 0.1, 0.1})
		analyzer := hotspot.New(repo, discard())

		Convey("When analyzing with a congestion floor", func() {
			report, err := analyzer.Analyze(context.Background(), hotspot.Params{
				WindowDays: 7, MinCongestion: 0.5,
			})
			So(err, ShouldBeNil)

			Convey("Then no entry falls below the floor", func() {
				for _, h := range report.Hotspots {
					So(h.AverageCongestion, ShouldBeGreaterThanOrEqualTo, 0.5)
				}
			})

			Convey("Then sparse evidence ranks below corroborated congestion", func() {
				So(report.HotspotsFound, ShouldEqual, 2)
				So(report.Hotspots[0].Location, ShouldEqual, "marietta")
				So(report.Hotspots[1].Location, ShouldEqual, "smyrna")
				// Saturated consistency: 7 points over 7 days.
				So(report.Hotspots[0].DataConsistency, ShouldEqual, 1.0)
				So(report.Hotspots[1].DataConsistency, ShouldAlmostEqual, 1.0/7, 0.001)
			})
		})

		Convey("When a location has zero readings in the window", func() {
			report, err := analyzer.Analyze(context.Background(), hotspot.Params{
				Region: "woodstock", WindowDays: 7, MinCongestion: 0,
			})
			So(err, ShouldBeNil)

			Convey("Then it is absent entirely, not present with defaults", func() {
				So(report.HotspotsFound, ShouldEqual, 0)
				So(report.Hotspots, ShouldBeEmpty)
				So(report.TotalDataPoints, ShouldEqual, 0)
			})
		})

		Convey("When top_n truncates the ranking", func() {
			report, err := analyzer.Analyze(context.Background(), hotspot.Params{
				WindowDays: 7, MinCongestion: 0, TopN: 1,
			})
			So(err, ShouldBeNil)
			So(len(report.Hotspots), ShouldEqual, 1)
			// HotspotsFound still counts everything that qualified.
			So(report.HotspotsFound, ShouldEqual, 3)
			So(report.Hotspots[0].Location, ShouldEqual, "marietta")
		})
	})
}

func TestAnalyzeDominantLevelTieBreak(t *testing.T) {
	Convey("Given a location with an even split of levels", t, func() {
		repo := postgres.NewMemoryRepository()
		// Two medium (0.4), two severe (0.8): tie on count.
		seed(t, repo, "duluth", 34.0029, -84.1446, []float64{0.4, 0.8, 0.4, 0.8})
		analyzer := hotspot.New(repo, discard())

		report, err := analyzer.Analyze(context.Background(), hotspot.Params{
			WindowDays: 30, MinCongestion: 0,
		})
		So(err, ShouldBeNil)
		So(report.HotspotsFound, ShouldEqual, 1)

		Convey("Then ambiguity favors the more severe category", func() {
			So(report.Hotspots[0].DominantTrafficLevel, ShouldEqual, domain.LevelSevere)
			So(report.Hotspots[0].TrafficLevelDistribution[domain.LevelMedium], ShouldEqual, 2)
			So(report.Hotspots[0].TrafficLevelDistribution[domain.LevelSevere], ShouldEqual, 2)
		})
	})
}

func TestDataConsistencyMonotonic(t *testing.T) {
	Convey("Given growing observation counts over a fixed window", t, func() {
		prev := -1.0
		for points := 1; points <= 12; points++ {
			repo := postgres.NewMemoryRepository()
			scores := make([]float64, points)
			for i := range scores {
				scores[i] = 0.6
			}
			seed(t, repo, "roswell", 34.0232, -84.3616, scores)

			report, err := hotspot.New(repo, discard()).Analyze(context.Background(), hotspot.Params{
				WindowDays: 10, MinCongestion: 0,
			})
			So(err, ShouldBeNil)
			So(report.HotspotsFound, ShouldEqual, 1)

			c := report.Hotspots[0].DataConsistency
			So(c, ShouldBeGreaterThanOrEqualTo, prev)
			So(c, ShouldBeLessThanOrEqualTo, 1.0)
			prev = c
		}
	})
}
