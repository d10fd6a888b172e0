package domain

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// Hotspot is one ranked entry of a hotspot report. It is derived on demand
// from stored readings and never persisted.
type Hotspot struct {
	Location                 string               `json:"location"`
	Coordinates              Coordinates          `json:"coordinates"`
	HotspotScore             float64              `json:"hotspot_score"`
	AverageCongestion        float64              `json:"average_congestion"`
	DataPoints               int                  `json:"data_points"`
	DataConsistency          float64              `json:"data_consistency"`
	DominantTrafficLevel     TrafficLevel         `json:"dominant_traffic_level"`
	TrafficLevelDistribution map[TrafficLevel]int `json:"traffic_level_distribution"`
	DataSources              []string             `json:"data_sources"`
	AnalysisPeriod           string               `json:"analysis_period"`
}

// HotspotSummary counts qualifying locations by average-congestion band.
type HotspotSummary struct {
	HighCongestionLocations   int `json:"high_congestion_locations"`
	MediumCongestionLocations int `json:"medium_congestion_locations"`
	LowCongestionLocations    int `json:"low_congestion_locations"`
}

// HotspotReport is a ranked hotspot analysis over one region and window.
type HotspotReport struct {
	Region                  string         `json:"region"`
	AnalysisPeriodDays      int            `json:"analysis_period_days"`
	TotalDataPoints         int            `json:"total_data_points"`
	AverageRegionCongestion float64        `json:"average_region_congestion"`
	HotspotsFound           int            `json:"hotspots_found"`
	Hotspots                []Hotspot      `json:"hotspots"`
	Summary                 HotspotSummary `json:"summary"`
}

// HistorySummary describes the stored readings for one location over a
// trailing window of days.
type HistorySummary struct {
	Location                 string               `json:"location"`
	PeriodDays               int                  `json:"period_days"`
	TotalDataPoints          int                  `json:"total_data_points"`
	AverageCongestion        float64              `json:"average_congestion"`
	TrafficLevelDistribution map[TrafficLevel]int `json:"traffic_level_distribution"`
	DataPoints               []Reading            `json:"data_points"`
}
