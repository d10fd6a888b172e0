// Package congestion derives congestion scores and traffic levels from raw
// speed readings. Pure math, no I/O.
package congestion

import (
	"github.com/Abhisg5/trafficDetector/internal/domain"
	"github.com/Abhisg5/trafficDetector/pkg/utils"
)

// NeutralScore is assumed when a segment's free-flow baseline is unknown:
// neither clear nor severe is asserted.
const NeutralScore = 0.5

// Score computes how much slower than free-flow a segment currently is,
// in [0, 1]. A free-flow speed of zero or below means the baseline is
// unknown and yields NeutralScore regardless of the current speed.
func Score(currentSpeed, freeFlowSpeed float64) float64 {
	if freeFlowSpeed <= 0 {
		return NeutralScore
	}
	return utils.Clamp(1-currentSpeed/freeFlowSpeed, 0, 1)
}

// LevelFor maps a congestion score to a traffic level. Thresholds are
// upper-inclusive except the top band: >0.7 severe, >0.5 high, >0.3 medium,
// otherwise low.
func LevelFor(score float64) domain.TrafficLevel {
	switch {
	case score > 0.7:
		return domain.LevelSevere
	case score > 0.5:
		return domain.LevelHigh
	case score > 0.3:
		return domain.LevelMedium
	default:
		return domain.LevelLow
	}
}
