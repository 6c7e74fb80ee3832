// Package scoring maps a default probability to a risk decision and
// orchestrates the derive → align → preprocess → predict pipeline.
package scoring

import (
	"math"
	"time"

	"github.com/finlab/credscore/internal/contracts"
)

// Tier thresholds, inclusive boundaries: p < 0.20 low, 0.20 <= p < 0.50
// medium, p >= 0.50 high.
const (
	lowThreshold  = 0.20
	highThreshold = 0.50
)

// Display score formula: 850 - p*550, clamped to the conventional 300-850
// range. The formula alone leaves the range at extreme p, so the clamp is
// applied explicitly at the output boundary.
const (
	scoreBase = 850
	scoreSpan = 550
	scoreMin  = 300
	scoreMax  = 850
)

// TierFor buckets a default probability.
func TierFor(p float64) contracts.RiskTier {
	switch {
	case p < lowThreshold:
		return contracts.TierLow
	case p < highThreshold:
		return contracts.TierMedium
	default:
		return contracts.TierHigh
	}
}

// DisplayScore converts a default probability to the 300-850 display scale.
// The fractional part is truncated, not rounded, so a 767.5 displays as 767.
func DisplayScore(p float64) int {
	score := int(math.Trunc(scoreBase - p*scoreSpan))
	if score < scoreMin {
		return scoreMin
	}
	if score > scoreMax {
		return scoreMax
	}
	return score
}

// Assess builds a RiskAssessment from a default probability.
func Assess(p float64) contracts.RiskAssessment {
	tier := TierFor(p)
	return contracts.RiskAssessment{
		Probability:  p,
		Tier:         tier,
		TierLabel:    tier.Label(),
		DisplayScore: DisplayScore(p),
		AssessedAt:   time.Now(),
	}
}
