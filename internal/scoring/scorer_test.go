package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/finlab/credscore/internal/contracts"
)

func TestTierFor(t *testing.T) {
	tests := []struct {
		name string
		p    float64
		want contracts.RiskTier
	}{
		{"well below low threshold", 0.05, contracts.TierLow},
		{"just below low threshold", 0.1999, contracts.TierLow},
		{"exactly low threshold", 0.20, contracts.TierMedium},
		{"mid band", 0.35, contracts.TierMedium},
		{"just below high threshold", 0.4999, contracts.TierMedium},
		{"exactly high threshold", 0.50, contracts.TierHigh},
		{"near certain default", 0.99, contracts.TierHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TierFor(tt.p))
		})
	}
}

func TestDisplayScore(t *testing.T) {
	tests := []struct {
		name string
		p    float64
		want int
	}{
		{"zero probability", 0, 850},
		{"reference probability", 0.15, 767}, // 850 - 82.5, truncated
		{"mid probability", 0.5, 575},
		{"probability one", 1, 300},
		{"clamped low", 1.5, 300},
		{"clamped high", -0.5, 850},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayScore(tt.p))
		})
	}
}

func TestAssess(t *testing.T) {
	a := Assess(0.15)

	assert.Equal(t, 0.15, a.Probability)
	assert.Equal(t, contracts.TierLow, a.Tier)
	assert.Equal(t, "Low Risk", a.TierLabel)
	assert.Equal(t, 767, a.DisplayScore)
	assert.False(t, a.Degraded)
	assert.False(t, a.AssessedAt.IsZero())
}
