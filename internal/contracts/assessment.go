package contracts

import "time"

// RiskTier is the bucketed risk decision.
type RiskTier string

const (
	TierLow    RiskTier = "LOW"
	TierMedium RiskTier = "MEDIUM"
	TierHigh   RiskTier = "HIGH"
)

// Label returns the human-facing tier label.
func (t RiskTier) Label() string {
	switch t {
	case TierLow:
		return "Low Risk"
	case TierMedium:
		return "Medium Risk"
	case TierHigh:
		return "High Risk"
	default:
		return "Unknown"
	}
}

// RiskAssessment is the output of a scoring request: probability of default,
// bucketed tier, and a display score on the familiar 300-850 scale.
// Derived per request, not stored by the core.
type RiskAssessment struct {
	Probability  float64  `json:"probability"`
	Tier         RiskTier `json:"tier"`
	TierLabel    string   `json:"tier_label"`
	DisplayScore int      `json:"display_score"`

	// Degraded is set when scaling was skipped because the fitted scaler
	// rejected the input shape; the result came from imputed-but-unscaled
	// features. Availability over correctness, surfaced, never hidden.
	Degraded       bool   `json:"degraded"`
	DegradedReason string `json:"degraded_reason,omitempty"`

	AssessedAt time.Time `json:"assessed_at"`
}

// AssessmentRecord is a stored assessment with the raw inputs that produced
// it. Persistence is service infrastructure, not core behavior.
type AssessmentRecord struct {
	ID         int64          `json:"id"`
	Applicant  RawApplicant   `json:"applicant"`
	Assessment RiskAssessment `json:"assessment"`
	CreatedAt  time.Time      `json:"created_at"`
}
