package scoring

import (
	"context"

	"github.com/finlab/credscore/internal/contracts"
	"github.com/finlab/credscore/internal/features"
	"github.com/finlab/credscore/internal/preprocess"
	"github.com/finlab/credscore/pkg/logger"
)

// Pipeline runs one applicant through derive → align → preprocess → score.
// All fields are read-only after construction; the pipeline holds no
// per-request state and is safe to share across concurrent requests.
type Pipeline struct {
	schema     *contracts.FeatureSchema
	chain      *preprocess.Chain
	classifier contracts.Classifier
	logger     *logger.Logger
}

// NewPipeline creates a scoring pipeline. Artifacts are loaded once at
// startup and injected here, never looked up ambiently.
func NewPipeline(
	schema *contracts.FeatureSchema,
	chain *preprocess.Chain,
	classifier contracts.Classifier,
	log *logger.Logger,
) *Pipeline {
	return &Pipeline{
		schema:     schema,
		chain:      chain,
		classifier: classifier,
		logger:     log,
	}
}

// Score assesses one applicant. Derivation cannot fail; the only error
// paths are the internal schema-consistency check and the classifier
// invocation itself. A degraded preprocessing pass still produces an
// assessment, flagged as degraded.
func (p *Pipeline) Score(ctx context.Context, raw *contracts.RawApplicant) (*contracts.RiskAssessment, error) {
	derived := features.Derive(raw)
	vec := features.Align(derived, p.schema)

	// Structurally impossible after Align; kept as a consistency check.
	if err := features.VerifyAligned(vec, p.schema); err != nil {
		return nil, err
	}

	result := p.chain.Apply(vec)

	probability, err := p.classifier.PredictProba(result.Vector.Values)
	if err != nil {
		p.logger.WithError(err).Error("Classifier invocation failed")
		return nil, err
	}

	assessment := Assess(probability)
	assessment.Degraded = result.Degraded
	assessment.DegradedReason = result.DegradedReason

	p.logger.WithFields(map[string]interface{}{
		"probability":   probability,
		"tier":          assessment.Tier,
		"display_score": assessment.DisplayScore,
		"degraded":      assessment.Degraded,
	}).Debug("Applicant scored")

	return &assessment, nil
}

// Schema returns the schema the pipeline was built with.
func (p *Pipeline) Schema() *contracts.FeatureSchema {
	return p.schema
}
