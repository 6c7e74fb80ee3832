package scoring

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finlab/credscore/internal/contracts"
	"github.com/finlab/credscore/internal/preprocess"
	"github.com/finlab/credscore/pkg/config"
	"github.com/finlab/credscore/pkg/logger"
)

// stubClassifier returns a fixed probability and records its last input.
type stubClassifier struct {
	p        float64
	err      error
	features int
	lastIn   []float64
}

func (s *stubClassifier) PredictProba(values []float64) (float64, error) {
	s.lastIn = values
	if s.err != nil {
		return 0, s.err
	}
	return s.p, nil
}

func (s *stubClassifier) NumFeatures() int { return s.features }

func testLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
}

func pipelineSchema(t *testing.T) *contracts.FeatureSchema {
	t.Helper()

	s, err := contracts.NewFeatureSchema(
		[]string{"AMT_CREDIT", "AMT_INCOME_TOTAL", "BUREAU_DAYS_CREDIT_mean"},
		map[string]float64{"BUREAU_DAYS_CREDIT_mean": -900},
	)
	require.NoError(t, err)
	return s
}

func TestPipeline_Score(t *testing.T) {
	log := testLogger()
	s := pipelineSchema(t)
	clf := &stubClassifier{p: 0.15, features: s.Len()}

	p := NewPipeline(s, preprocess.NewChain(nil, nil, log), clf, log)

	raw := &contracts.RawApplicant{Income: 150000, CreditAmount: 200000}
	assessment, err := p.Score(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, 0.15, assessment.Probability)
	assert.Equal(t, contracts.TierLow, assessment.Tier)
	assert.Equal(t, 767, assessment.DisplayScore)

	// No fitted transforms loaded: result is produced but flagged
	assert.True(t, assessment.Degraded)
	assert.Contains(t, assessment.DegradedReason, "no imputer artifact")
	assert.Contains(t, assessment.DegradedReason, "no scaler artifact")

	// Classifier saw the schema-ordered vector with the median fallback
	require.Len(t, clf.lastIn, s.Len())
	assert.Equal(t, []float64{200000, 150000, -900}, clf.lastIn)
}

func TestPipeline_ClassifierError(t *testing.T) {
	log := testLogger()
	s := pipelineSchema(t)
	clf := &stubClassifier{err: &contracts.PredictionError{Reason: "boom"}, features: s.Len()}

	p := NewPipeline(s, preprocess.NewChain(nil, nil, log), clf, log)

	_, err := p.Score(context.Background(), &contracts.RawApplicant{CreditAmount: 1})
	require.Error(t, err)

	var perr *contracts.PredictionError
	assert.True(t, errors.As(err, &perr))
}

func TestPipeline_Deterministic(t *testing.T) {
	log := testLogger()
	s := pipelineSchema(t)
	clf := &stubClassifier{p: 0.42, features: s.Len()}

	p := NewPipeline(s, preprocess.NewChain(nil, nil, log), clf, log)
	raw := &contracts.RawApplicant{Income: 1000, CreditAmount: 5000, Annuity: 250}

	first, err := p.Score(context.Background(), raw)
	require.NoError(t, err)
	second, err := p.Score(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, first.Probability, second.Probability)
	assert.Equal(t, first.Tier, second.Tier)
	assert.Equal(t, first.DisplayScore, second.DisplayScore)
}
