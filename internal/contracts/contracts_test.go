package contracts

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFeatureSchema(t *testing.T) {
	s, err := NewFeatureSchema(
		[]string{"a", "b"},
		map[string]float64{"b": 1.5, "unknown": 9},
	)
	require.NoError(t, err)

	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("unknown"))
	assert.Equal(t, 1.5, s.Default("b"))
	assert.Equal(t, 0.0, s.Default("a"))
	assert.Equal(t, 0.0, s.Default("unknown"), "defaults for names outside the schema are dropped")

	i, ok := s.Index("b")
	require.True(t, ok)
	assert.Equal(t, 1, i)
}

func TestNewFeatureSchema_Rejections(t *testing.T) {
	_, err := NewFeatureSchema(nil, nil)
	assert.Error(t, err)

	_, err = NewFeatureSchema([]string{"a", ""}, nil)
	assert.Error(t, err)

	_, err = NewFeatureSchema([]string{"a", "a"}, nil)
	assert.Error(t, err)
}

func TestFeatureSchema_NamesIsACopy(t *testing.T) {
	s, err := NewFeatureSchema([]string{"a", "b"}, nil)
	require.NoError(t, err)

	names := s.Names()
	names[0] = "mutated"

	assert.Equal(t, []string{"a", "b"}, s.Names())
}

func TestFeatureVector_Clone(t *testing.T) {
	v := &FeatureVector{Names: []string{"a"}, Values: []float64{1}}

	c := v.Clone()
	c.Values[0] = 99

	assert.Equal(t, 1.0, v.Values[0])
}

func TestRiskTierLabel(t *testing.T) {
	assert.Equal(t, "Low Risk", TierLow.Label())
	assert.Equal(t, "Medium Risk", TierMedium.Label())
	assert.Equal(t, "High Risk", TierHigh.Label())
	assert.Equal(t, "Unknown", RiskTier("??").Label())
}

func TestErrorTypes(t *testing.T) {
	inner := errors.New("boom")

	var loadErr error = &SchemaLoadError{Path: "x.csv", Err: inner}
	assert.ErrorIs(t, loadErr, inner)
	assert.Contains(t, loadErr.Error(), "x.csv")

	var predErr error = &PredictionError{Reason: "bad input", Err: inner}
	assert.ErrorIs(t, predErr, inner)
	assert.Contains(t, predErr.Error(), "bad input")

	mismatch := &SchemaMismatchError{Missing: []string{"a"}, Extra: []string{"z"}}
	assert.Contains(t, mismatch.Error(), "missing")
	assert.Contains(t, mismatch.Error(), "extra")
}
