package model

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finlab/credscore/internal/contracts"
)

const testModelJSON = `{
	"name": "tree",
	"version": "v4",
	"num_class": 1,
	"max_feature_idx": 1,
	"objective": "binary sigmoid:1",
	"feature_names": ["Column_0", "Column_1"],
	"tree_info": [
		{
			"tree_index": 0,
			"tree_structure": {
				"split_feature": 0,
				"threshold": 0.5,
				"decision_type": "<=",
				"default_left": true,
				"split_gain": 12.5,
				"left_child": {"leaf_value": -1.0},
				"right_child": {
					"split_feature": 1,
					"threshold": 100,
					"decision_type": "<=",
					"default_left": false,
					"split_gain": 4.0,
					"left_child": {"leaf_value": 0.5},
					"right_child": {"leaf_value": 2.0}
				}
			}
		},
		{
			"tree_index": 1,
			"tree_structure": {"leaf_value": 0.25}
		}
	]
}`

func writeModel(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

func TestLoad(t *testing.T) {
	m, err := Load(writeModel(t, testModelJSON), nil)
	require.NoError(t, err)

	assert.Equal(t, 2, m.NumFeatures())
	assert.Equal(t, 2, m.NumTrees())
	assert.Equal(t, []string{"Column_0", "Column_1"}, m.FeatureNames())
}

func TestLoad_SchemaCountMismatch(t *testing.T) {
	s, err := contracts.NewFeatureSchema([]string{"only_one"}, nil)
	require.NoError(t, err)

	_, err = Load(writeModel(t, testModelJSON), s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expects 2 features but schema has 1")
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, contracts.ErrArtifactMissing)
}

func TestLoad_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"multiclass", `{"num_class": 3, "objective": "multiclass", "tree_info": [{"tree_structure": {"leaf_value": 0}}]}`},
		{"wrong objective", `{"num_class": 1, "objective": "regression", "tree_info": [{"tree_structure": {"leaf_value": 0}}]}`},
		{"no trees", `{"num_class": 1, "objective": "binary sigmoid:1", "tree_info": []}`},
		{"split index out of range", `{
			"num_class": 1, "max_feature_idx": 0, "objective": "binary sigmoid:1",
			"tree_info": [{"tree_structure": {
				"split_feature": 5, "threshold": 1,
				"left_child": {"leaf_value": 0}, "right_child": {"leaf_value": 1}
			}}]
		}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeModel(t, tt.content), nil)
			assert.Error(t, err)
		})
	}
}

func TestPredictProba(t *testing.T) {
	m, err := Load(writeModel(t, testModelJSON), nil)
	require.NoError(t, err)

	tests := []struct {
		name   string
		values []float64
		raw    float64 // summed leaf outputs before the link
	}{
		{"left leaf", []float64{0.3, 0}, -1.0 + 0.25},
		{"boundary goes left", []float64{0.5, 0}, -1.0 + 0.25},
		{"right then left", []float64{0.9, 50}, 0.5 + 0.25},
		{"right then right", []float64{0.9, 500}, 2.0 + 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := m.PredictProba(tt.values)
			require.NoError(t, err)
			assert.InDelta(t, sigmoid(tt.raw), p, 1e-12)
			assert.GreaterOrEqual(t, p, 0.0)
			assert.LessOrEqual(t, p, 1.0)
		})
	}
}

func TestPredictProba_RejectsBadInput(t *testing.T) {
	m, err := Load(writeModel(t, testModelJSON), nil)
	require.NoError(t, err)

	var perr *contracts.PredictionError

	_, err = m.PredictProba([]float64{1})
	require.Error(t, err)
	assert.ErrorAs(t, err, &perr)

	_, err = m.PredictProba([]float64{math.NaN(), 0})
	require.Error(t, err)
	assert.ErrorAs(t, err, &perr)

	_, err = m.PredictProba([]float64{0, math.Inf(1)})
	require.Error(t, err)
	assert.ErrorAs(t, err, &perr)
}

func TestImportance(t *testing.T) {
	m, err := Load(writeModel(t, testModelJSON), nil)
	require.NoError(t, err)

	gains := m.Importance()
	require.Len(t, gains, 2)
	assert.Equal(t, 12.5, gains[0])
	assert.Equal(t, 4.0, gains[1])
}
