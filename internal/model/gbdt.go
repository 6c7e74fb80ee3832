// Package model loads the fitted gradient-boosted-tree classifier from its
// dumped-JSON artifact and evaluates it on schema-ordered feature vectors.
//
// The artifact carries its own feature_names list, but those names may have
// been sanitized during training-side export (underscores substituted for
// spaces and slashes). They are kept for diagnostics only; binding is
// strictly positional against the schema order.
package model

import (
	"math"
	"strconv"

	"github.com/finlab/credscore/internal/contracts"
)

// GBDT is a binary gradient-boosted tree ensemble with a sigmoid link.
type GBDT struct {
	featureNames []string
	numFeatures  int
	trees        []*treeNode
	objective    string
}

// treeNode is one node of a dumped tree. Internal nodes carry a split,
// leaves carry only a value.
type treeNode struct {
	SplitFeature int       `json:"split_feature"`
	Threshold    float64   `json:"threshold"`
	DecisionType string    `json:"decision_type"`
	DefaultLeft  bool      `json:"default_left"`
	SplitGain    float64   `json:"split_gain"`
	LeftChild    *treeNode `json:"left_child"`
	RightChild   *treeNode `json:"right_child"`
	LeafValue    float64   `json:"leaf_value"`
}

func (n *treeNode) isLeaf() bool {
	return n.LeftChild == nil && n.RightChild == nil
}

// PredictProba returns the probability of default for one feature vector.
// The vector must be schema-ordered and fully preprocessed; NaN or Inf
// values are a request-level failure, never a silent zero.
func (m *GBDT) PredictProba(values []float64) (float64, error) {
	if len(values) != m.numFeatures {
		return 0, &contracts.PredictionError{
			Reason: "feature count mismatch",
			Err:    nil,
		}
	}

	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, &contracts.PredictionError{
				Reason: "non-finite value at feature " + m.featureName(i),
			}
		}
	}

	raw := 0.0
	for _, tree := range m.trees {
		raw += evaluate(tree, values)
	}

	// Binary objective: sigmoid link over the summed leaf outputs.
	return 1.0 / (1.0 + math.Exp(-raw)), nil
}

// evaluate walks one tree to a leaf.
func evaluate(node *treeNode, values []float64) float64 {
	for !node.isLeaf() {
		v := values[node.SplitFeature]
		if math.IsNaN(v) {
			if node.DefaultLeft {
				node = node.LeftChild
			} else {
				node = node.RightChild
			}
			continue
		}
		if v <= node.Threshold {
			node = node.LeftChild
		} else {
			node = node.RightChild
		}
	}
	return node.LeafValue
}

// NumFeatures returns the feature count the model was fitted with.
func (m *GBDT) NumFeatures() int {
	return m.numFeatures
}

// NumTrees returns the ensemble size.
func (m *GBDT) NumTrees() int {
	return len(m.trees)
}

// FeatureNames returns the model's own (possibly sanitized) feature names.
// Diagnostics only — never use these for alignment.
func (m *GBDT) FeatureNames() []string {
	out := make([]string, len(m.featureNames))
	copy(out, m.featureNames)
	return out
}

// Importance returns total split gain per feature index.
func (m *GBDT) Importance() []float64 {
	gains := make([]float64, m.numFeatures)
	for _, tree := range m.trees {
		accumulateGain(tree, gains)
	}
	return gains
}

func accumulateGain(node *treeNode, gains []float64) {
	if node == nil || node.isLeaf() {
		return
	}
	if node.SplitFeature >= 0 && node.SplitFeature < len(gains) {
		gains[node.SplitFeature] += node.SplitGain
	}
	accumulateGain(node.LeftChild, gains)
	accumulateGain(node.RightChild, gains)
}

func (m *GBDT) featureName(i int) string {
	if i >= 0 && i < len(m.featureNames) {
		return m.featureNames[i]
	}
	return "#" + strconv.Itoa(i)
}
