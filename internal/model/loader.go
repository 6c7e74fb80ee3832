package model

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/finlab/credscore/internal/contracts"
)

type modelArtifact struct {
	Name          string     `json:"name"`
	Version       string     `json:"version"`
	NumClass      int        `json:"num_class"`
	MaxFeatureIdx int        `json:"max_feature_idx"`
	Objective     string     `json:"objective"`
	FeatureNames  []string   `json:"feature_names"`
	TreeInfo      []treeInfo `json:"tree_info"`
}

type treeInfo struct {
	TreeIndex     int       `json:"tree_index"`
	TreeStructure *treeNode `json:"tree_structure"`
}

// Load reads a dumped GBDT artifact (LightGBM dump_model format) and
// validates it against the expected schema length.
func Load(path string, schema *contracts.FeatureSchema) (*GBDT, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: model not found at %s", contracts.ErrArtifactMissing, path)
		}
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}

	var artifact modelArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("parse model %s: %w", path, err)
	}

	if artifact.NumClass > 1 {
		return nil, fmt.Errorf("model %s: %d classes, only binary models are supported", path, artifact.NumClass)
	}
	if !strings.HasPrefix(artifact.Objective, "binary") {
		return nil, fmt.Errorf("model %s: objective %q, expected binary", path, artifact.Objective)
	}
	if len(artifact.TreeInfo) == 0 {
		return nil, fmt.Errorf("model %s has no trees", path)
	}

	numFeatures := artifact.MaxFeatureIdx + 1
	if len(artifact.FeatureNames) > numFeatures {
		numFeatures = len(artifact.FeatureNames)
	}

	trees := make([]*treeNode, 0, len(artifact.TreeInfo))
	for _, info := range artifact.TreeInfo {
		if info.TreeStructure == nil {
			return nil, fmt.Errorf("model %s: tree %d has no structure", path, info.TreeIndex)
		}
		if err := validateTree(info.TreeStructure, numFeatures); err != nil {
			return nil, fmt.Errorf("model %s: tree %d: %w", path, info.TreeIndex, err)
		}
		trees = append(trees, info.TreeStructure)
	}

	m := &GBDT{
		featureNames: artifact.FeatureNames,
		numFeatures:  numFeatures,
		trees:        trees,
		objective:    artifact.Objective,
	}

	// Positional binding: the schema decides names and order, the model only
	// has to agree on the count. A mismatch here means the artifacts were
	// regenerated out of step and must be rejected, not papered over.
	if schema != nil && m.numFeatures != schema.Len() {
		return nil, fmt.Errorf("model %s expects %d features but schema has %d",
			path, m.numFeatures, schema.Len())
	}

	return m, nil
}

// validateTree checks that every split index fits the declared feature count.
func validateTree(node *treeNode, numFeatures int) error {
	if node.isLeaf() {
		return nil
	}
	if node.SplitFeature < 0 || node.SplitFeature >= numFeatures {
		return fmt.Errorf("split feature index %d out of range [0,%d)", node.SplitFeature, numFeatures)
	}
	if node.LeftChild == nil || node.RightChild == nil {
		return fmt.Errorf("internal node missing a child")
	}
	if err := validateTree(node.LeftChild, numFeatures); err != nil {
		return err
	}
	return validateTree(node.RightChild, numFeatures)
}
