// Package preprocess applies the fitted imputer and robust scaler to an
// aligned feature vector, in that fixed order. Both transforms were fitted
// offline against vectors built in schema order; the column order entering
// them here must match that fit-time order, which holds as long as every
// vector comes out of the alignment step.
package preprocess

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/finlab/credscore/internal/contracts"
)

// Imputer replaces missing (NaN) values with the per-column statistic fitted
// at training time. Statistics are never recomputed at inference time.
type Imputer struct {
	strategy   string
	features   []string
	statistics []float64
}

type imputerArtifact struct {
	Strategy   string    `json:"strategy"`
	Features   []string  `json:"features"`
	Statistics []float64 `json:"statistics"`
}

// LoadImputer reads a fitted imputer artifact.
func LoadImputer(path string) (*Imputer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: imputer not found at %s", contracts.ErrArtifactMissing, path)
		}
		return nil, fmt.Errorf("read imputer %s: %w", path, err)
	}

	var artifact imputerArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("parse imputer %s: %w", path, err)
	}

	if len(artifact.Statistics) == 0 {
		return nil, fmt.Errorf("imputer %s has no fitted statistics", path)
	}
	if len(artifact.Features) > 0 && len(artifact.Features) != len(artifact.Statistics) {
		return nil, fmt.Errorf("imputer %s: %d features but %d statistics",
			path, len(artifact.Features), len(artifact.Statistics))
	}

	return &Imputer{
		strategy:   artifact.Strategy,
		features:   artifact.Features,
		statistics: artifact.Statistics,
	}, nil
}

// Transform returns a copy of values with every NaN replaced by the fitted
// per-column statistic. A row with no missing data comes back unchanged.
func (im *Imputer) Transform(values []float64) ([]float64, error) {
	if len(values) != len(im.statistics) {
		return nil, fmt.Errorf("imputer fitted on %d columns, got %d", len(im.statistics), len(values))
	}

	out := make([]float64, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			out[i] = im.statistics[i]
		} else {
			out[i] = v
		}
	}
	return out, nil
}

// NumFeatures returns the fit-time column count.
func (im *Imputer) NumFeatures() int {
	return len(im.statistics)
}

// Strategy returns the fit-time strategy name (e.g. "median").
func (im *Imputer) Strategy() string {
	return im.strategy
}
