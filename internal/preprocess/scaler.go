package preprocess

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/finlab/credscore/internal/contracts"
)

// RobustScaler applies the fitted per-column affine transform: subtract the
// fit-time median, divide by the fit-time interquartile range. Deterministic
// given its fitted center and scale.
type RobustScaler struct {
	features []string
	center   []float64
	scale    []float64
}

type scalerArtifact struct {
	Features []string  `json:"features"`
	Center   []float64 `json:"center"`
	Scale    []float64 `json:"scale"`
}

// LoadScaler reads a fitted robust-scaler artifact.
func LoadScaler(path string) (*RobustScaler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: scaler not found at %s", contracts.ErrArtifactMissing, path)
		}
		return nil, fmt.Errorf("read scaler %s: %w", path, err)
	}

	var artifact scalerArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("parse scaler %s: %w", path, err)
	}

	if len(artifact.Center) == 0 || len(artifact.Center) != len(artifact.Scale) {
		return nil, fmt.Errorf("scaler %s: center/scale length mismatch (%d vs %d)",
			path, len(artifact.Center), len(artifact.Scale))
	}

	return &RobustScaler{
		features: artifact.Features,
		center:   artifact.Center,
		scale:    artifact.Scale,
	}, nil
}

// Transform applies (x - center) / scale per column. Columns with a zero
// fitted IQR keep a unit scale, matching how the scaler was exported.
func (s *RobustScaler) Transform(values []float64) ([]float64, error) {
	if len(values) != len(s.center) {
		return nil, fmt.Errorf("scaler fitted on %d columns, got %d", len(s.center), len(values))
	}

	out := make([]float64, len(values))
	for i, v := range values {
		scale := s.scale[i]
		if scale == 0 {
			scale = 1
		}
		out[i] = (v - s.center[i]) / scale
	}
	return out, nil
}

// NumFeatures returns the fit-time column count.
func (s *RobustScaler) NumFeatures() int {
	return len(s.center)
}
