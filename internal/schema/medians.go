package schema

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/finlab/credscore/internal/contracts"
)

// LoadMedians reads the training-median table: a JSON object mapping feature
// name to the global training-set median. Medians, not zeros, are the
// fallback for features a single form cannot reproduce (aggregates over
// bureau history and previous applications) — zero sits far outside their
// training distribution and skews tree split decisions.
func LoadMedians(path string) (map[string]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: median table not found at %s", contracts.ErrArtifactMissing, path)
		}
		return nil, fmt.Errorf("read median table %s: %w", path, err)
	}

	medians := make(map[string]float64)
	if err := json.Unmarshal(data, &medians); err != nil {
		return nil, fmt.Errorf("parse median table %s: %w", path, err)
	}

	return medians, nil
}
