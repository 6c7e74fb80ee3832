// Package schema loads the feature schema artifact: the canonical ordered
// feature-name list with per-feature defaults.
//
// SSOT: both the derivation engine and the UI input mapping consume this
// artifact. Feature lists are never hardcoded anywhere else, and the model's
// introspected feature names are never used — a model loaded with sanitized
// (underscore-substituted) names would silently misalign against the real
// engineered names.
package schema

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/finlab/credscore/internal/contracts"
)

// Load reads the schema CSV (one row per feature, columns `feature` and
// optionally `default`) and merges the median table when mediansPath is
// non-empty. Precedence per feature: CSV default, then median, then 0.
func Load(schemaPath, mediansPath string) (*contracts.FeatureSchema, error) {
	names, csvDefaults, err := readSchemaCSV(schemaPath)
	if err != nil {
		return nil, &contracts.SchemaLoadError{Path: schemaPath, Err: err}
	}

	defaults := make(map[string]float64, len(names))
	if mediansPath != "" {
		medians, err := LoadMedians(mediansPath)
		if err != nil {
			return nil, err
		}
		for name, v := range medians {
			defaults[name] = v
		}
	}
	for name, v := range csvDefaults {
		defaults[name] = v
	}

	s, err := contracts.NewFeatureSchema(names, defaults)
	if err != nil {
		return nil, &contracts.SchemaLoadError{Path: schemaPath, Err: err}
	}
	return s, nil
}

// readSchemaCSV parses the feature-name artifact.
func readSchemaCSV(path string) ([]string, map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: feature schema not found at %s", contracts.ErrArtifactMissing, path)
		}
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("read header: %w", err)
	}

	featureCol := -1
	defaultCol := -1
	for i, col := range header {
		switch strings.TrimSpace(strings.ToLower(col)) {
		case "feature":
			featureCol = i
		case "default":
			defaultCol = i
		}
	}
	if featureCol < 0 {
		return nil, nil, fmt.Errorf("header %v has no `feature` column", header)
	}

	var names []string
	defaults := make(map[string]float64)

	for line := 2; ; line++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read line %d: %w", line, err)
		}

		name := strings.TrimSpace(record[featureCol])
		if name == "" {
			return nil, nil, fmt.Errorf("line %d: empty feature name", line)
		}
		names = append(names, name)

		if defaultCol >= 0 && defaultCol < len(record) {
			raw := strings.TrimSpace(record[defaultCol])
			if raw == "" {
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: non-numeric default %q for %s", line, raw, name)
			}
			defaults[name] = v
		}
	}

	if len(names) == 0 {
		return nil, nil, fmt.Errorf("schema file has no feature rows")
	}

	return names, defaults, nil
}
