package etl

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Medians computes the per-column median of every numeric column. Columns
// with no finite values are skipped.
func Medians(t *Table) map[string]float64 {
	out := make(map[string]float64)
	for idx, name := range t.Columns {
		if !t.IsNumeric(idx) {
			continue
		}
		m := median(t.NumericColumn(idx))
		if !math.IsNaN(m) {
			out[name] = m
		}
	}
	return out
}

// WriteMedians emits the median map as the JSON artifact the inference
// service loads at startup. encoding/json writes map keys sorted, so reruns
// over the same data produce identical files.
func WriteMedians(path string, medians map[string]float64) error {
	data, err := json.MarshalIndent(medians, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal medians: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
