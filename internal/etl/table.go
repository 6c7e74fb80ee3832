// Package etl implements the offline preparation steps that produce the
// inference artifacts: application-table cleaning, numeric aggregation of
// auxiliary credit-history tables, training-median computation and a data
// quality report. Nothing here runs per request; the scoring pipeline only
// consumes the emitted artifacts.
package etl

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
)

// Table is an in-memory CSV table. Cells stay raw strings; empty cells are
// missing values.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ReadCSV loads a CSV file with a header row.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s is empty", path)
	}

	return &Table{Columns: records[0], Rows: records[1:]}, nil
}

// WriteCSV writes the table with a header row.
func (t *Table) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range t.Rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

// ColumnIndex returns the position of a column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// NumericColumn extracts a column as floats, NaN for missing or
// unparseable cells.
func (t *Table) NumericColumn(idx int) []float64 {
	out := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = cellValue(row, idx)
	}
	return out
}

// IsNumeric reports whether every non-empty cell in the column parses as a
// number and at least one cell is non-empty.
func (t *Table) IsNumeric(idx int) bool {
	seen := false
	for _, row := range t.Rows {
		if idx >= len(row) || row[idx] == "" {
			continue
		}
		if _, err := strconv.ParseFloat(row[idx], 64); err != nil {
			return false
		}
		seen = true
	}
	return seen
}

func cellValue(row []string, idx int) float64 {
	if idx < 0 || idx >= len(row) || row[idx] == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(row[idx], 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// median returns the median of the finite values, NaN when there are none.
func median(xs []float64) float64 {
	finite := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			finite = append(finite, x)
		}
	}
	if len(finite) == 0 {
		return math.NaN()
	}

	sort.Float64s(finite)
	n := len(finite)
	if n%2 == 1 {
		return finite[n/2]
	}
	return (finite[n/2-1] + finite[n/2]) / 2
}
