package etl

import (
	"fmt"
	"math"
	"strconv"
)

// aggregation stats, in the order the training pipeline emitted them
var aggStats = []string{"count", "mean", "max", "min", "sum"}

// AggregateByID groups an auxiliary table by the applicant ID column and
// aggregates every numeric column with count/mean/max/min/sum, producing one
// row per applicant. Output columns are named PREFIX_COLUMN_stat to match
// the engineered feature names the model was trained on.
func AggregateByID(t *Table, idCol, prefix string, skip []string) (*Table, error) {
	idIdx := t.ColumnIndex(idCol)
	if idIdx < 0 {
		return nil, fmt.Errorf("table has no %s column", idCol)
	}

	skipSet := map[string]bool{idCol: true}
	for _, col := range skip {
		skipSet[col] = true
	}

	var aggCols []int
	for idx, name := range t.Columns {
		if !skipSet[name] && t.IsNumeric(idx) {
			aggCols = append(aggCols, idx)
		}
	}

	// Preserve first-seen ID order for deterministic output
	var ids []string
	groups := make(map[string][][]string)
	for _, row := range t.Rows {
		if idIdx >= len(row) || row[idIdx] == "" {
			continue
		}
		id := row[idIdx]
		if _, seen := groups[id]; !seen {
			ids = append(ids, id)
		}
		groups[id] = append(groups[id], row)
	}

	columns := []string{idCol}
	for _, idx := range aggCols {
		for _, stat := range aggStats {
			columns = append(columns, fmt.Sprintf("%s_%s_%s", prefix, t.Columns[idx], stat))
		}
	}

	out := &Table{Columns: columns}
	for _, id := range ids {
		row := []string{id}
		for _, idx := range aggCols {
			row = append(row, aggregateColumn(groups[id], idx)...)
		}
		out.Rows = append(out.Rows, row)
	}

	return out, nil
}

// aggregateColumn computes the stats for one column over one group.
func aggregateColumn(rows [][]string, idx int) []string {
	count := 0
	sum := 0.0
	min := math.Inf(1)
	max := math.Inf(-1)

	for _, row := range rows {
		v := cellValue(row, idx)
		if math.IsNaN(v) {
			continue
		}
		count++
		sum += v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if count == 0 {
		return []string{"0", "", "", "", ""}
	}

	mean := sum / float64(count)
	return []string{
		strconv.Itoa(count),
		formatFloat(mean),
		formatFloat(max),
		formatFloat(min),
		formatFloat(sum),
	}
}

// MergeOnID left-joins aggregate columns onto the application table.
// Applicants with no auxiliary history keep empty (missing) cells for the
// aggregate columns.
func MergeOnID(app, agg *Table, idCol string) (*Table, error) {
	appIdx := app.ColumnIndex(idCol)
	aggIdx := agg.ColumnIndex(idCol)
	if appIdx < 0 || aggIdx < 0 {
		return nil, fmt.Errorf("both tables need a %s column", idCol)
	}

	byID := make(map[string][]string, len(agg.Rows))
	for _, row := range agg.Rows {
		if aggIdx < len(row) {
			byID[row[aggIdx]] = row
		}
	}

	columns := make([]string, 0, len(app.Columns)+len(agg.Columns)-1)
	columns = append(columns, app.Columns...)
	for i, col := range agg.Columns {
		if i != aggIdx {
			columns = append(columns, col)
		}
	}

	out := &Table{Columns: columns}
	empty := make([]string, len(agg.Columns)-1)

	for _, row := range app.Rows {
		merged := make([]string, 0, len(columns))
		merged = append(merged, row...)
		for len(merged) < len(app.Columns) {
			merged = append(merged, "")
		}

		match, ok := byID[row[appIdx]]
		if !ok {
			merged = append(merged, empty...)
		} else {
			for i, cell := range match {
				if i != aggIdx {
					merged = append(merged, cell)
				}
			}
		}
		out.Rows = append(out.Rows, merged)
	}

	return out, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
