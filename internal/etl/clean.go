package etl

import "strconv"

// The source tables use 365243 in DAYS_EMPLOYED as a placeholder for
// retirees/unknown. Left in place it dwarfs every real value.
const employedSentinel = "365243"

const (
	colDaysEmployed     = "DAYS_EMPLOYED"
	colDaysEmployedAnom = "DAYS_EMPLOYED_ANOM"
)

// CleanApplications blanks the DAYS_EMPLOYED sentinel (so downstream median
// imputation treats it as missing) and appends a 0/1 anomaly flag column.
// Returns the number of sentinel rows found.
func CleanApplications(t *Table) int {
	idx := t.ColumnIndex(colDaysEmployed)

	t.Columns = append(t.Columns, colDaysEmployedAnom)

	count := 0
	for i, row := range t.Rows {
		flag := "0"
		if idx >= 0 && idx < len(row) && row[idx] == employedSentinel {
			row[idx] = ""
			flag = "1"
			count++
		}
		t.Rows[i] = append(row, flag)
	}

	return count
}

// ImputeNumericMedians fills missing cells of every numeric column with that
// column's median. Used only when preparing training artifacts; at inference
// time the fitted imputer owns this job.
func ImputeNumericMedians(t *Table) {
	for idx := range t.Columns {
		if !t.IsNumeric(idx) {
			continue
		}

		m := median(t.NumericColumn(idx))
		filled := strconv.FormatFloat(m, 'g', -1, 64)

		for _, row := range t.Rows {
			if idx < len(row) && row[idx] == "" {
				row[idx] = filled
			}
		}
	}
}
