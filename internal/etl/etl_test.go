package etl

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finlab/credscore/internal/schema"
)

func TestCleanApplications(t *testing.T) {
	table := &Table{
		Columns: []string{"SK_ID_CURR", "DAYS_EMPLOYED"},
		Rows: [][]string{
			{"1", "-2000"},
			{"2", "365243"},
			{"3", ""},
		},
	}

	count := CleanApplications(table)

	assert.Equal(t, 1, count)
	assert.Equal(t, []string{"SK_ID_CURR", "DAYS_EMPLOYED", "DAYS_EMPLOYED_ANOM"}, table.Columns)
	assert.Equal(t, []string{"1", "-2000", "0"}, table.Rows[0])
	assert.Equal(t, []string{"2", "", "1"}, table.Rows[1], "sentinel blanked so imputation treats it as missing")
	assert.Equal(t, []string{"3", "", "0"}, table.Rows[2])
}

func TestImputeNumericMedians(t *testing.T) {
	table := &Table{
		Columns: []string{"A", "LABEL"},
		Rows: [][]string{
			{"1", "x"},
			{"", "y"},
			{"3", "z"},
		},
	}

	ImputeNumericMedians(table)

	assert.Equal(t, "2", table.Rows[1][0])
	assert.Equal(t, "y", table.Rows[1][1], "non-numeric columns untouched")
}

func TestAggregateByID(t *testing.T) {
	table := &Table{
		Columns: []string{"SK_ID_CURR", "DAYS_CREDIT", "NOTE"},
		Rows: [][]string{
			{"100", "-10", "a"},
			{"100", "-30", "b"},
			{"200", "-50", "c"},
			{"100", "", "d"}, // missing value excluded from stats
		},
	}

	agg, err := AggregateByID(table, "SK_ID_CURR", "BUREAU", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"SK_ID_CURR",
		"BUREAU_DAYS_CREDIT_count",
		"BUREAU_DAYS_CREDIT_mean",
		"BUREAU_DAYS_CREDIT_max",
		"BUREAU_DAYS_CREDIT_min",
		"BUREAU_DAYS_CREDIT_sum",
	}, agg.Columns, "non-numeric columns are not aggregated")

	require.Len(t, agg.Rows, 2)
	assert.Equal(t, []string{"100", "2", "-20", "-10", "-30", "-40"}, agg.Rows[0])
	assert.Equal(t, []string{"200", "1", "-50", "-50", "-50", "-50"}, agg.Rows[1])
}

func TestAggregateByID_NoIDColumn(t *testing.T) {
	table := &Table{Columns: []string{"X"}, Rows: [][]string{{"1"}}}

	_, err := AggregateByID(table, "SK_ID_CURR", "BUREAU", nil)
	assert.Error(t, err)
}

func TestMergeOnID(t *testing.T) {
	app := &Table{
		Columns: []string{"SK_ID_CURR", "AMT_CREDIT"},
		Rows: [][]string{
			{"100", "200000"},
			{"300", "50000"}, // no history
		},
	}
	agg := &Table{
		Columns: []string{"SK_ID_CURR", "BUREAU_DAYS_CREDIT_mean"},
		Rows:    [][]string{{"100", "-20"}},
	}

	merged, err := MergeOnID(app, agg, "SK_ID_CURR")
	require.NoError(t, err)

	assert.Equal(t, []string{"SK_ID_CURR", "AMT_CREDIT", "BUREAU_DAYS_CREDIT_mean"}, merged.Columns)
	assert.Equal(t, []string{"100", "200000", "-20"}, merged.Rows[0])
	assert.Equal(t, []string{"300", "50000", ""}, merged.Rows[1], "left join keeps applicants without history")
}

func TestMedians(t *testing.T) {
	table := &Table{
		Columns: []string{"A", "B", "LABEL"},
		Rows: [][]string{
			{"1", "10", "x"},
			{"2", "", "y"},
			{"4", "30", "z"},
		},
	}

	m := Medians(table)

	assert.Equal(t, 2.0, m["A"])
	assert.Equal(t, 20.0, m["B"], "median over the finite values only")
	_, ok := m["LABEL"]
	assert.False(t, ok)
}

func TestWriteMedians_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feature_medians.json")
	in := map[string]float64{"A": 1.5, "B": -2}

	require.NoError(t, WriteMedians(path, in))

	out, err := schema.LoadMedians(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestMedianHelper(t *testing.T) {
	assert.Equal(t, 2.0, median([]float64{3, 1, 2}))
	assert.Equal(t, 2.5, median([]float64{1, 2, 3, 4}))
	assert.Equal(t, 5.0, median([]float64{math.NaN(), 5}))
	assert.True(t, math.IsNaN(median(nil)))
}

func TestQualityGate(t *testing.T) {
	gate := NewQualityGate(DefaultQualityConfig())

	t.Run("clean table passes", func(t *testing.T) {
		table := &Table{
			Columns: []string{"AMT_INCOME_TOTAL", "DAYS_EMPLOYED", "TARGET"},
			Rows: [][]string{
				{"150000", "-2000", "0"},
				{"90000", "-1500", "1"},
				{"120000", "-800", "0"},
				{"80000", "-3000", "0"},
			},
		}

		snap := gate.Check(table)
		assert.True(t, snap.Passed)
		assert.Equal(t, 0, snap.SentinelRows)
		assert.Equal(t, 0, snap.IncomeOutliers)
		assert.Empty(t, snap.SparseColumns)
		assert.InDelta(t, 0.25, snap.TargetRate, 1e-12)
		assert.InDelta(t, 1.0, snap.QualityScore, 1e-12)
	})

	t.Run("dirty table fails", func(t *testing.T) {
		table := &Table{
			Columns: []string{"AMT_INCOME_TOTAL", "DAYS_EMPLOYED", "SPARSE", "TARGET"},
			Rows: [][]string{
				{"150000", "365243", "", "0"},
				{"99000000", "365243", "", "0"},
				{"120000", "365243", "1", "0"},
				{"80000", "365243", "", "0"},
			},
		}

		snap := gate.Check(table)
		assert.False(t, snap.Passed)
		assert.Equal(t, 4, snap.SentinelRows)
		assert.Equal(t, 1, snap.IncomeOutliers)
		assert.Contains(t, snap.SparseColumns, "SPARSE")
		assert.Equal(t, 0.0, snap.TargetRate)
	})

	t.Run("no target column gets full credit", func(t *testing.T) {
		table := &Table{
			Columns: []string{"AMT_INCOME_TOTAL"},
			Rows:    [][]string{{"100000"}},
		}

		snap := gate.Check(table)
		assert.Equal(t, -1.0, snap.TargetRate)
		assert.True(t, snap.Passed)
	})
}
