package etl

import (
	"math"
	"time"
)

// QualityGate validates a prepared training table before artifacts are
// refit from it.
type QualityGate struct {
	config QualityConfig
}

// QualityConfig holds quality gate thresholds.
type QualityConfig struct {
	MaxMissingRatio   float64 // per-column missing ceiling before it is flagged
	MaxIncome         float64 // incomes above this are treated as entry errors
	MinTargetRate     float64 // default-rate floor for a plausible sample
	MaxTargetRate     float64 // default-rate ceiling for a plausible sample
	MinPassingQuality float64 // overall score below this fails the gate
}

// DefaultQualityConfig returns the thresholds used by the refit jobs.
func DefaultQualityConfig() QualityConfig {
	return QualityConfig{
		MaxMissingRatio:   0.50,
		MaxIncome:         10_000_000,
		MinTargetRate:     0.01,
		MaxTargetRate:     0.50,
		MinPassingQuality: 0.80,
	}
}

// QualitySnapshot is the result of one gate run.
type QualitySnapshot struct {
	Timestamp      time.Time
	TotalRows      int
	SentinelRows   int      // DAYS_EMPLOYED placeholder rows still present
	IncomeOutliers int      // rows with implausible income
	SparseColumns  []string // columns missing beyond the ceiling
	TargetRate     float64  // share of positive TARGET labels, -1 if absent
	Coverage       map[string]float64
	QualityScore   float64
	Passed         bool
}

// NewQualityGate creates a new QualityGate instance.
func NewQualityGate(config QualityConfig) *QualityGate {
	return &QualityGate{config: config}
}

// Check validates the table and computes the weighted quality score.
func (g *QualityGate) Check(t *Table) *QualitySnapshot {
	snapshot := &QualitySnapshot{
		Timestamp: time.Now(),
		TotalRows: len(t.Rows),
		Coverage:  make(map[string]float64),
	}

	snapshot.SentinelRows = g.countSentinels(t)
	snapshot.IncomeOutliers = g.countIncomeOutliers(t)
	snapshot.SparseColumns = g.findSparseColumns(t)
	snapshot.TargetRate = g.targetRate(t)

	snapshot.Coverage["sentinel"] = ratioClean(snapshot.SentinelRows, snapshot.TotalRows)
	snapshot.Coverage["income"] = ratioClean(snapshot.IncomeOutliers, snapshot.TotalRows)
	snapshot.Coverage["columns"] = ratioClean(len(snapshot.SparseColumns), len(t.Columns))
	snapshot.Coverage["target"] = g.targetCoverage(snapshot.TargetRate)

	snapshot.QualityScore = g.calculateScore(snapshot.Coverage)
	snapshot.Passed = snapshot.QualityScore >= g.config.MinPassingQuality

	return snapshot
}

// countSentinels counts rows where the employment placeholder survived
// cleaning. Any non-zero count means CleanApplications was skipped.
func (g *QualityGate) countSentinels(t *Table) int {
	idx := t.ColumnIndex(colDaysEmployed)
	if idx < 0 {
		return 0
	}

	count := 0
	for _, row := range t.Rows {
		if idx < len(row) && row[idx] == employedSentinel {
			count++
		}
	}
	return count
}

// countIncomeOutliers counts rows with income above the plausibility ceiling.
func (g *QualityGate) countIncomeOutliers(t *Table) int {
	idx := t.ColumnIndex("AMT_INCOME_TOTAL")
	if idx < 0 {
		return 0
	}

	count := 0
	for _, row := range t.Rows {
		v := cellValue(row, idx)
		if !math.IsNaN(v) && v > g.config.MaxIncome {
			count++
		}
	}
	return count
}

// findSparseColumns returns columns whose missing ratio exceeds the ceiling.
func (g *QualityGate) findSparseColumns(t *Table) []string {
	if len(t.Rows) == 0 {
		return nil
	}

	var sparse []string
	for idx, name := range t.Columns {
		missing := 0
		for _, row := range t.Rows {
			if idx >= len(row) || row[idx] == "" {
				missing++
			}
		}
		if float64(missing)/float64(len(t.Rows)) > g.config.MaxMissingRatio {
			sparse = append(sparse, name)
		}
	}
	return sparse
}

// targetRate returns the positive-label share, or -1 when the table has no
// TARGET column (scoring-only datasets).
func (g *QualityGate) targetRate(t *Table) float64 {
	idx := t.ColumnIndex("TARGET")
	if idx < 0 {
		return -1
	}

	total, positive := 0, 0
	for _, row := range t.Rows {
		v := cellValue(row, idx)
		if math.IsNaN(v) {
			continue
		}
		total++
		if v == 1 {
			positive++
		}
	}
	if total == 0 {
		return -1
	}
	return float64(positive) / float64(total)
}

// targetCoverage maps the label balance onto [0,1]: full credit inside the
// plausible band, zero outside, full credit when the column is absent.
func (g *QualityGate) targetCoverage(rate float64) float64 {
	if rate < 0 {
		return 1.0
	}
	if rate < g.config.MinTargetRate || rate > g.config.MaxTargetRate {
		return 0.0
	}
	return 1.0
}

// calculateScore calculates overall quality score using weighted average.
func (g *QualityGate) calculateScore(coverage map[string]float64) float64 {
	weights := map[string]float64{
		"sentinel": 0.30, // placeholder leakage poisons the scale fit
		"income":   0.20,
		"columns":  0.25,
		"target":   0.25,
	}

	score := 0.0
	for key, weight := range weights {
		if cov, exists := coverage[key]; exists {
			score += cov * weight
		}
	}

	return score
}

func ratioClean(bad, total int) float64 {
	if total <= 0 {
		return 1.0
	}
	return 1.0 - float64(bad)/float64(total)
}
