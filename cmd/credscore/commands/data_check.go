package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finlab/credscore/internal/etl"
	"github.com/finlab/credscore/pkg/config"
	"github.com/finlab/credscore/pkg/logger"
)

// dataCheckCmd represents the data-check command
var dataCheckCmd = &cobra.Command{
	Use:   "data-check",
	Short: "Run the quality gate on a prepared table",
	Long: `Validate a prepared training table before refitting artifacts from it.

Checks for leftover employment placeholders, implausible incomes, columns
with excessive missingness and label imbalance, then combines them into a
weighted quality score.

Example:
  go run ./cmd/credscore data-check --input prepared.csv`,
	RunE: runDataCheck,
}

var dataCheckInput string

func init() {
	rootCmd.AddCommand(dataCheckCmd)

	dataCheckCmd.Flags().StringVar(&dataCheckInput, "input", "", "prepared table CSV (required)")
	dataCheckCmd.MarkFlagRequired("input")
}

func runDataCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	table, err := etl.ReadCSV(dataCheckInput)
	if err != nil {
		return err
	}

	gate := etl.NewQualityGate(etl.DefaultQualityConfig())
	snapshot := gate.Check(table)

	fmt.Printf("Rows:            %d\n", snapshot.TotalRows)
	fmt.Printf("Sentinel rows:   %d\n", snapshot.SentinelRows)
	fmt.Printf("Income outliers: %d\n", snapshot.IncomeOutliers)
	fmt.Printf("Sparse columns:  %d\n", len(snapshot.SparseColumns))
	for _, col := range snapshot.SparseColumns {
		fmt.Printf("  - %s\n", col)
	}
	if snapshot.TargetRate >= 0 {
		fmt.Printf("Default rate:    %.4f\n", snapshot.TargetRate)
	}
	fmt.Printf("Quality score:   %.4f\n", snapshot.QualityScore)

	if !snapshot.Passed {
		log.WithField("score", snapshot.QualityScore).Error("Quality gate failed")
		return fmt.Errorf("quality gate failed with score %.4f", snapshot.QualityScore)
	}

	log.WithField("score", snapshot.QualityScore).Info("Quality gate passed")
	return nil
}
