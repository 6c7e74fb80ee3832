package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finlab/credscore/internal/etl"
	"github.com/finlab/credscore/pkg/config"
	"github.com/finlab/credscore/pkg/logger"
)

// mediansCmd represents the medians command
var mediansCmd = &cobra.Command{
	Use:   "medians",
	Short: "Compute training medians from a prepared table",
	Long: `Compute per-column medians from the prepared training table and
write them as the JSON artifact the service uses to fill features the
applicant form cannot provide.

Example:
  go run ./cmd/credscore medians --input prepared.csv`,
	RunE: runMedians,
}

var (
	mediansInput string
	mediansOut   string
)

func init() {
	rootCmd.AddCommand(mediansCmd)

	mediansCmd.Flags().StringVar(&mediansInput, "input", "", "prepared table CSV (required)")
	mediansCmd.Flags().StringVar(&mediansOut, "out", "", "output JSON path (default MEDIANS_PATH)")
	mediansCmd.MarkFlagRequired("input")
}

func runMedians(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	out := mediansOut
	if out == "" {
		out = cfg.Artifacts.MediansPath
	}

	table, err := etl.ReadCSV(mediansInput)
	if err != nil {
		return err
	}

	medians := etl.Medians(table)
	if err := etl.WriteMedians(out, medians); err != nil {
		return err
	}

	log.WithFields(map[string]interface{}{
		"path":     out,
		"features": len(medians),
	}).Info("Medians written")

	return nil
}
