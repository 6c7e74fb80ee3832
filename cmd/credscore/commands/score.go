package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/finlab/credscore/internal/contracts"
	"github.com/finlab/credscore/pkg/config"
	"github.com/finlab/credscore/pkg/logger"
)

// scoreCmd represents the score command
var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one applicant from a JSON file",
	Long: `Score a single applicant without starting the server.

Reads an applicant JSON file (same shape as the POST /api/score body),
runs the full pipeline and prints the assessment.

Example:
  go run ./cmd/credscore score --input applicant.json`,
	RunE: runScore,
}

var scoreInput string

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringVar(&scoreInput, "input", "", "applicant JSON file (required)")
	scoreCmd.MarkFlagRequired("input")
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	arts, err := loadArtifacts(cfg, log)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(scoreInput)
	if err != nil {
		return fmt.Errorf("read %s: %w", scoreInput, err)
	}

	var applicant contracts.RawApplicant
	if err := json.Unmarshal(data, &applicant); err != nil {
		return fmt.Errorf("parse applicant: %w", err)
	}

	assessment, err := arts.pipeline.Score(context.Background(), &applicant)
	if err != nil {
		return fmt.Errorf("score applicant: %w", err)
	}

	out, err := json.MarshalIndent(assessment, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal assessment: %w", err)
	}

	fmt.Println(string(out))
	return nil
}
