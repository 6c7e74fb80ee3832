package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/finlab/credscore/pkg/config"
	"github.com/finlab/credscore/pkg/logger"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Inspect the loaded model artifacts",
	Long: `Load the fitted artifacts and print the model shape and the top
features by total split gain.

Example:
  go run ./cmd/credscore inspect --top 15`,
	RunE: runInspect,
}

var inspectTop int

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().IntVar(&inspectTop, "top", 20, "number of top features to show")
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	arts, err := loadArtifacts(cfg, log)
	if err != nil {
		return err
	}

	fmt.Printf("Model:    %s\n", cfg.Artifacts.ModelPath)
	fmt.Printf("Trees:    %d\n", arts.gbdt.NumTrees())
	fmt.Printf("Features: %d\n\n", arts.gbdt.NumFeatures())

	type pair struct {
		name string
		gain float64
	}

	gains := arts.gbdt.Importance()
	names := arts.schema.Names()

	ranked := make([]pair, 0, len(gains))
	for i, g := range gains {
		name := fmt.Sprintf("#%d", i)
		if i < len(names) {
			name = names[i]
		}
		ranked = append(ranked, pair{name, g})
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].gain > ranked[j].gain })

	top := inspectTop
	if top > len(ranked) {
		top = len(ranked)
	}

	fmt.Printf("Top %d features by split gain:\n", top)
	for i := 0; i < top; i++ {
		fmt.Printf("  %3d. %-40s %12.2f\n", i+1, ranked[i].name, ranked[i].gain)
	}

	return nil
}
