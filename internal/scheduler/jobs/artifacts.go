package jobs

import (
	"context"
	"fmt"
	"os"

	"github.com/finlab/credscore/pkg/config"
	"github.com/finlab/credscore/pkg/logger"
)

// ArtifactCheckJob verifies that every inference artifact the service loaded
// at startup is still present on disk, and warns when one changed after
// startup (a refit without a restart means the in-memory pipeline is stale).
type ArtifactCheckJob struct {
	cfg      *config.Config
	logger   *logger.Logger
	loadedAt map[string]int64 // path -> mtime at startup, unix seconds
}

// NewArtifactCheckJob creates a new artifact check job
func NewArtifactCheckJob(cfg *config.Config, log *logger.Logger) *ArtifactCheckJob {
	j := &ArtifactCheckJob{
		cfg:      cfg,
		logger:   log,
		loadedAt: make(map[string]int64),
	}

	for _, path := range j.paths() {
		if info, err := os.Stat(path); err == nil {
			j.loadedAt[path] = info.ModTime().Unix()
		}
	}

	return j
}

// Name returns the job name
func (j *ArtifactCheckJob) Name() string {
	return "artifact_check"
}

// Schedule returns the cron schedule (every hour)
func (j *ArtifactCheckJob) Schedule() string {
	return "0 0 * * * *"
}

// Run checks artifact presence and modification times
func (j *ArtifactCheckJob) Run(ctx context.Context) error {
	var missing []string

	for _, path := range j.paths() {
		info, err := os.Stat(path)
		if err != nil {
			missing = append(missing, path)
			continue
		}

		if loaded, ok := j.loadedAt[path]; ok && info.ModTime().Unix() != loaded {
			j.logger.WithField("path", path).
				Warn("Artifact changed on disk since startup, restart to pick it up")
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("artifacts missing on disk: %v", missing)
	}

	return nil
}

func (j *ArtifactCheckJob) paths() []string {
	return []string{
		j.cfg.Artifacts.SchemaPath,
		j.cfg.Artifacts.MediansPath,
		j.cfg.Artifacts.ModelPath,
		j.cfg.Artifacts.ImputerPath,
		j.cfg.Artifacts.ScalerPath,
	}
}
