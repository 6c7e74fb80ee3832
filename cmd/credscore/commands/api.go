package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/finlab/credscore/internal/api"
	"github.com/finlab/credscore/internal/api/handlers"
	"github.com/finlab/credscore/internal/bureau"
	"github.com/finlab/credscore/internal/contracts"
	"github.com/finlab/credscore/internal/history"
	"github.com/finlab/credscore/internal/scheduler"
	"github.com/finlab/credscore/internal/scheduler/jobs"
	"github.com/finlab/credscore/pkg/config"
	"github.com/finlab/credscore/pkg/database"
	"github.com/finlab/credscore/pkg/httputil"
	"github.com/finlab/credscore/pkg/logger"
	"github.com/finlab/credscore/pkg/redis"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the scoring API server",
	Long: `Start the REST API server.

Loads the fitted artifacts once, then serves scoring requests.

Endpoints:
  GET  /health                 - Health check
  POST /api/score              - Score one applicant
  GET  /api/score/history      - Recent assessments
  GET  /api/model/info         - Loaded model shape
  GET  /api/model/importance   - Top features by split gain

Example:
  go run ./cmd/credscore api
  go run ./cmd/credscore api --port 8090`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// 3. Load artifacts and build the pipeline
	arts, err := loadArtifacts(cfg, log)
	if err != nil {
		return err
	}

	// 4. Connect to database (optional)
	var historyRepo contracts.AssessmentRepository
	if cfg.Database.Enabled {
		db, err := database.New(cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()

		historyRepo = history.NewRepository(db.Pool)
		log.Info("Connected to database")
	}

	// 5. Connect to Redis (optional, no-op client when disabled)
	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()

	limiter := redis.NewRateLimiter(redisClient, "credscore")

	// 6. Create bureau client (optional)
	var bureauClient contracts.ScoreProvider
	if cfg.Bureau.Enabled {
		httpClient := httputil.New(cfg, log).
			WithLocalRateLimit(cfg.Bureau.RequestsPerSec).
			WithRateLimiter(limiter, redis.BureauRateLimit)
		bureauClient = bureau.NewClient(httpClient, cfg, log)
	}

	// 7. Create handlers and router
	scoreHandler := handlers.NewScoreHandler(arts.pipeline, bureauClient, historyRepo, log)
	modelHandler := handlers.NewModelHandler(arts.gbdt, arts.schema, log)
	router := api.NewRouter(scoreHandler, modelHandler, limiter, log)

	// 8. Create server
	server := api.New(cfg, log, router)

	// 9. Start background jobs
	sched := scheduler.New(log)
	if err := sched.AddJob(jobs.NewArtifactCheckJob(cfg, log)); err != nil {
		return fmt.Errorf("schedule artifact check: %w", err)
	}
	if historyRepo != nil {
		job := jobs.NewHistoryRetentionJob(historyRepo, cfg.HistoryRetentionDays, log)
		if err := sched.AddJob(job); err != nil {
			return fmt.Errorf("schedule history retention: %w", err)
		}
	}
	sched.Start()
	defer sched.Stop()

	// 10. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
