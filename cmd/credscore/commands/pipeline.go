package commands

import (
	"errors"
	"fmt"

	"github.com/finlab/credscore/internal/contracts"
	"github.com/finlab/credscore/internal/model"
	"github.com/finlab/credscore/internal/preprocess"
	"github.com/finlab/credscore/internal/schema"
	"github.com/finlab/credscore/internal/scoring"
	"github.com/finlab/credscore/pkg/config"
	"github.com/finlab/credscore/pkg/logger"
)

// artifacts holds everything loaded from disk at startup.
type artifacts struct {
	schema   *contracts.FeatureSchema
	gbdt     *model.GBDT
	pipeline *scoring.Pipeline
}

// loadArtifacts loads schema, medians, model, imputer and scaler, and builds
// the scoring pipeline. Schema and model are required; a missing imputer or
// scaler only degrades preprocessing, so the service still starts.
func loadArtifacts(cfg *config.Config, log *logger.Logger) (*artifacts, error) {
	sch, err := schema.Load(cfg.Artifacts.SchemaPath, cfg.Artifacts.MediansPath)
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}

	gbdt, err := model.Load(cfg.Artifacts.ModelPath, sch)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	// Interface vars stay nil unless the load succeeds; a typed nil would
	// defeat the chain's nil checks.
	var imputer, scaler contracts.Transformer

	if imp, err := preprocess.LoadImputer(cfg.Artifacts.ImputerPath); err != nil {
		if !errors.Is(err, contracts.ErrArtifactMissing) {
			return nil, fmt.Errorf("load imputer: %w", err)
		}
		log.WithField("path", cfg.Artifacts.ImputerPath).
			Warn("Imputer artifact missing, preprocessing will be degraded")
	} else {
		imputer = imp
	}

	if sc, err := preprocess.LoadScaler(cfg.Artifacts.ScalerPath); err != nil {
		if !errors.Is(err, contracts.ErrArtifactMissing) {
			return nil, fmt.Errorf("load scaler: %w", err)
		}
		log.WithField("path", cfg.Artifacts.ScalerPath).
			Warn("Scaler artifact missing, preprocessing will be degraded")
	} else {
		scaler = sc
	}

	chain := preprocess.NewChain(imputer, scaler, log)
	pipeline := scoring.NewPipeline(sch, chain, gbdt, log)

	log.WithFields(map[string]interface{}{
		"features": sch.Len(),
		"trees":    gbdt.NumTrees(),
	}).Info("Artifacts loaded")

	return &artifacts{
		schema:   sch,
		gbdt:     gbdt,
		pipeline: pipeline,
	}, nil
}
