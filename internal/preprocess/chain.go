package preprocess

import (
	"github.com/finlab/credscore/internal/contracts"
	"github.com/finlab/credscore/pkg/logger"
)

// Chain runs impute then scale over an aligned vector. Either transform may
// be absent or reject the input shape; the chain then falls back to the best
// vector it has and flags the result as degraded instead of aborting the
// request. Availability over correctness, surfaced to the caller.
type Chain struct {
	imputer contracts.Transformer
	scaler  contracts.Transformer
	logger  *logger.Logger
}

// Result is a preprocessed vector plus its degradation status.
type Result struct {
	Vector         *contracts.FeatureVector
	Degraded       bool
	DegradedReason string
}

// NewChain creates a preprocessing chain. Pass nil for an unavailable
// imputer or scaler; the chain degrades instead of failing.
func NewChain(imputer, scaler contracts.Transformer, log *logger.Logger) *Chain {
	return &Chain{
		imputer: imputer,
		scaler:  scaler,
		logger:  log,
	}
}

// Apply preprocesses an aligned vector. The input is never mutated.
func (c *Chain) Apply(vec *contracts.FeatureVector) *Result {
	result := &Result{Vector: vec.Clone()}

	// Step 1: impute remaining missing values with fit-time medians.
	if c.imputer == nil {
		c.logger.Warn("No imputer artifact loaded, passing vector through unimputed")
		result.markDegraded("no imputer artifact")
	} else {
		imputed, err := c.imputer.Transform(result.Vector.Values)
		if err != nil {
			c.logger.WithError(err).Error("Imputer rejected input, continuing unimputed")
			result.markDegraded("imputer rejected input: " + err.Error())
		} else {
			result.Vector.Values = imputed
		}
	}

	// Step 2: robust scale. A column-count mismatch with the fit-time
	// schema falls back to the imputed-but-unscaled vector.
	if c.scaler == nil {
		c.logger.Warn("No scaler artifact loaded, passing vector through unscaled")
		result.markDegraded("no scaler artifact")
	} else {
		scaled, err := c.scaler.Transform(result.Vector.Values)
		if err != nil {
			c.logger.WithError(err).Error("Scaler rejected input, continuing unscaled")
			result.markDegraded("scaler rejected input: " + err.Error())
		} else {
			result.Vector.Values = scaled
		}
	}

	return result
}

func (r *Result) markDegraded(reason string) {
	r.Degraded = true
	if r.DegradedReason == "" {
		r.DegradedReason = reason
	} else {
		r.DegradedReason += "; " + reason
	}
}
