package handlers

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/finlab/credscore/internal/contracts"
	"github.com/finlab/credscore/internal/model"
	"github.com/finlab/credscore/pkg/logger"
)

// ModelHandler exposes diagnostics about the loaded model and schema.
type ModelHandler struct {
	gbdt   *model.GBDT
	schema *contracts.FeatureSchema
	logger *logger.Logger
}

// NewModelHandler creates a new model handler
func NewModelHandler(gbdt *model.GBDT, schema *contracts.FeatureSchema, log *logger.Logger) *ModelHandler {
	return &ModelHandler{
		gbdt:   gbdt,
		schema: schema,
		logger: log,
	}
}

// Info returns the loaded model's shape
// GET /api/model/info
func (h *ModelHandler) Info(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"num_features": h.gbdt.NumFeatures(),
		"num_trees":    h.gbdt.NumTrees(),
		"schema_size":  h.schema.Len(),
	})
}

// featureGain pairs a schema feature name with its total split gain.
type featureGain struct {
	Feature string  `json:"feature"`
	Gain    float64 `json:"gain"`
}

// Importance returns the top features by total split gain, named through the
// schema (positional binding, the model's own names are not authoritative)
// GET /api/model/importance?top=N
func (h *ModelHandler) Importance(w http.ResponseWriter, r *http.Request) {
	top := 20
	if raw := r.URL.Query().Get("top"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "Invalid top (must be a positive integer)")
			return
		}
		top = n
	}

	gains := h.gbdt.Importance()
	names := h.schema.Names()

	ranked := make([]featureGain, 0, len(gains))
	for i, gain := range gains {
		name := "#" + strconv.Itoa(i)
		if i < len(names) {
			name = names[i]
		}
		ranked = append(ranked, featureGain{Feature: name, Gain: gain})
	}

	sort.Slice(ranked, func(i, j int) bool { return ranked[i].Gain > ranked[j].Gain })
	if top < len(ranked) {
		ranked = ranked[:top]
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":    len(ranked),
		"features": ranked,
	})
}
