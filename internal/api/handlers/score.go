// Package handlers implements the HTTP API handlers.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/finlab/credscore/internal/contracts"
	"github.com/finlab/credscore/internal/scoring"
	"github.com/finlab/credscore/pkg/logger"
)

// ScoreHandler handles scoring API endpoints
// ⭐ SSOT: scoring API handlers live only on this struct
type ScoreHandler struct {
	pipeline *scoring.Pipeline
	bureau   contracts.ScoreProvider        // nil when the bureau is disabled
	history  contracts.AssessmentRepository // nil when the database is disabled
	logger   *logger.Logger
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(
	pipeline *scoring.Pipeline,
	bureau contracts.ScoreProvider,
	history contracts.AssessmentRepository,
	log *logger.Logger,
) *ScoreHandler {
	return &ScoreHandler{
		pipeline: pipeline,
		bureau:   bureau,
		history:  history,
		logger:   log,
	}
}

// ScoreRequest is the scoring request body: the applicant form fields plus
// an optional bureau reference. When all three ext_source fields are absent
// and a bureau_ref is given, the bureau client fills the scores in.
type ScoreRequest struct {
	contracts.RawApplicant
	BureauRef string `json:"bureau_ref,omitempty"`
}

// ScoreResponse is the scoring response body.
type ScoreResponse struct {
	Assessment *contracts.RiskAssessment `json:"assessment"`
	HistoryID  int64                     `json:"history_id,omitempty"`
}

// Score runs one applicant through the scoring pipeline
// POST /api/score
func (h *ScoreHandler) Score(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msg := validateRequest(&req); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	// Fill bureau scores when the form left them blank
	if req.BureauRef != "" && h.bureau != nil && extSourcesBlank(&req.RawApplicant) {
		scores, err := h.bureau.FetchScores(ctx, req.BureauRef)
		if err != nil {
			h.logger.WithError(err).Warn("Bureau fetch failed, scoring without ext sources")
		} else {
			req.ExtSource1, req.ExtSource2, req.ExtSource3 = scores[0], scores[1], scores[2]
		}
	}

	assessment, err := h.pipeline.Score(ctx, &req.RawApplicant)
	if err != nil {
		h.logger.WithError(err).Error("Scoring failed")
		respondError(w, http.StatusInternalServerError, "Scoring failed")
		return
	}

	resp := ScoreResponse{Assessment: assessment}

	// History is best-effort; a storage failure never fails the request
	if h.history != nil {
		id, err := h.history.Save(ctx, &contracts.AssessmentRecord{
			Applicant:  req.RawApplicant,
			Assessment: *assessment,
		})
		if err != nil {
			h.logger.WithError(err).Warn("Failed to persist assessment")
		} else {
			resp.HistoryID = id
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

// History returns recent assessments, newest first
// GET /api/score/history?limit=N
func (h *ScoreHandler) History(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		respondError(w, http.StatusNotImplemented, "History storage is disabled")
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 500 {
			respondError(w, http.StatusBadRequest, "Invalid limit (1-500)")
			return
		}
		limit = n
	}

	records, err := h.history.List(r.Context(), limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list assessments")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve history")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":   len(records),
		"records": records,
	})
}

// validateRequest checks the numeric form ranges. Categorical fields need no
// check: unknown labels simply set none of their group's flags.
func validateRequest(req *ScoreRequest) string {
	switch {
	case req.Income < 0:
		return "income must not be negative"
	case req.CreditAmount <= 0:
		return "credit_amount must be positive"
	case req.Annuity < 0:
		return "annuity must not be negative"
	case req.GoodsPrice < 0:
		return "goods_price must not be negative"
	case req.AgeYears < 18 || req.AgeYears > 100:
		return "age_years must be between 18 and 100"
	case req.EmploymentYears < 0 || req.EmploymentYears > req.AgeYears:
		return "employment_years must be between 0 and age_years"
	}
	for i, s := range req.ExtSources() {
		if s < 0 || s > 1 {
			return "ext_source_" + strconv.Itoa(i+1) + " must be in [0,1]"
		}
	}
	return ""
}

func extSourcesBlank(a *contracts.RawApplicant) bool {
	return a.ExtSource1 == 0 && a.ExtSource2 == 0 && a.ExtSource3 == 0
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
