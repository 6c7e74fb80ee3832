package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finlab/credscore/internal/contracts"
	"github.com/finlab/credscore/internal/preprocess"
	"github.com/finlab/credscore/internal/scoring"
	"github.com/finlab/credscore/pkg/config"
	"github.com/finlab/credscore/pkg/logger"
)

type fixedClassifier struct {
	p        float64
	features int
}

func (f *fixedClassifier) PredictProba([]float64) (float64, error) { return f.p, nil }
func (f *fixedClassifier) NumFeatures() int                        { return f.features }

type fakeBureau struct {
	scores []float64
	calls  int
}

func (f *fakeBureau) FetchScores(ctx context.Context, ref string) ([]float64, error) {
	f.calls++
	return f.scores, nil
}

type memoryRepo struct {
	records []contracts.AssessmentRecord
}

func (m *memoryRepo) Save(ctx context.Context, rec *contracts.AssessmentRecord) (int64, error) {
	rec.ID = int64(len(m.records) + 1)
	rec.CreatedAt = time.Now()
	m.records = append(m.records, *rec)
	return rec.ID, nil
}

func (m *memoryRepo) List(ctx context.Context, limit int) ([]contracts.AssessmentRecord, error) {
	if limit > len(m.records) {
		limit = len(m.records)
	}
	return m.records[:limit], nil
}

func (m *memoryRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func testHandler(t *testing.T, p float64, bureau contracts.ScoreProvider, repo contracts.AssessmentRepository) *ScoreHandler {
	t.Helper()

	log := logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})

	s, err := contracts.NewFeatureSchema([]string{"AMT_CREDIT", "EXT_SOURCE_1"}, nil)
	require.NoError(t, err)

	pipeline := scoring.NewPipeline(
		s,
		preprocess.NewChain(nil, nil, log),
		&fixedClassifier{p: p, features: s.Len()},
		log,
	)

	return NewScoreHandler(pipeline, bureau, repo, log)
}

func postScore(t *testing.T, h *ScoreHandler, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/score", bytes.NewReader(data))
	rec := httptest.NewRecorder()
	h.Score(rec, req)
	return rec
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"income":           150000,
		"credit_amount":    200000,
		"annuity":          10000,
		"goods_price":      180000,
		"age_years":        35,
		"employment_years": 8,
		"ext_source_1":     0.2,
		"ext_source_2":     0.5,
		"ext_source_3":     0.8,
	}
}

func TestScore(t *testing.T) {
	repo := &memoryRepo{}
	h := testHandler(t, 0.15, nil, repo)

	rec := postScore(t, h, validBody())
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ScoreResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.NotNil(t, resp.Assessment)
	assert.Equal(t, 0.15, resp.Assessment.Probability)
	assert.Equal(t, contracts.TierLow, resp.Assessment.Tier)
	assert.Equal(t, 767, resp.Assessment.DisplayScore)
	assert.Equal(t, int64(1), resp.HistoryID)
	assert.Len(t, repo.records, 1)
}

func TestScore_Validation(t *testing.T) {
	h := testHandler(t, 0.15, nil, nil)

	tests := []struct {
		name   string
		mutate func(map[string]interface{})
	}{
		{"zero credit", func(b map[string]interface{}) { b["credit_amount"] = 0 }},
		{"negative income", func(b map[string]interface{}) { b["income"] = -1 }},
		{"underage", func(b map[string]interface{}) { b["age_years"] = 17 }},
		{"employment exceeds age", func(b map[string]interface{}) { b["employment_years"] = 50 }},
		{"ext source out of range", func(b map[string]interface{}) { b["ext_source_2"] = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validBody()
			tt.mutate(body)

			rec := postScore(t, h, body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestScore_InvalidJSON(t *testing.T) {
	h := testHandler(t, 0.15, nil, nil)

	req := httptest.NewRequest("POST", "/api/score", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.Score(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScore_BureauFillsBlankSources(t *testing.T) {
	bureau := &fakeBureau{scores: []float64{0.1, 0.2, 0.3}}
	h := testHandler(t, 0.3, bureau, nil)

	body := validBody()
	body["ext_source_1"] = 0
	body["ext_source_2"] = 0
	body["ext_source_3"] = 0
	body["bureau_ref"] = "A-1001"

	rec := postScore(t, h, body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, bureau.calls)
}

func TestScore_BureauSkippedWhenSourcesProvided(t *testing.T) {
	bureau := &fakeBureau{scores: []float64{0.1, 0.2, 0.3}}
	h := testHandler(t, 0.3, bureau, nil)

	body := validBody()
	body["bureau_ref"] = "A-1001"

	rec := postScore(t, h, body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, bureau.calls, "entered scores win over the bureau")
}

func TestHistory(t *testing.T) {
	repo := &memoryRepo{}
	h := testHandler(t, 0.6, nil, repo)

	postScore(t, h, validBody())
	postScore(t, h, validBody())

	req := httptest.NewRequest("GET", "/api/score/history?limit=1", nil)
	rec := httptest.NewRecorder()
	h.History(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Count   int                          `json:"count"`
		Records []contracts.AssessmentRecord `json:"records"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
}

func TestHistory_Disabled(t *testing.T) {
	h := testHandler(t, 0.6, nil, nil)

	req := httptest.NewRequest("GET", "/api/score/history", nil)
	rec := httptest.NewRecorder()
	h.History(rec, req)

	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestHistory_BadLimit(t *testing.T) {
	h := testHandler(t, 0.6, nil, &memoryRepo{})

	req := httptest.NewRequest("GET", "/api/score/history?limit=0", nil)
	rec := httptest.NewRecorder()
	h.History(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
