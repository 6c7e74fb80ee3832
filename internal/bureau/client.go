// Package bureau fetches external credit-bureau scores. The form lets an
// applicant's three normalized scores be entered directly; when they are
// omitted and a bureau reference is supplied, this client fills them in.
package bureau

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/finlab/credscore/pkg/config"
	"github.com/finlab/credscore/pkg/httputil"
	"github.com/finlab/credscore/pkg/logger"
)

// Client calls the external bureau scoring API.
type Client struct {
	http    *httputil.Client
	baseURL string
	apiKey  string
	logger  *logger.Logger
}

// scoreResponse is the bureau API payload: three normalized scores in [0,1].
type scoreResponse struct {
	Ref    string    `json:"ref"`
	Scores []float64 `json:"scores"`
}

// NewClient creates a new bureau client.
func NewClient(httpClient *httputil.Client, cfg *config.Config, log *logger.Logger) *Client {
	return &Client{
		http:    httpClient,
		baseURL: cfg.Bureau.BaseURL,
		apiKey:  cfg.Bureau.APIKey,
		logger:  log,
	}
}

// FetchScores returns the three external-source scores for an applicant
// reference, in fixed source order.
func (c *Client) FetchScores(ctx context.Context, applicantRef string) ([]float64, error) {
	if applicantRef == "" {
		return nil, fmt.Errorf("applicant reference is required")
	}

	endpoint := fmt.Sprintf("%s/v1/scores?ref=%s&key=%s",
		c.baseURL, url.QueryEscape(applicantRef), url.QueryEscape(c.apiKey))

	resp, err := c.http.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("bureau request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("bureau returned status %d", resp.StatusCode)
	}

	var payload scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode bureau response: %w", err)
	}

	if len(payload.Scores) != 3 {
		return nil, fmt.Errorf("bureau returned %d scores, expected 3", len(payload.Scores))
	}
	for i, s := range payload.Scores {
		if s < 0 || s > 1 {
			return nil, fmt.Errorf("bureau score %d out of range: %f", i+1, s)
		}
	}

	c.logger.WithFields(map[string]interface{}{
		"ref": applicantRef,
	}).Debug("Fetched bureau scores")

	return payload.Scores, nil
}
