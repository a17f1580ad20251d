// Package mlclient talks to the external engagement-prediction service. The
// model itself is someone else's problem; this is just the HTTP round trip.
package mlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Snapshot is the post-shaped input the model scores.
type Snapshot struct {
	Content        string   `json:"content"`
	MediaType      string   `json:"media_type"`
	Hashtags       []string `json:"hashtags"`
	FollowerCount  int64    `json:"follower_count"`
	FollowingCount int64    `json:"following_count"`
	AccountAgeDays int64    `json:"account_age_days"`
}

// Result is the service's forecast for one snapshot.
type Result struct {
	PredictedLikes    float64            `json:"predicted_likes"`
	PredictedShares   float64            `json:"predicted_shares"`
	PredictedComments float64            `json:"predicted_comments"`
	EngagementLevel   string             `json:"engagement_level"`
	FeatureImportance map[string]float64 `json:"feature_importance"`
	Confidence        float64            `json:"confidence"`
	RecommendedTime   string             `json:"recommended_time,omitempty"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Predict sends a snapshot to the service's /predict endpoint and decodes the
// forecast. Any non-200 status is an error; the body is included truncated so
// failures are debuggable from the server log.
func (c *Client) Predict(ctx context.Context, snap Snapshot) (*Result, error) {
	body, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ml service request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("ml service returned %d: %s", resp.StatusCode, string(snippet))
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode ml response: %w", err)
	}
	return &result, nil
}
