package mlclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredict_RoundTrip(t *testing.T) {
	var gotPath, gotMethod, gotContentType string
	var gotSnap Snapshot

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotSnap))

		json.NewEncoder(w).Encode(Result{
			PredictedLikes:    142.7,
			PredictedShares:   18,
			PredictedComments: 11,
			EngagementLevel:   "medium",
			FeatureImportance: map[string]float64{"text_length": 0.4, "hour_of_day": 0.25},
			Confidence:        0.87,
			RecommendedTime:   "18:00",
		})
	}))
	defer srv.Close()

	client := New(srv.URL + "/") // trailing slash must not double up
	result, err := client.Predict(context.Background(), Snapshot{
		Content:        "big launch day",
		MediaType:      "video",
		Hashtags:       []string{"launch"},
		FollowerCount:  1200,
		FollowingCount: 300,
		AccountAgeDays: 730,
	})
	require.NoError(t, err)

	assert.Equal(t, "/predict", gotPath)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "big launch day", gotSnap.Content)
	assert.Equal(t, int64(1200), gotSnap.FollowerCount)

	assert.Equal(t, 142.7, result.PredictedLikes)
	assert.Equal(t, "medium", result.EngagementLevel)
	assert.Equal(t, 0.87, result.Confidence)
	assert.Equal(t, "18:00", result.RecommendedTime)
	assert.Equal(t, 0.4, result.FeatureImportance["text_length"])
}

func TestPredict_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(srv.URL)
	result, err := client.Predict(context.Background(), Snapshot{Content: "x", MediaType: "text"})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "model not loaded")
}

func TestPredict_BadJSONResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := New(srv.URL)
	_, err := client.Predict(context.Background(), Snapshot{Content: "x", MediaType: "text"})
	assert.Error(t, err)
}

func TestPredict_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Result{})
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := New(srv.URL)
	_, err := client.Predict(ctx, Snapshot{Content: "x", MediaType: "text"})
	assert.Error(t, err)
}
