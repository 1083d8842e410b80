package form

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/BerylCAtieno/scheme-recommender/internal/logger"
	"github.com/BerylCAtieno/scheme-recommender/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_FetchSchemes_PostsProfile(t *testing.T) {
	var gotMethod, gotPath, gotType string
	var gotBody models.Profile

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath, gotType = r.Method, r.URL.Path, r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"query":"q","result":"**Scheme Name:** PMAY"}`))
	}))
	defer srv.Close()

	p := models.Profile{Objective: "house"}
	p.Demographics.Location = "Assam"

	c := NewClient(srv.URL, 0, logger.NewTestLogger(t))
	resp := c.FetchSchemes(context.Background(), p)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, SchemesPath, gotPath)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, p, gotBody)
	assert.Equal(t, "**Scheme Name:** PMAY", resp.Result)
	assert.False(t, resp.Failed())
}

func TestClient_FetchSchemes_Responses(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected models.SchemeResponse
	}{
		{
			name:     "application error is passed through",
			status:   http.StatusOK,
			body:     `{"error":"model quota exceeded"}`,
			expected: models.SchemeResponse{Error: "model quota exceeded"},
		},
		{
			name:     "server error",
			status:   http.StatusInternalServerError,
			body:     `{"error":"boom"}`,
			expected: models.FetchFailed(),
		},
		{
			name:     "validation error",
			status:   http.StatusUnprocessableEntity,
			body:     `{"detail":[]}`,
			expected: models.FetchFailed(),
		},
		{
			name:     "malformed json",
			status:   http.StatusOK,
			body:     `<html>gateway</html>`,
			expected: models.FetchFailed(),
		},
		{
			name:     "result of the wrong type",
			status:   http.StatusOK,
			body:     `{"result":{"text":"x"}}`,
			expected: models.FetchFailed(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, 0, logger.NewNoOpLogger())
			assert.Equal(t, tt.expected, c.FetchSchemes(context.Background(), models.Profile{}))
		})
	}
}

func TestClient_FetchSchemes_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, 0, logger.NewNoOpLogger())
	resp := c.FetchSchemes(context.Background(), models.Profile{})

	assert.Equal(t, models.FetchFailedMessage, resp.Error)
}

func TestClient_FetchSchemes_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(srv.URL, 50*time.Millisecond, logger.NewNoOpLogger())
	resp := c.FetchSchemes(context.Background(), models.Profile{})

	require.True(t, resp.Failed())
	assert.Equal(t, models.FetchFailedMessage, resp.Error)
}
