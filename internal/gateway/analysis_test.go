package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/naka-gawa/github-diversity/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{
	"count": 120, "date": "2024-02-01",
	"female": 25, "male": 50, "nonbinary": 0, "unknown": 25,
	"core": {"female": 1, "male": 2, "nonbinary": 0, "unknown": 1},
	"noncore": {"female": 0, "male": 3, "nonbinary": 1, "unknown": 2},
	"blauCore": 0.667, "avgBlauCore": 0.5, "blauNoncore": 0.4, "avgBlauNoncore": 0.4,
	"repos": 3
}`

func TestAnalysisGateway_Analyze(t *testing.T) {
	testCases := []struct {
		name        string
		handlerFunc func(t *testing.T) http.HandlerFunc
		expectedErr error
	}{
		{
			name: "happy path - posts the request as JSON",
			handlerFunc: func(t *testing.T) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t, http.MethodPost, r.Method)
					assert.Equal(t, RepoStatsPath, r.URL.Path)
					assert.Contains(t, r.Header.Get("Content-Type"), "application/json")

					var body map[string]any
					require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
					assert.Equal(t, map[string]any{"repo": "octo/cat", "count": "120"}, body)

					w.Header().Set("Content-Type", "application/json")
					fmt.Fprint(w, samplePayload)
				}
			},
		},
		{
			name: "error case - server error",
			handlerFunc: func(t *testing.T) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusInternalServerError)
					fmt.Fprint(w, `{"detail": "boom"}`)
				}
			},
			expectedErr: domain.ErrNetwork,
		},
		{
			name: "error case - body is not JSON",
			handlerFunc: func(t *testing.T) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					fmt.Fprint(w, `<html>oops</html>`)
				}
			},
			expectedErr: domain.ErrInvalidResponseShape,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(tc.handlerFunc(t))
			defer server.Close()
			gateway := NewAnalysisGateway(server.URL, 5*time.Second, discardLogger())

			payload, err := gateway.Analyze(context.Background(), domain.AnalysisRequest{Repo: "octo/cat", CommitCount: 120})

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.Nil(t, payload)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, payload.Count)
			assert.Equal(t, 120, *payload.Count)
			require.NotNil(t, payload.Repos)
			assert.Equal(t, 3, *payload.Repos)
		})
	}
}

func TestAnalysisGateway_AnalyzeCancelled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	gateway := NewAnalysisGateway(server.URL, time.Minute, discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	_, err := gateway.Analyze(ctx, domain.AnalysisRequest{Repo: "octo/cat", CommitCount: 1})
	assert.ErrorIs(t, err, domain.ErrCancelled)
}

func TestAnalysisGateway_AnalyzeUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	endpoint := server.URL
	server.Close()

	gateway := NewAnalysisGateway(endpoint, time.Second, discardLogger())
	_, err := gateway.Analyze(context.Background(), domain.AnalysisRequest{Repo: "octo/cat", CommitCount: 1})
	assert.ErrorIs(t, err, domain.ErrNetwork)
}
