package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"1", "2", "3"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/users/"+id, nil))
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/api/users/{id}", "404")))
}

func TestPipelineRun(t *testing.T) {
	m := New()

	m.PipelineRun(OutcomePublished)
	m.PipelineRun(OutcomePublished)
	m.PipelineRun(OutcomePositive)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.pipelineRuns.WithLabelValues(OutcomePublished)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.pipelineRuns.WithLabelValues(OutcomePositive)))
}

func TestHandler_Exposition(t *testing.T) {
	m := New()
	m.PipelineRun(OutcomeAnalysisFailed)

	ts := httptest.NewServer(m.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `sentiment_pipeline_runs_total{outcome="analysis_failed"} 1`)
}
