package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/trendboard/dataset"
	"github.com/spektr-org/trendboard/engine"
	"github.com/spektr-org/trendboard/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// =============================================================================
// Fixtures
// =============================================================================

func testPosts() []dataset.Post {
	return []dataset.Post{
		dataset.NewPost("TikTok", "USA", "Video", "High", "#Challenge", 100, 20, 10, 1000),
		dataset.NewPost("Instagram", "UK", "Reel", "Medium", "#Dance", 50, 10, 5, 500),
		dataset.NewPost("TikTok", "Brazil", "Video", "Low", "#Challenge", 30, 5, 5, 300),
		dataset.NewPost("YouTube", "USA", "Shorts", "High", "#Tech", 200, 50, 30, 5000),
		dataset.NewPost("Instagram", "USA", "Post", "Medium", "#Dance", 80, 20, 10, 800),
		dataset.NewPost("TikTok", "UK", "Video", "High", "#Fitness", 10, 2, 1, 200),
	}
}

func newTestServer(t *testing.T) (*Server, *prometheus.Registry) {
	t.Helper()
	ds, err := dataset.New("inline", testPosts())
	require.NoError(t, err)
	reg := prometheus.NewRegistry()
	s := New(Config{TopHashtags: engine.DefaultTopHashtags}, ds, logging.Discard(), reg)
	return s, reg
}

func do(t *testing.T, s *Server, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodePayload(t *testing.T, w *httptest.ResponseRecorder) engine.DashboardPayload {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var p engine.DashboardPayload
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	return p
}

// =============================================================================
// Health and Options
// =============================================================================

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)
	w := do(t, s, http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, float64(6), body["posts"])
}

func TestOptions(t *testing.T) {
	s, _ := newTestServer(t)
	w := do(t, s, http.MethodGet, "/api/options", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body optionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 6, body.Posts)
	require.Len(t, body.Filters, 4)
	assert.Equal(t, []string{"TikTok", "Instagram", "YouTube"}, body.Filters[0].Values)
	assert.Equal(t, []string{"USA", "UK", "Brazil"}, body.Defaults.Region)
}

// =============================================================================
// Dashboard
// =============================================================================

func TestDashboardDefault(t *testing.T) {
	s, _ := newTestServer(t)
	p := decodePayload(t, do(t, s, http.MethodGet, "/api/dashboard/default", nil))

	assert.False(t, p.Empty)
	assert.Equal(t, engine.KPIRecord{TotalPosts: 6, AvgViews: 1300, TopHashtag: "#Tech", TopPlatform: "TikTok"}, p.KPIs)
	assert.Equal(t, "1,300", p.Cards[1].Value)
	for i, name := range engine.ViewNames() {
		assert.Equal(t, name, p.Views[i].Name)
	}
}

func TestDashboardQueryFilters(t *testing.T) {
	s, _ := newTestServer(t)
	q := url.Values{
		"platform":         {"Instagram"},
		"region":           {"USA", "UK", "Brazil"},
		"content_type":     {"Reel", "Post"},
		"engagement_level": {"Medium"},
	}
	p := decodePayload(t, do(t, s, http.MethodGet, "/api/dashboard?"+q.Encode(), nil))

	assert.Equal(t, engine.KPIRecord{TotalPosts: 2, AvgViews: 650, TopHashtag: "#Dance", TopPlatform: "Instagram"}, p.KPIs)
	regions := p.Views[3]
	assert.Equal(t, []string{"UK", "USA"}, regions.Labels())
}

func TestDashboardMissingColumnIsEmpty(t *testing.T) {
	s, _ := newTestServer(t)
	w := do(t, s, http.MethodGet, "/api/dashboard?platform=TikTok&content_type=Video&engagement_level=High", nil)
	p := decodePayload(t, w)

	assert.True(t, p.Empty)
	assert.Equal(t, engine.KPIRecord{}, p.KPIs)
	for _, v := range p.Views {
		require.NotEmpty(t, v.Series, v.Name)
		for _, series := range v.Series {
			assert.Empty(t, series.Data)
		}
	}
	assert.Contains(t, w.Body.String(), `"data":[]`)
}

func TestDashboardJSON(t *testing.T) {
	s, _ := newTestServer(t)
	body := []byte(`{
		"platform": ["TikTok", "YouTube"],
		"region": ["USA", "UK", "Brazil"],
		"content_type": ["Video", "Shorts"],
		"engagement_level": ["High", "Low"],
		"top_hashtags": 2
	}`)
	p := decodePayload(t, do(t, s, http.MethodPost, "/api/dashboard", body))

	assert.Equal(t, 4, p.KPIs.TotalPosts)
	top := p.Views[0]
	assert.Equal(t, "Top 2 Hashtags by Engagement", top.Title)
	assert.Equal(t, []string{"#Tech", "#Challenge"}, top.Labels())
}

func TestDashboardJSONErrors(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{"platform": [`},
		{"wrong type", `{"platform": "TikTok"}`},
		{"limit out of range", `{"platform": ["TikTok"], "top_hashtags": 500}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, s, http.MethodPost, "/api/dashboard", []byte(tt.body))
			assert.Equal(t, http.StatusBadRequest, w.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
			assert.Equal(t, w.Header().Get(RequestIDHeader), body["request_id"])
		})
	}
}

func TestDashboardQueryRejectsBadLimit(t *testing.T) {
	s, _ := newTestServer(t)
	w := do(t, s, http.MethodGet, "/api/dashboard?top_hashtags=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDashboardConcurrentRequests(t *testing.T) {
	s, _ := newTestServer(t)
	want := do(t, s, http.MethodGet, "/api/dashboard/default", nil).Body.String()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := do(t, s, http.MethodGet, "/api/dashboard/default", nil)
			assert.Equal(t, want, w.Body.String())
		}()
	}
	wg.Wait()
}

// =============================================================================
// Middleware and Metrics
// =============================================================================

func TestRequestID(t *testing.T) {
	s, _ := newTestServer(t)

	w := do(t, s, http.MethodGet, "/healthz", nil)
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)

	const id = "0b5c7c9e-3f57-4a8e-9d2a-2f1f5f0a6b11"
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, id)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get(RequestIDHeader))
}

func TestNotFound(t *testing.T) {
	s, _ := newTestServer(t)
	w := do(t, s, http.MethodGet, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not found")
}

func TestMetrics(t *testing.T) {
	s, reg := newTestServer(t)

	do(t, s, http.MethodGet, "/api/dashboard/default", nil)
	do(t, s, http.MethodGet, "/api/dashboard", nil)

	m := s.Metrics()
	assert.Equal(t, float64(2), testutil.ToFloat64(m.pipelineRuns))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.emptyResults))
	assert.Equal(t, float64(6), testutil.ToFloat64(m.datasetRows))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/api/dashboard", "200")))

	w := do(t, s, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "trendboard_pipeline_runs_total 2"))
	assert.Contains(t, w.Body.String(), "trendboard_http_request_duration_seconds")

	n, err := testutil.GatherAndCount(reg, "trendboard_pipeline_filtered_rows")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
