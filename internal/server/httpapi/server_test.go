package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/fortuneseal/internal/clock"
	"github.com/dmitrijs2005/fortuneseal/internal/common"
	"github.com/dmitrijs2005/fortuneseal/internal/logging"
	"github.com/dmitrijs2005/fortuneseal/internal/server/metrics"
	"github.com/dmitrijs2005/fortuneseal/internal/server/models"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type fakeAnalytics struct {
	clientID string
	name     string
	data     map[string]any
	err      error

	counts    []models.EventCount
	events    []*models.Event
	gotLimit  int
	reportErr error
}

func (f *fakeAnalytics) Track(_ context.Context, clientID, name string, data map[string]any) error {
	f.clientID, f.name, f.data = clientID, name, data
	return f.err
}

func (f *fakeAnalytics) Summary(context.Context) ([]models.EventCount, error) {
	return f.counts, f.reportErr
}

func (f *fakeAnalytics) Recent(_ context.Context, _ string, limit int) ([]*models.Event, error) {
	f.gotLimit = limit
	return f.events, f.reportErr
}

type fakeCatalogue struct{}

func (fakeCatalogue) TemplateCount(period string) int {
	switch period {
	case "daily":
		return 300
	case "weekly":
		return 180
	}
	return 0
}

var fixedNow = time.Date(2024, 3, 15, 1, 2, 3, 0, time.UTC)

func newTestServer(an *fakeAnalytics, reg *prometheus.Registry, origin string) *Server {
	m, _ := metrics.New(reg)
	return NewServer(Options{AllowedOrigin: origin}, logging.Nop{}, m, reg, clock.NewFixed(fixedNow), an, fakeCatalogue{})
}

func do(t *testing.T, s *Server, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(&fakeAnalytics{}, prometheus.NewRegistry(), "*")

	rec := do(t, s, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "2024-03-15T01:02:03Z", body["timestamp"])
}

func TestTemplates(t *testing.T) {
	s := newTestServer(&fakeAnalytics{}, prometheus.NewRegistry(), "*")

	tests := []struct {
		period string
		want   float64
	}{
		{"daily", 300},
		{"weekly", 180},
		{"hourly", 0},
	}
	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			rec := do(t, s, http.MethodGet, "/api/templates/"+tt.period, "", nil)
			require.Equal(t, http.StatusOK, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, tt.period, body["period"])
			assert.Equal(t, tt.want, body["templateCount"])
		})
	}
}

func TestTrack(t *testing.T) {
	an := &fakeAnalytics{}
	s := newTestServer(an, prometheus.NewRegistry(), "*")

	rec := do(t, s, http.MethodPost, "/api/analytics",
		`{"event":"fortune_revealed","data":{"period":"daily"}}`,
		map[string]string{ClientIDHeader: "install-9"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["success"])

	assert.Equal(t, "install-9", an.clientID)
	assert.Equal(t, "fortune_revealed", an.name)
	assert.Equal(t, "daily", an.data["period"])
}

func TestTrack_BadRequests(t *testing.T) {
	s := newTestServer(&fakeAnalytics{}, prometheus.NewRegistry(), "*")

	for name, body := range map[string]string{
		"missing event": `{"data":{}}`,
		"not json":      `{oops`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/analytics", body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, false, decode(t, rec)["success"])
		})
	}
}

func TestTrack_ServiceErrors(t *testing.T) {
	an := &fakeAnalytics{err: errors.New("db down")}
	s := newTestServer(an, prometheus.NewRegistry(), "*")

	rec := do(t, s, http.MethodPost, "/api/analytics", `{"event":"x"}`, nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "db down")

	an.err = common.ErrorValidation
	rec = do(t, s, http.MethodPost, "/api/analytics", `{"event":"x"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSummaryAndRecent(t *testing.T) {
	an := &fakeAnalytics{
		counts: []models.EventCount{{Name: "fortune_revealed", Count: 4}},
		events: []*models.Event{{ID: 1, Name: "fortune_revealed", ClientID: "c", ReceivedAt: fixedNow}},
	}
	s := newTestServer(an, prometheus.NewRegistry(), "*")

	rec := do(t, s, http.MethodGet, "/api/analytics/summary", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	events := decode(t, rec)["events"].(map[string]any)
	assert.Equal(t, float64(4), events["fortune_revealed"])

	rec = do(t, s, http.MethodGet, "/api/analytics/recent/fortune_revealed?limit=5", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, an.gotLimit)
	list := decode(t, rec)["events"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, "c", list[0].(map[string]any)["clientId"])

	rec = do(t, s, http.MethodGet, "/api/analytics/recent/fortune_revealed?limit=x", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSummary_StorageDisabled(t *testing.T) {
	an := &fakeAnalytics{reportErr: common.ErrorStorageDisabled}
	s := newTestServer(an, prometheus.NewRegistry(), "*")

	rec := do(t, s, http.MethodGet, "/api/analytics/summary", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCORS(t *testing.T) {
	s := newTestServer(&fakeAnalytics{}, prometheus.NewRegistry(), "https://seal.example")

	rec := do(t, s, http.MethodGet, "/api/health", "", map[string]string{"Origin": "https://seal.example"})
	assert.Equal(t, "https://seal.example", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(t, s, http.MethodGet, "/api/health", "", map[string]string{"Origin": "https://evil.example"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := newTestServer(&fakeAnalytics{}, reg, "*")

	_ = do(t, s, http.MethodGet, "/api/templates/daily", "", nil)

	rec := do(t, s, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fortuneseal_requests_total")
	assert.Contains(t, rec.Body.String(), `method="GET /api/templates/:period"`)
}

func TestServe_StopsOnContextCancel(t *testing.T) {
	s := newTestServer(&fakeAnalytics{}, prometheus.NewRegistry(), "*")

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()

	url := "http://" + lis.Addr().String() + "/api/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop after context cancel")
	}
}

func TestRun_BadAddress(t *testing.T) {
	s := NewServer(Options{Address: "127.0.0.1:99999"}, logging.Nop{}, nil, nil, nil, &fakeAnalytics{}, fakeCatalogue{})
	require.Error(t, s.Run(context.Background()))
}
