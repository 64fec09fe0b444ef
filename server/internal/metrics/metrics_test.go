package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// scrape fetches the exposition from m.Handler and parses it the same way a
// Prometheus server would.
func scrape(t *testing.T, m *Metrics) map[string]*dto.MetricFamily {
	t.Helper()
	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Accept", string(expfmt.NewFormat(expfmt.TypeTextPlain)))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET metrics: %v", err)
	}
	defer resp.Body.Close()
	return parse(t, resp.Body)
}

func parse(t *testing.T, r io.Reader) map[string]*dto.MetricFamily {
	t.Helper()
	var parser expfmt.TextParser
	mfs, err := parser.TextToMetricFamilies(r)
	if err != nil {
		t.Fatalf("parse exposition: %v", err)
	}
	return mfs
}

// value returns the sample of family name whose labels match want.
func value(t *testing.T, mfs map[string]*dto.MetricFamily, name string, want map[string]string) float64 {
	t.Helper()
	mf, ok := mfs[name]
	if !ok {
		t.Fatalf("metric %s: not exposed", name)
	}
	for _, m := range mf.GetMetric() {
		if !labelsMatch(m.GetLabel(), want) {
			continue
		}
		switch {
		case m.Counter != nil:
			return m.Counter.GetValue()
		case m.Gauge != nil:
			return m.Gauge.GetValue()
		case m.Histogram != nil:
			return float64(m.Histogram.GetSampleCount())
		}
	}
	t.Fatalf("metric %s%v: no matching sample", name, want)
	return 0
}

func labelsMatch(pairs []*dto.LabelPair, want map[string]string) bool {
	found := 0
	for _, p := range pairs {
		if v, ok := want[p.GetName()]; ok {
			if v != p.GetValue() {
				return false
			}
			found++
		}
	}
	return found == len(want)
}

func TestSessionsAndRequests(t *testing.T) {
	m := New(func() int { return 3 })
	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()
	m.RequestHandled("putMessage", OutcomeApplied)
	m.RequestHandled("putMessage", OutcomeApplied)
	m.RequestHandled("unknown", OutcomeRejected)
	m.FrameRendered()
	m.RPCHandled("PutMessage", "OK")

	mfs := scrape(t, m)

	checks := []struct {
		name   string
		labels map[string]string
		want   float64
	}{
		{"onelinechat_sessions_total", nil, 2},
		{"onelinechat_sessions_active", nil, 1},
		{"onelinechat_requests_total", map[string]string{"method": "putMessage", "outcome": "applied"}, 2},
		{"onelinechat_requests_total", map[string]string{"method": "unknown", "outcome": "rejected"}, 1},
		{"onelinechat_dashboard_frames_total", nil, 1},
		{"onelinechat_rpc_calls_total", map[string]string{"method": "PutMessage", "code": "OK"}, 1},
		{"onelinechat_board_authors", nil, 3},
	}
	for _, c := range checks {
		if got := value(t, mfs, c.name, c.labels); got != c.want {
			t.Errorf("%s%v: got %v, want %v", c.name, c.labels, got, c.want)
		}
	}
}

func TestNilMetrics_IsSafe(t *testing.T) {
	var m *Metrics
	m.SessionOpened()
	m.SessionClosed()
	m.RequestHandled("putMessage", OutcomeApplied)
	m.RPCHandled("PutMessage", "OK")
	m.FrameRendered()

	called := false
	h := m.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !called {
		t.Error("Middleware on nil Metrics did not call next handler")
	}
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	m := New(nil)
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/v1/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, id := range []string{"1", "2"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/items/"+id, nil))
	}

	mfs := scrape(t, m)
	labels := map[string]string{"method": "GET", "path": "/api/v1/items/{id}", "status": "418"}
	if got := value(t, mfs, "onelinechat_http_requests_total", labels); got != 2 {
		t.Errorf("http_requests_total: got %v, want 2", got)
	}
}
