package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
)

func TestServer_HealthAndMetrics(t *testing.T) {
	srv := NewServer("127.0.0.1:0", zerolog.Nop())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Errorf("/health = %d %q, want 200 OK", rec.Code, rec.Body.String())
	}

	SessionLocks.Inc()
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "brightboard_session_locks_total") {
		t.Errorf("/metrics missing brightboard_session_locks_total")
	}
}

func TestRoundsAnswered_Labels(t *testing.T) {
	before := testutil.ToFloat64(RoundsAnswered.WithLabelValues("color-match", "correct"))
	RoundsAnswered.WithLabelValues("color-match", "correct").Inc()
	after := testutil.ToFloat64(RoundsAnswered.WithLabelValues("color-match", "correct"))
	if after-before != 1 {
		t.Errorf("counter delta = %v, want 1", after-before)
	}
}
