package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admissions/internal/platform/metrics"
	pkgtestutil "admissions/pkg/testutil"
)

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestRecover(t *testing.T) {
	var logs bytes.Buffer
	m := metrics.New(prometheus.NewRegistry())
	h := Recover(newLogger(&logs), m)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("rule table exploded")
	}))

	rr := pkgtestutil.DoRequest(h, pkgtestutil.NewRequestWithBody(t, http.MethodPost, "/eligibility/check", "{}"))

	pkgtestutil.AssertStatusAndError(t, rr, http.StatusInternalServerError, "internal_error")
	assert.NotContains(t, rr.Body.String(), "exploded")
	assert.Contains(t, logs.String(), "panic recovered")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Panics))
}

func TestRequestLoggerLevels(t *testing.T) {
	cases := []struct {
		status int
		level  string
	}{
		{status: http.StatusOK, level: "level=INFO"},
		{status: http.StatusBadRequest, level: "level=WARN"},
		{status: http.StatusInternalServerError, level: "level=ERROR"},
	}
	for _, tc := range cases {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			var logs bytes.Buffer
			h := RequestLogger(newLogger(&logs))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			}))
			pkgtestutil.DoRequest(h, pkgtestutil.NewRequestWithBody(t, http.MethodGet, "/courses", ""))

			out := logs.String()
			assert.Contains(t, out, tc.level)
			assert.Contains(t, out, "path=/courses")
		})
	}
}

func TestMetricsUsesRoutePattern(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	r := chi.NewRouter()
	r.Use(Metrics(m))
	r.Get("/courses/{name}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	for _, name := range []string{"CSE", "MBBS", "BCOM"} {
		rr := pkgtestutil.DoRequest(r, pkgtestutil.NewRequestWithBody(t, http.MethodGet, "/courses/"+name, ""))
		require.Equal(t, http.StatusNoContent, rr.Code)
	}
	pkgtestutil.DoRequest(r, pkgtestutil.NewRequestWithBody(t, http.MethodGet, "/nowhere", ""))

	assert.Equal(t, 3.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", "/courses/{name}", "204")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("GET", unmatchedRoute, "404")))
}
