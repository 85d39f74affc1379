package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Sessions(t *testing.T) {
	m := New()
	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionsActive))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.SessionsTotal))
}

func TestMetrics_Events(t *testing.T) {
	m := New()
	m.EventHandled("pointermove", nil)
	m.EventHandled("pointermove", nil)
	m.EventHandled("navigate", errors.New("unknown cta"))
	m.Navigated("primary", "/signup")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Events.WithLabelValues("pointermove")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Events.WithLabelValues("navigate")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventErrors.WithLabelValues("navigate")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.EventErrors.WithLabelValues("pointermove")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Navigations.WithLabelValues("primary")))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.Rendered(2 * time.Millisecond)
	m.SessionOpened()

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "launchpad_live_sessions 1")
	assert.Contains(t, body, "launchpad_render_duration_seconds_count 1")
	assert.Contains(t, body, "go_goroutines")
}

func TestMetrics_Independent(t *testing.T) {
	a, b := New(), New()
	a.SessionOpened()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.SessionsActive))
}
