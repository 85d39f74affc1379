package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(context.Context) error { return nil }

func TestChecker_AllPass(t *testing.T) {
	hc := NewChecker("1.0.0")
	hc.AddCheck("content", ok, time.Second)
	hc.AddCriticalCheck("sessions", ok, time.Second)

	status := hc.Check(context.Background())
	assert.Equal(t, StatusHealthy, status.Status)
	assert.Len(t, status.Checks, 2)
	assert.Equal(t, "1.0.0", status.Version)
	for name, result := range status.Checks {
		assert.Equal(t, StatusHealthy, result.Status, name)
		assert.Empty(t, result.Error, name)
	}
}

func TestChecker_Statuses(t *testing.T) {
	fail := func(context.Context) error { return errors.New("content file unreadable") }

	tests := []struct {
		name     string
		critical bool
		want     Status
	}{
		{"non-critical failure degrades", false, StatusDegraded},
		{"critical failure is unhealthy", true, StatusUnhealthy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hc := NewChecker("")
			hc.AddCheck("ping", ok, 0)
			if tt.critical {
				hc.AddCriticalCheck("failing", fail, time.Second)
			} else {
				hc.AddCheck("failing", fail, time.Second)
			}

			status := hc.Check(context.Background())
			assert.Equal(t, tt.want, status.Status)
			assert.Equal(t, "content file unreadable", status.Checks["failing"].Error)
			assert.Equal(t, StatusHealthy, status.Checks["ping"].Status)
		})
	}
}

func TestChecker_Timeout(t *testing.T) {
	hc := NewChecker("")
	hc.AddCriticalCheck("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}, 10*time.Millisecond)

	status := hc.Check(context.Background())
	assert.Equal(t, StatusUnhealthy, status.Status)
	assert.Contains(t, status.Checks["slow"].Error, "deadline exceeded")
}

func TestChecker_Routes(t *testing.T) {
	draining := false
	hc := NewChecker("dev")
	hc.AddCriticalCheck("draining", DrainingCheck(func() bool { return draining }), time.Second)
	routes := hc.Routes()

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		routes.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	w := get("/live")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"alive"`)

	assert.Equal(t, http.StatusOK, get("/ready").Code)

	draining = true
	w = get("/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = get("/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var status HealthStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, StatusUnhealthy, status.Status)
	assert.Equal(t, "shutting down", status.Checks["draining"].Error)
}

func TestSessionCapacityCheck(t *testing.T) {
	n := 3
	check := SessionCapacityCheck(func() int { return n }, 4)
	assert.NoError(t, check(context.Background()))

	n = 4
	assert.EqualError(t, check(context.Background()), "live sessions at capacity: 4/4")

	assert.NoError(t, SessionCapacityCheck(func() int { return 1 << 20 }, 0)(context.Background()))
}
