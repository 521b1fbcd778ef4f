package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRemoval(t *testing.T) {
	m := New()

	m.ObserveRemoval("food_item", false, 2, 1)
	m.ObserveRemoval("meal", true, 0, 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.removals.WithLabelValues("food_item", "deleted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.removals.WithLabelValues("meal", "hidden")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.logs.WithLabelValues("updated")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.logs.WithLabelValues("deleted")))
}

func TestObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest(http.MethodGet, "/api/meals", http.StatusOK, 10*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/meals", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("GET", "unmatched", "404")))
}

func TestHandlerExposesRegistry(t *testing.T) {
	m := New()
	m.ObserveThrottled()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "nutrilyzer_rate_limited_requests_total 1"))
}
