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

func TestRegistry_CountersAndHandler(t *testing.T) {
	r := New()

	r.SignupCompleted("client")
	r.SignupCompleted("client")
	r.BiddingEvent("accepted")
	r.ObserveHTTP(http.MethodGet, "/api/me", 200, 15*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.signups.WithLabelValues("client")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.bidding.WithLabelValues("accepted")))

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `hela9_http_requests_total{method="GET",route="/api/me",status="200"} 1`))
}

func TestRegistry_NilIsNoop(t *testing.T) {
	var r *Registry
	assert.NotPanics(t, func() {
		r.SignupCompleted("stylist")
		r.AccountConfirmed("stylist")
		r.BiddingEvent("broadcast")
		r.RateLimited("login")
		r.ObserveHTTP("GET", "", 404, time.Millisecond)
	})
}
