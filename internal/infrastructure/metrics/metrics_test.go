package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-beneficiarios/internal/application/analytics"
	"github.com/jhoicas/portal-beneficiarios/internal/application/dto"
	"github.com/jhoicas/portal-beneficiarios/internal/infrastructure/metrics"
)

func TestObserveStats(t *testing.T) {
	m := metrics.New()
	m.ObserveStats(analytics.OutcomeOK, dto.HealthWarning)
	m.ObserveStats(analytics.OutcomeOK, dto.HealthGood)
	m.ObserveStats(analytics.OutcomeForbidden, "")

	n, err := testutil.GatherAndCount(m.Registry(), "portal_stats_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "una serie por outcome")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `portal_stats_requests_total{outcome="ok"} 2`)
	assert.Contains(t, string(body), `portal_system_health{level="good"} 1`)
	assert.Contains(t, string(body), `portal_system_health{level="warning"} 0`)
}

func TestObserveFlowEvent(t *testing.T) {
	m := metrics.New()
	m.ObserveFlowEvent("session_established")

	n, err := testutil.GatherAndCount(m.Registry(), "portal_login_flow_events_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
