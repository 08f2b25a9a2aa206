// Package metrics expone las métricas Prometheus del portal en un registro propio.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/portal-beneficiarios/internal/application/analytics"
	"github.com/jhoicas/portal-beneficiarios/internal/application/dto"
)

var _ analytics.Recorder = (*Metrics)(nil)

var healthLevels = []string{dto.HealthExcellent, dto.HealthGood, dto.HealthWarning, dto.HealthCritical}

// Metrics agrupa los colectores del portal.
type Metrics struct {
	registry      *prometheus.Registry
	statsRequests *prometheus.CounterVec
	systemHealth  *prometheus.GaugeVec
	flowEvents    *prometheus.CounterVec
}

// New crea el registro con los colectores de proceso y Go más los del portal.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		statsRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_stats_requests_total",
			Help: "Llamadas al agregador de estadísticas por resultado.",
		}, []string{"outcome"}),
		systemHealth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "portal_system_health",
			Help: "Último estado de salud calculado (1 en el nivel vigente).",
		}, []string{"level"}),
		flowEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "portal_login_flow_events_total",
			Help: "Eventos de flujos de login publicados por tipo.",
		}, []string{"type"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.statsRequests,
		m.systemHealth,
		m.flowEvents,
	)
	return m
}

// ObserveStats cuenta la llamada y, si hay salud calculada, la marca como vigente.
func (m *Metrics) ObserveStats(outcome, health string) {
	m.statsRequests.WithLabelValues(outcome).Inc()
	if health == "" {
		return
	}
	for _, lvl := range healthLevels {
		v := 0.0
		if lvl == health {
			v = 1
		}
		m.systemHealth.WithLabelValues(lvl).Set(v)
	}
}

// ObserveFlowEvent cuenta un evento del bus de autenticación.
func (m *Metrics) ObserveFlowEvent(eventType string) {
	m.flowEvents.WithLabelValues(eventType).Inc()
}

// Registry devuelve el registro (tests y colectores extra).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler sirve el registro en formato de exposición de Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
