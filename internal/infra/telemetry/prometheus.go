package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"calcmcp/internal/domain"
)

type PrometheusMetrics struct {
	invocationDuration *prometheus.HistogramVec
	invocationFailures *prometheus.CounterVec
	registeredPlugins  *prometheus.GaugeVec
}

func NewPrometheusMetrics(registerer prometheus.Registerer) *PrometheusMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)

	return &PrometheusMetrics{
		invocationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "calcmcp_invocation_duration_seconds",
				Help:    "Duration of tool and prompt invocations in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"kind", "name", "status"},
		),
		invocationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "calcmcp_invocation_failures_total",
				Help: "Total number of invocations that produced a failure envelope",
			},
			[]string{"kind", "name", "reason"},
		),
		registeredPlugins: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "calcmcp_registered_plugins",
				Help: "Number of published plugins by kind",
			},
			[]string{"kind"},
		),
	}
}

func (p *PrometheusMetrics) ObserveInvocation(metric domain.InvocationMetric) {
	kind := string(metric.Kind)
	p.invocationDuration.WithLabelValues(kind, metric.Name, string(metric.Status)).Observe(metric.Duration.Seconds())
	if metric.Status == domain.InvocationStatusError {
		reason := metric.Reason
		if reason == "" {
			reason = domain.InvocationReasonDomain
		}
		p.invocationFailures.WithLabelValues(kind, metric.Name, string(reason)).Inc()
	}
}

func (p *PrometheusMetrics) SetRegistered(kind domain.PluginKind, count int) {
	p.registeredPlugins.WithLabelValues(string(kind)).Set(float64(count))
}

var _ domain.Metrics = (*PrometheusMetrics)(nil)
