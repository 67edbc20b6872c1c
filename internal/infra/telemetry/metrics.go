package telemetry

import "calcmcp/internal/domain"

type NoopMetrics struct{}

func NewNoopMetrics() *NoopMetrics {
	return &NoopMetrics{}
}

func (n *NoopMetrics) ObserveInvocation(_ domain.InvocationMetric) {}

func (n *NoopMetrics) SetRegistered(_ domain.PluginKind, _ int) {}

var _ domain.Metrics = (*NoopMetrics)(nil)
