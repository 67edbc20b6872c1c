package app

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	versioncollector "github.com/prometheus/client_golang/prometheus/collectors/version"

	"calcmcp/internal/domain"
	"calcmcp/internal/infra/config"
	"calcmcp/internal/infra/telemetry"
)

const programName = "calcmcp"

func NewConfigLoader(sc ServeConfig) *config.Loader {
	return config.NewLoader(sc.BootstrapLogger, sc.Flags)
}

func NewConfig(ctx context.Context, loader *config.Loader, sc ServeConfig) (domain.Config, error) {
	return loader.Load(ctx, sc.ConfigPath)
}

func NewMetricsRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(versioncollector.NewCollector(programName))
	return registry
}

func NewMetrics(registry *prometheus.Registry) domain.Metrics {
	return telemetry.NewPrometheusMetrics(registry)
}

// NewOfflineMetrics serves one-shot CLI commands that never expose metrics.
func NewOfflineMetrics() domain.Metrics {
	return telemetry.NewNoopMetrics()
}
