//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
)

var ConfigSet = wire.NewSet(
	NewConfigLoader,
	NewConfig,
)

var CoreInfraSet = wire.NewSet(
	ConfigSet,
	NewLogging,
	NewLogger,
)

var AppSet = wire.NewSet(
	CoreInfraSet,
	NewMetricsRegistry,
	NewMetrics,
	NewServer,
	wire.Struct(new(ApplicationOptions), "*"),
	NewApplication,
)

var OfflineSet = wire.NewSet(
	CoreInfraSet,
	NewOfflineMetrics,
	NewServer,
)
