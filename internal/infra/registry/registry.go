// Package registry owns the set of published plugins. Registration runs
// single-threaded during startup; after Seal the registry is read-only and
// safe for concurrent readers without locks.
package registry

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"calcmcp/internal/domain"
	"calcmcp/internal/infra/hashutil"
	"calcmcp/internal/infra/telemetry"
	"calcmcp/internal/schema"
)

type Options struct {
	Logger  *zap.Logger
	Metrics domain.Metrics
}

// PublishFunc synthesizes the endpoint for a plugin and publishes it. The
// returned definition feeds the registry ETag.
type PublishFunc[T domain.Plugin] func(plugin T) (definition any, err error)

type Registry[T domain.Plugin] struct {
	kind     domain.PluginKind
	schemaOf func(T) schema.Schema
	publish  PublishFunc[T]
	logger   *zap.Logger
	metrics  domain.Metrics

	plugins     map[string]T
	order       []string
	definitions []any
	sealed      bool
}

func New[T domain.Plugin](kind domain.PluginKind, schemaOf func(T) schema.Schema, publish PublishFunc[T], opts Options) *Registry[T] {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = telemetry.NewNoopMetrics()
	}
	return &Registry[T]{
		kind:     kind,
		schemaOf: schemaOf,
		publish:  publish,
		logger:   logger.Named("registry." + string(kind)),
		metrics:  metrics,
		plugins:  make(map[string]T),
	}
}

// Register instantiates the plugin, checks its identity and schema, then
// synthesizes and publishes its endpoint. A failed registration leaves the
// registry unchanged.
func (r *Registry[T]) Register(ctor func() T) error {
	return r.register(ctor, nil)
}

// register builds the plugin once and drops it without error when skip
// selects its name.
func (r *Registry[T]) register(ctor func() T, skip func(name string) bool) error {
	const op = "registry.Register"

	if r.sealed {
		return domain.E(domain.CodeFailedPrecond, op, "", domain.ErrRegistrySealed)
	}
	if ctor == nil {
		return domain.E(domain.CodeInvalidArgument, op, fmt.Sprintf("%s constructor is nil", r.kind), nil)
	}

	plugin := ctor()
	if any(plugin) == nil {
		return domain.E(domain.CodeInvalidArgument, op, fmt.Sprintf("%s constructor returned nil", r.kind), nil)
	}
	name := plugin.Name()
	if skip != nil && skip(name) {
		r.logger.Debug("skipped", telemetry.KindField(string(r.kind)), telemetry.PluginField(name))
		return nil
	}
	if name == "" {
		return r.fail(name, domain.E(domain.CodeInvalidArgument, op, fmt.Sprintf("%s name is required", r.kind), nil))
	}
	if _, exists := r.plugins[name]; exists {
		return r.fail(name, domain.E(domain.CodeFailedPrecond, op,
			fmt.Sprintf("%s %q is already registered", r.kind, name), domain.ErrDuplicateName))
	}
	if err := r.schemaOf(plugin).Check(); err != nil {
		return r.fail(name, domain.E(domain.CodeInvalidArgument, op,
			fmt.Sprintf("%s %q: %v", r.kind, name, err), fmt.Errorf("%w: %w", domain.ErrInvalidSchema, err)))
	}

	def, err := r.publish(plugin)
	if err != nil {
		return r.fail(name, domain.Wrap(domain.CodeInternal, op, err))
	}

	r.plugins[name] = plugin
	r.order = append(r.order, name)
	r.definitions = append(r.definitions, def)
	r.metrics.SetRegistered(r.kind, len(r.order))
	r.logger.Debug("registered",
		telemetry.EventField(telemetry.EventRegister),
		telemetry.KindField(string(r.kind)),
		telemetry.PluginField(name),
	)
	return nil
}

func (r *Registry[T]) fail(name string, err error) error {
	r.logger.Warn("registration failed",
		telemetry.EventField(telemetry.EventRegisterFail),
		telemetry.KindField(string(r.kind)),
		telemetry.PluginField(name),
		zap.Error(err),
	)
	return err
}

func (r *Registry[T]) Get(name string) (T, bool) {
	plugin, ok := r.plugins[name]
	return plugin, ok
}

// Names returns plugin names in registration order.
func (r *Registry[T]) Names() []string {
	return slices.Clone(r.order)
}

func (r *Registry[T]) Len() int {
	return len(r.order)
}

// Seal ends the registration phase.
func (r *Registry[T]) Seal() {
	r.sealed = true
}

func (r *Registry[T]) Sealed() bool {
	return r.sealed
}

// ETag hashes the published definitions in registration order.
func (r *Registry[T]) ETag() string {
	return hashutil.ETag(r.logger, string(r.kind), r.definitions)
}
