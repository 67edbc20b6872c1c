// Package endpoint turns operation and prompt plugins into MCP tool and
// prompt definitions with handlers. The published parameter list is derived
// from each plugin's schema so hosts see one named, typed and defaulted
// property per field.
package endpoint

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"calcmcp/internal/domain"
	"calcmcp/internal/infra/telemetry"
	"calcmcp/internal/schema"
)

type Options struct {
	Logger  *zap.Logger
	Metrics domain.Metrics
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Metrics == nil {
		o.Metrics = telemetry.NewNoopMetrics()
	}
	return o
}

// collect copies required fields unconditionally and optional fields only
// when they carry a value, so absent optionals fall back to their defaults.
// Names outside the schema are dropped.
func collect(s schema.Schema, args map[string]any, blankIsUnset bool) map[string]any {
	out := make(map[string]any, s.Len())
	for _, f := range s.Fields() {
		v, ok := args[f.Name]
		if f.Required {
			if ok {
				out[f.Name] = v
			}
			continue
		}
		if !ok || v == nil {
			continue
		}
		if str, isString := v.(string); blankIsUnset && isString && str == "" {
			continue
		}
		out[f.Name] = v
	}
	return out
}

// outcome is what one guarded invocation reports back for logging and metrics.
type outcome struct {
	success bool
	reason  domain.InvocationReason
	message string
}

func (o outcome) status() domain.InvocationStatus {
	if o.success {
		return domain.InvocationStatusSuccess
	}
	return domain.InvocationStatusError
}

func panicError(name string, r any) error {
	return domain.E(domain.CodeInternal, name, fmt.Sprintf("%s failed: %v", name, r), nil)
}

func observe(ctx context.Context, opts Options, kind domain.PluginKind, name string, start time.Time, out outcome) {
	duration := time.Since(start)
	opts.Metrics.ObserveInvocation(domain.InvocationMetric{
		Kind:     kind,
		Name:     name,
		Status:   out.status(),
		Reason:   out.reason,
		Duration: duration,
	})

	logger := telemetry.LoggerWithRequest(ctx, opts.Logger)
	fields := []zap.Field{
		telemetry.EventField(telemetry.EventInvoke),
		telemetry.KindField(string(kind)),
		telemetry.PluginField(name),
		telemetry.StatusField(string(out.status())),
		telemetry.ReasonField(string(out.reason)),
		telemetry.DurationField(duration),
	}
	switch {
	case out.reason == domain.InvocationReasonPanic:
		logger.Error("plugin panicked", append(fields, zap.String("error", out.message))...)
	case !out.success:
		logger.Debug("invocation failed", append(fields, zap.String("error", out.message))...)
	default:
		logger.Debug("invocation succeeded", fields...)
	}
}
