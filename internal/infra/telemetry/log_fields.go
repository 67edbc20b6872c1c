package telemetry

import (
	"time"

	"go.uber.org/zap"
)

const (
	FieldEvent      = "event"
	FieldKind       = "kind"
	FieldPlugin     = "plugin"
	FieldStatus     = "status"
	FieldReason     = "reason"
	FieldTransport  = "transport"
	FieldDurationMs = "duration_ms"
	FieldRequestID  = "request_id"
	FieldTraceID    = "trace_id"
	FieldSpanID     = "span_id"
)

const (
	EventRegister      = "register"
	EventRegisterFail  = "register_failure"
	EventInvoke        = "invoke"
	EventInvokePanic   = "invoke_panic"
	EventServeStart    = "serve_start"
	EventServeStop     = "serve_stop"
	EventConfigReload  = "config_reload"
	EventConfigInvalid = "config_invalid"
)

func EventField(event string) zap.Field {
	return zap.String(FieldEvent, event)
}

func KindField(kind string) zap.Field {
	return zap.String(FieldKind, kind)
}

func PluginField(name string) zap.Field {
	return zap.String(FieldPlugin, name)
}

func StatusField(status string) zap.Field {
	return zap.String(FieldStatus, status)
}

func ReasonField(reason string) zap.Field {
	return zap.String(FieldReason, reason)
}

func TransportField(transport string) zap.Field {
	return zap.String(FieldTransport, transport)
}

func DurationField(duration time.Duration) zap.Field {
	return zap.Float64(FieldDurationMs, float64(duration.Microseconds())/1000)
}

func RequestIDField(value string) zap.Field {
	return zap.String(FieldRequestID, value)
}

func TraceIDField(value string) zap.Field {
	return zap.String(FieldTraceID, value)
}

func SpanIDField(value string) zap.Field {
	return zap.String(FieldSpanID, value)
}
