package domain

import "time"

// PluginKind labels which family a plugin belongs to.
type PluginKind string

const (
	// PluginKindTool marks operation-backed tools.
	PluginKindTool PluginKind = "tool"
	// PluginKindPrompt marks prompt templates.
	PluginKindPrompt PluginKind = "prompt"
)

// InvocationStatus labels the outcome of one synthesized call.
type InvocationStatus string

const (
	// InvocationStatusSuccess indicates a successful envelope.
	InvocationStatusSuccess InvocationStatus = "success"
	// InvocationStatusError indicates a failure envelope.
	InvocationStatusError InvocationStatus = "error"
)

// InvocationReason describes why an invocation ended with a status.
type InvocationReason string

const (
	// InvocationReasonOK indicates the plugin succeeded.
	InvocationReasonOK InvocationReason = "ok"
	// InvocationReasonInvalidArgument indicates the input failed schema binding.
	InvocationReasonInvalidArgument InvocationReason = "invalid_argument"
	// InvocationReasonDomain indicates the plugin rejected structurally valid input.
	InvocationReasonDomain InvocationReason = "domain"
	// InvocationReasonPanic indicates a recovered defect inside the plugin.
	InvocationReasonPanic InvocationReason = "panic"
)

// InvocationMetric captures metrics for one synthesized call.
type InvocationMetric struct {
	Kind     PluginKind
	Name     string
	Status   InvocationStatus
	Reason   InvocationReason
	Duration time.Duration
}

// Metrics records dispatch observations.
type Metrics interface {
	ObserveInvocation(metric InvocationMetric)
	SetRegistered(kind PluginKind, count int)
}
