package telemetry

const (
	HealthStatusOK       = "ok"
	HealthStatusStarting = "starting"
)

// HealthReport is the /healthz payload.
type HealthReport struct {
	Status  string `json:"status"`
	Tools   int    `json:"tools"`
	Prompts int    `json:"prompts"`
	ETag    string `json:"etag,omitempty"`
}

type HealthSource interface {
	Health() HealthReport
}

// HealthFunc adapts a function to HealthSource.
type HealthFunc func() HealthReport

func (f HealthFunc) Health() HealthReport {
	return f()
}
