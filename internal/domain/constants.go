package domain

const (
	DefaultServerName                 = "calculator-mcp"
	DefaultServerTitle                = "Calculator MCP"
	DefaultServerVersion              = "v0.1.0"
	DefaultTransport                  = TransportStdio
	DefaultHTTPListenAddress          = "127.0.0.1:8080"
	DefaultHTTPPath                   = "/mcp"
	DefaultObservabilityListenAddress = "127.0.0.1:9090"
	DefaultLogLevel                   = "info"
	DefaultLogFormat                  = "json"
	DefaultConfigReloadDebounceMillis = 200
	DefaultShutdownTimeoutSeconds     = 5
	DefaultHTTPSessionTimeoutSeconds  = 0
	DefaultEnvPrefix                  = "CALCMCP"
)

const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// DefaultInstructions is sent to hosts during initialization.
const DefaultInstructions = "Calculator tools for arithmetic, statistics, combinatorics, number theory, " +
	"finance and trigonometry. Every tool returns a JSON envelope with success, result, " +
	"error_message, operation_name and metadata."
