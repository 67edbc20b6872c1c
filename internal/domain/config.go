package domain

// Config is the validated server configuration.
type Config struct {
	Server                 ServerConfig        `json:"server"`
	Transport              TransportConfig     `json:"transport"`
	Observability          ObservabilityConfig `json:"observability"`
	Log                    LogConfig           `json:"log"`
	Plugins                PluginsConfig       `json:"plugins"`
	ShutdownTimeoutSeconds int                 `json:"shutdownTimeoutSeconds"`
}

type ServerConfig struct {
	Name         string `json:"name"`
	Title        string `json:"title"`
	Version      string `json:"version"`
	Instructions string `json:"instructions"`
}

type TransportConfig struct {
	Kind string              `json:"kind"`
	HTTP HTTPTransportConfig `json:"http"`
}

type HTTPTransportConfig struct {
	ListenAddress         string         `json:"listenAddress"`
	Path                  string         `json:"path"`
	Stateless             bool           `json:"stateless"`
	JSONResponse          bool           `json:"jsonResponse"`
	SessionTimeoutSeconds int            `json:"sessionTimeoutSeconds"`
	Auth                  HTTPAuthConfig `json:"auth"`
}

// HTTPAuthConfig enables HS256 bearer tokens when SecretEnv is set. Secret
// holds the resolved key and is never serialized.
type HTTPAuthConfig struct {
	SecretEnv string   `json:"secretEnv"`
	Issuer    string   `json:"issuer"`
	Audience  string   `json:"audience"`
	Scopes    []string `json:"scopes"`
	Secret    []byte   `json:"-"`
}

func (c HTTPAuthConfig) Enabled() bool {
	return c.SecretEnv != ""
}

type ObservabilityConfig struct {
	Enabled       bool   `json:"enabled"`
	ListenAddress string `json:"listenAddress"`
	Metrics       bool   `json:"metrics"`
	Healthz       bool   `json:"healthz"`
}

type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

type PluginsConfig struct {
	Disabled []string `json:"disabled"`
}
