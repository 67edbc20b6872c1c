// Package config loads the server configuration from YAML, CALCMCP_*
// environment variables and command-line flags, and watches the file for
// log level changes.
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/mod/semver"

	"calcmcp/internal/domain"
)

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"transport": "transport.kind",
	"addr":      "transport.http.listenAddress",
	"log-level": "log.level",
}

type Loader struct {
	logger *zap.Logger
	flags  *pflag.FlagSet
}

func NewLoader(logger *zap.Logger, flags *pflag.FlagSet) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger.Named("config"), flags: flags}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(domain.DefaultEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.name", domain.DefaultServerName)
	v.SetDefault("server.title", domain.DefaultServerTitle)
	v.SetDefault("server.version", domain.DefaultServerVersion)
	v.SetDefault("server.instructions", domain.DefaultInstructions)
	v.SetDefault("transport.kind", domain.DefaultTransport)
	v.SetDefault("transport.http.listenAddress", domain.DefaultHTTPListenAddress)
	v.SetDefault("transport.http.path", domain.DefaultHTTPPath)
	v.SetDefault("transport.http.stateless", false)
	v.SetDefault("transport.http.jsonResponse", false)
	v.SetDefault("transport.http.sessionTimeoutSeconds", domain.DefaultHTTPSessionTimeoutSeconds)
	v.SetDefault("transport.http.auth.secretEnv", "")
	v.SetDefault("transport.http.auth.issuer", "")
	v.SetDefault("transport.http.auth.audience", "")
	v.SetDefault("transport.http.auth.scopes", []string{})
	v.SetDefault("observability.enabled", false)
	v.SetDefault("observability.listenAddress", domain.DefaultObservabilityListenAddress)
	v.SetDefault("observability.metrics", true)
	v.SetDefault("observability.healthz", true)
	v.SetDefault("log.level", domain.DefaultLogLevel)
	v.SetDefault("log.format", domain.DefaultLogFormat)
	v.SetDefault("plugins.disabled", []string{})
	v.SetDefault("shutdownTimeoutSeconds", domain.DefaultShutdownTimeoutSeconds)
}

type rawConfig struct {
	Server                 rawServerConfig        `mapstructure:"server"`
	Transport              rawTransportConfig     `mapstructure:"transport"`
	Observability          rawObservabilityConfig `mapstructure:"observability"`
	Log                    rawLogConfig           `mapstructure:"log"`
	Plugins                rawPluginsConfig       `mapstructure:"plugins"`
	ShutdownTimeoutSeconds int                    `mapstructure:"shutdownTimeoutSeconds"`
}

type rawServerConfig struct {
	Name         string `mapstructure:"name"`
	Title        string `mapstructure:"title"`
	Version      string `mapstructure:"version"`
	Instructions string `mapstructure:"instructions"`
}

type rawTransportConfig struct {
	Kind string                 `mapstructure:"kind"`
	HTTP rawHTTPTransportConfig `mapstructure:"http"`
}

type rawHTTPTransportConfig struct {
	ListenAddress         string            `mapstructure:"listenAddress"`
	Path                  string            `mapstructure:"path"`
	Stateless             bool              `mapstructure:"stateless"`
	JSONResponse          bool              `mapstructure:"jsonResponse"`
	SessionTimeoutSeconds int               `mapstructure:"sessionTimeoutSeconds"`
	Auth                  rawHTTPAuthConfig `mapstructure:"auth"`
}

type rawHTTPAuthConfig struct {
	SecretEnv string   `mapstructure:"secretEnv"`
	Issuer    string   `mapstructure:"issuer"`
	Audience  string   `mapstructure:"audience"`
	Scopes    []string `mapstructure:"scopes"`
}

type rawObservabilityConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	ListenAddress string `mapstructure:"listenAddress"`
	Metrics       bool   `mapstructure:"metrics"`
	Healthz       bool   `mapstructure:"healthz"`
}

type rawLogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type rawPluginsConfig struct {
	Disabled []string `mapstructure:"disabled"`
}

// Load reads path (optional), applies environment and flag overrides, then
// normalizes and validates the result.
func (l *Loader) Load(ctx context.Context, path string) (domain.Config, error) {
	v := newViper()
	if err := l.bindFlags(v); err != nil {
		return domain.Config{}, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return domain.Config{}, fmt.Errorf("read config: %w", err)
		}
		expanded, missing, err := expandEnv(data)
		if err != nil {
			return domain.Config{}, err
		}
		if len(missing) > 0 {
			l.logger.Warn("missing environment variables in config", zap.String("path", path), zap.Strings("missing", missing))
		}
		if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
			return domain.Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	var raw rawConfig
	if err := v.Unmarshal(&raw); err != nil {
		return domain.Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return domain.Config{}, err
	}

	cfg := normalize(raw)
	if errs := validate(&cfg); len(errs) > 0 {
		return domain.Config{}, domain.E(domain.CodeInvalidArgument, "config.Load", strings.Join(errs, "; "), nil)
	}
	return cfg, nil
}

func (l *Loader) bindFlags(v *viper.Viper) error {
	if l.flags == nil {
		return nil
	}
	for name, key := range flagKeys {
		flag := l.flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

func normalize(raw rawConfig) domain.Config {
	version := strings.TrimSpace(raw.Server.Version)
	if version != "" && !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	path := strings.TrimSpace(raw.Transport.HTTP.Path)
	if path == "" {
		path = domain.DefaultHTTPPath
	}
	return domain.Config{
		Server: domain.ServerConfig{
			Name:         strings.TrimSpace(raw.Server.Name),
			Title:        strings.TrimSpace(raw.Server.Title),
			Version:      version,
			Instructions: raw.Server.Instructions,
		},
		Transport: domain.TransportConfig{
			Kind: strings.ToLower(strings.TrimSpace(raw.Transport.Kind)),
			HTTP: domain.HTTPTransportConfig{
				ListenAddress:         strings.TrimSpace(raw.Transport.HTTP.ListenAddress),
				Path:                  path,
				Stateless:             raw.Transport.HTTP.Stateless,
				JSONResponse:          raw.Transport.HTTP.JSONResponse,
				SessionTimeoutSeconds: raw.Transport.HTTP.SessionTimeoutSeconds,
				Auth: domain.HTTPAuthConfig{
					SecretEnv: strings.TrimSpace(raw.Transport.HTTP.Auth.SecretEnv),
					Issuer:    raw.Transport.HTTP.Auth.Issuer,
					Audience:  raw.Transport.HTTP.Auth.Audience,
					Scopes:    trimAll(raw.Transport.HTTP.Auth.Scopes),
				},
			},
		},
		Observability: domain.ObservabilityConfig{
			Enabled:       raw.Observability.Enabled,
			ListenAddress: strings.TrimSpace(raw.Observability.ListenAddress),
			Metrics:       raw.Observability.Metrics,
			Healthz:       raw.Observability.Healthz,
		},
		Log: domain.LogConfig{
			Level:  strings.ToLower(strings.TrimSpace(raw.Log.Level)),
			Format: strings.ToLower(strings.TrimSpace(raw.Log.Format)),
		},
		Plugins:                domain.PluginsConfig{Disabled: trimAll(raw.Plugins.Disabled)},
		ShutdownTimeoutSeconds: raw.ShutdownTimeoutSeconds,
	}
}

// validate reports every problem at once. It resolves the auth secret into
// cfg so the caller never reads the environment again.
func validate(cfg *domain.Config) []string {
	var errs []string
	if cfg.Server.Name == "" {
		errs = append(errs, "server.name is required")
	}
	if !semver.IsValid(cfg.Server.Version) {
		errs = append(errs, fmt.Sprintf("server.version %q is not a valid semantic version", cfg.Server.Version))
	}

	switch cfg.Transport.Kind {
	case domain.TransportStdio:
	case domain.TransportHTTP:
		if cfg.Transport.HTTP.ListenAddress == "" {
			errs = append(errs, "transport.http.listenAddress is required for the http transport")
		}
		if !strings.HasPrefix(cfg.Transport.HTTP.Path, "/") {
			errs = append(errs, "transport.http.path must start with /")
		}
		if cfg.Transport.HTTP.SessionTimeoutSeconds < 0 {
			errs = append(errs, "transport.http.sessionTimeoutSeconds must be >= 0")
		}
		if auth := &cfg.Transport.HTTP.Auth; auth.Enabled() {
			secret := os.Getenv(auth.SecretEnv)
			if secret == "" {
				errs = append(errs, fmt.Sprintf("transport.http.auth.secretEnv: environment variable %s is empty", auth.SecretEnv))
			}
			auth.Secret = []byte(secret)
		}
	default:
		errs = append(errs, fmt.Sprintf("transport.kind must be %s or %s", domain.TransportStdio, domain.TransportHTTP))
	}

	if cfg.Observability.Enabled && cfg.Observability.ListenAddress == "" {
		errs = append(errs, "observability.listenAddress is required when observability is enabled")
	}
	if _, err := ParseLevel(cfg.Log.Level); err != nil {
		errs = append(errs, err.Error())
	}
	switch cfg.Log.Format {
	case domain.LogFormatJSON, domain.LogFormatConsole:
	default:
		errs = append(errs, fmt.Sprintf("log.format must be %s or %s", domain.LogFormatJSON, domain.LogFormatConsole))
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		errs = append(errs, "shutdownTimeoutSeconds must be > 0")
	}
	return errs
}

// ParseLevel parses a zap level name.
func ParseLevel(level string) (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return lvl, errors.New("log.level must be one of debug, info, warn, error")
	}
	return lvl, nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
