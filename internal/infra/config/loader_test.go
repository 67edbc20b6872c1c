package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calcmcp/internal/domain"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "calcmcp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := NewLoader(nil, nil).Load(context.Background(), "")
	require.NoError(t, err)

	want := domain.Config{
		Server: domain.ServerConfig{
			Name:         domain.DefaultServerName,
			Title:        domain.DefaultServerTitle,
			Version:      domain.DefaultServerVersion,
			Instructions: domain.DefaultInstructions,
		},
		Transport: domain.TransportConfig{
			Kind: domain.TransportStdio,
			HTTP: domain.HTTPTransportConfig{
				ListenAddress: domain.DefaultHTTPListenAddress,
				Path:          domain.DefaultHTTPPath,
				Auth:          domain.HTTPAuthConfig{Scopes: []string{}},
			},
		},
		Observability: domain.ObservabilityConfig{
			ListenAddress: domain.DefaultObservabilityListenAddress,
			Metrics:       true,
			Healthz:       true,
		},
		Log:                    domain.LogConfig{Level: "info", Format: "json"},
		Plugins:                domain.PluginsConfig{Disabled: []string{}},
		ShutdownTimeoutSeconds: domain.DefaultShutdownTimeoutSeconds,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFileExpandsEnv(t *testing.T) {
	t.Setenv("CALC_PORT_ADDR", "0.0.0.0:9999")
	t.Setenv("CALC_STATELESS", "true")
	path := writeConfig(t, t.TempDir(), `
server:
  version: 1.2.3
transport:
  kind: HTTP
  http:
    listenAddress: ${CALC_PORT_ADDR}
    stateless: ${CALC_STATELESS}
    path: /rpc
plugins:
  disabled: [tangent, " sine "]
log:
  level: ${CALC_UNSET_LEVEL}debug
`)
	cfg, err := NewLoader(nil, nil).Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "v1.2.3", cfg.Server.Version)
	assert.Equal(t, domain.TransportHTTP, cfg.Transport.Kind)
	assert.Equal(t, "0.0.0.0:9999", cfg.Transport.HTTP.ListenAddress)
	assert.True(t, cfg.Transport.HTTP.Stateless)
	assert.Equal(t, "/rpc", cfg.Transport.HTTP.Path)
	assert.Equal(t, []string{"tangent", "sine"}, cfg.Plugins.Disabled)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("CALCMCP_LOG_LEVEL", "warn")
	path := writeConfig(t, t.TempDir(), "log:\n  level: debug\n")

	cfg, err := NewLoader(nil, nil).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadFlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "transport:\n  kind: stdio\n")
	flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	flags.String("transport", "", "")
	flags.String("addr", "", "")
	require.NoError(t, flags.Parse([]string{"--transport=http", "--addr=127.0.0.1:7000"}))

	cfg, err := NewLoader(nil, flags).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, domain.TransportHTTP, cfg.Transport.Kind)
	assert.Equal(t, "127.0.0.1:7000", cfg.Transport.HTTP.ListenAddress)
}

func TestLoadReportsEveryProblem(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
server:
  version: not-a-version
transport:
  kind: carrier-pigeon
log:
  level: loud
  format: xml
shutdownTimeoutSeconds: 0
`)
	_, err := NewLoader(nil, nil).Load(context.Background(), path)
	require.Error(t, err)
	code, ok := domain.CodeFrom(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeInvalidArgument, code)
	for _, want := range []string{"server.version", "transport.kind", "log.level", "log.format", "shutdownTimeoutSeconds"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestLoadResolvesAuthSecret(t *testing.T) {
	body := `
transport:
  kind: http
  http:
    auth:
      secretEnv: CALC_JWT_SECRET
      scopes: [calc]
`
	path := writeConfig(t, t.TempDir(), body)

	_, err := NewLoader(nil, nil).Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CALC_JWT_SECRET")

	t.Setenv("CALC_JWT_SECRET", "s3cret")
	cfg, err := NewLoader(nil, nil).Load(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, cfg.Transport.HTTP.Auth.Enabled())
	assert.Equal(t, []byte("s3cret"), cfg.Transport.HTTP.Auth.Secret)
	assert.Equal(t, []string{"calc"}, cfg.Transport.HTTP.Auth.Scopes)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewLoader(nil, nil).Load(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestExpandEnvTracksMissing(t *testing.T) {
	t.Setenv("CALC_PRESENT", "42")
	out, missing, err := expandEnv([]byte("a: ${CALC_PRESENT}\nb: \"${CALC_ABSENT_B}\"\nc: ${CALC_ABSENT_A}\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"CALC_ABSENT_A", "CALC_ABSENT_B"}, missing)
	assert.Contains(t, out, "a: 42")
}

func TestWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "log:\n  level: info\n")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var (
		mu     sync.Mutex
		levels []string
	)
	loader := NewLoader(nil, nil)
	done := make(chan error, 1)
	go func() {
		done <- loader.Watch(ctx, path, 20*time.Millisecond, func(cfg domain.Config) {
			mu.Lock()
			levels = append(levels, cfg.Log.Level)
			mu.Unlock()
		})
	}()

	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600)
		mu.Lock()
		defer mu.Unlock()
		return len(levels) > 0 && levels[len(levels)-1] == "debug"
	}, 5*time.Second, 100*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
