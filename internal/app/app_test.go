package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"calcmcp/internal/domain"
	"calcmcp/internal/infra/config"
	"calcmcp/internal/infra/telemetry"
)

func defaultConfig(t *testing.T) domain.Config {
	t.Helper()
	cfg, err := config.NewLoader(zap.NewNop(), nil).Load(context.Background(), "")
	require.NoError(t, err)
	return cfg
}

func TestNewServerRegistersCatalog(t *testing.T) {
	server, err := NewServer(defaultConfig(t), zap.NewNop(), NewOfflineMetrics())
	require.NoError(t, err)

	assert.Equal(t, 29, server.Tools().Len())
	assert.Equal(t, 3, server.Prompts().Len())
	assert.True(t, server.Tools().Sealed())
	assert.True(t, server.Prompts().Sealed())
	assert.NotEmpty(t, server.ETag())

	res, err := server.Tools().Call(context.Background(), "gcd", map[string]any{"numbers": []any{12, 18, 24}})
	require.NoError(t, err)
	require.True(t, res.Success, res.ErrorMessage)
	require.NotNil(t, res.Result)
	assert.Equal(t, 6.0, *res.Result)
}

func TestNewServerSkipsDisabledPlugins(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Plugins.Disabled = []string{"factorial", "health_metrics"}

	server, err := NewServer(cfg, zap.NewNop(), NewOfflineMetrics())
	require.NoError(t, err)
	assert.Equal(t, 28, server.Tools().Len())
	assert.Equal(t, 2, server.Prompts().Len())
	assert.NotContains(t, server.Tools().Names(), "factorial")
	assert.NotContains(t, server.Prompts().Names(), "health_metrics")
}

func TestNewServerRejectsUnknownDisabledPlugin(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Plugins.Disabled = []string{"cube_root"}

	_, err := NewServer(cfg, zap.NewNop(), NewOfflineMetrics())
	require.Error(t, err)
	code, ok := domain.CodeFrom(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeInvalidArgument, code)
	assert.Contains(t, err.Error(), "cube_root")
}

func TestServerHealth(t *testing.T) {
	server, err := NewServer(defaultConfig(t), zap.NewNop(), NewOfflineMetrics())
	require.NoError(t, err)

	report := server.Health()
	assert.Equal(t, telemetry.HealthStatusOK, report.Status)
	assert.Equal(t, 29, report.Tools)
	assert.Equal(t, 3, report.Prompts)
	assert.Equal(t, server.ETag(), report.ETag)
}

func TestETagIsStableAcrossAssemblies(t *testing.T) {
	cfg := defaultConfig(t)
	first, err := NewServer(cfg, zap.NewNop(), NewOfflineMetrics())
	require.NoError(t, err)
	second, err := NewServer(cfg, zap.NewNop(), NewOfflineMetrics())
	require.NoError(t, err)
	assert.Equal(t, first.ETag(), second.ETag())

	cfg.Plugins.Disabled = []string{"lcm"}
	third, err := NewServer(cfg, zap.NewNop(), NewOfflineMetrics())
	require.NoError(t, err)
	assert.NotEqual(t, first.ETag(), third.ETag())
}

func TestLoggingSetLevel(t *testing.T) {
	logging, err := NewLogging(defaultConfig(t))
	require.NoError(t, err)
	assert.Equal(t, zapcore.InfoLevel, logging.Level.Level())

	changed, err := logging.SetLevel("debug")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, zapcore.DebugLevel, logging.Level.Level())

	changed, err = logging.SetLevel("debug")
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = logging.SetLevel("loud")
	require.Error(t, err)
}

func TestApplyReloadUpdatesLevelAndFlagsRestartSections(t *testing.T) {
	cfg := defaultConfig(t)
	core, logs := observer.New(zapcore.DebugLevel)
	application := &Application{
		cfg:     cfg,
		logging: &Logging{Logger: zap.New(core), Level: zap.NewAtomicLevelAt(zapcore.InfoLevel)},
		logger:  zap.New(core),
	}

	next := cfg
	next.Log.Level = "warn"
	next.Plugins.Disabled = []string{"add"}
	application.applyReload(next)

	assert.Equal(t, zapcore.WarnLevel, application.logging.Level.Level())
	assert.Equal(t, "warn", application.cfg.Log.Level)
	assert.Empty(t, application.cfg.Plugins.Disabled)

	restart := logs.FilterMessage("config changes require a restart").All()
	require.Len(t, restart, 1)
	assert.Equal(t, []any{"plugins"}, restart[0].ContextMap()["sections"])
}

func TestRestartRequiredIgnoresLogLevel(t *testing.T) {
	cfg := defaultConfig(t)
	next := cfg
	next.Log.Level = "error"
	assert.Empty(t, restartRequired(cfg, next))

	next.ShutdownTimeoutSeconds = 30
	next.Transport.Kind = domain.TransportHTTP
	assert.Equal(t, []string{"transport", "shutdownTimeoutSeconds"}, restartRequired(cfg, next))
}

func TestApplicationServesHTTPUntilCancelled(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Transport.Kind = domain.TransportHTTP
	cfg.Transport.HTTP.ListenAddress = "127.0.0.1:0"

	server, err := NewServer(cfg, zap.NewNop(), NewOfflineMetrics())
	require.NoError(t, err)
	application := NewApplication(ApplicationOptions{
		Config:   cfg,
		Logging:  &Logging{Logger: zap.NewNop(), Level: zap.NewAtomicLevel()},
		Registry: NewMetricsRegistry(),
		Server:   server,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- application.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("application did not stop")
	}
}

func TestApplicationRejectsUnknownTransport(t *testing.T) {
	cfg := defaultConfig(t)
	cfg.Transport.Kind = "carrier-pigeon"
	server, err := NewServer(defaultConfig(t), zap.NewNop(), NewOfflineMetrics())
	require.NoError(t, err)

	application := NewApplication(ApplicationOptions{
		Config:  cfg,
		Logging: &Logging{Logger: zap.NewNop(), Level: zap.NewAtomicLevel()},
		Server:  server,
	})
	err = application.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "carrier-pigeon")
}

func TestValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calcmcp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("plugins:\n  disabled: [nutrition_planner]\n"), 0o600))

	summary, err := Validate(context.Background(), ServeConfig{ConfigPath: path, BootstrapLogger: zap.NewNop()})
	require.NoError(t, err)
	assert.Equal(t, domain.TransportStdio, summary.Transport)
	assert.Equal(t, 29, summary.Tools)
	assert.Equal(t, 2, summary.Prompts)
	assert.NotEmpty(t, summary.ETag)
}

func TestValidateReportsConfigErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calcmcp.yaml")
	require.NoError(t, os.WriteFile(path, []byte("transport:\n  kind: smoke\n"), 0o600))

	_, err := Validate(context.Background(), ServeConfig{ConfigPath: path, BootstrapLogger: zap.NewNop()})
	require.Error(t, err)
	var domainErr *domain.Error
	require.True(t, errors.As(err, &domainErr))
}

func TestInitializeServer(t *testing.T) {
	server, err := InitializeServer(context.Background(), ServeConfig{BootstrapLogger: zap.NewNop()})
	require.NoError(t, err)
	assert.Equal(t, 29, server.Tools().Len())
}

func TestVersionStrings(t *testing.T) {
	assert.Contains(t, VersionReport(), programName)
	assert.Contains(t, VersionString(), "version=")
}
