package app

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"calcmcp/internal/domain"
	"calcmcp/internal/infra/config"
	"calcmcp/internal/infra/httpauth"
	"calcmcp/internal/infra/telemetry"
	"calcmcp/internal/infra/transport"
)

// ServeConfig carries what the command line knows before the config file is
// read.
type ServeConfig struct {
	ConfigPath string
	Flags      *pflag.FlagSet
	// BootstrapLogger receives config loading diagnostics.
	BootstrapLogger *zap.Logger
}

// Application runs the assembled server on its configured transport.
type Application struct {
	serve    ServeConfig
	cfg      domain.Config
	loader   *config.Loader
	logging  *Logging
	logger   *zap.Logger
	registry *prometheus.Registry
	server   *Server

	mu sync.Mutex
}

// ApplicationOptions captures dependencies for Application.
type ApplicationOptions struct {
	ServeConfig ServeConfig
	Config      domain.Config
	Loader      *config.Loader
	Logging     *Logging
	Registry    *prometheus.Registry
	Server      *Server
}

func NewApplication(opts ApplicationOptions) *Application {
	return &Application{
		serve:    opts.ServeConfig,
		cfg:      opts.Config,
		loader:   opts.Loader,
		logging:  opts.Logging,
		logger:   opts.Logging.Logger,
		registry: opts.Registry,
		server:   opts.Server,
	}
}

func (a *Application) Server() *Server { return a.server }

// Run serves until ctx is done. The telemetry listener and the config
// watcher stop with it.
func (a *Application) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.logger.Info("configuration loaded",
		zap.String("config", a.serve.ConfigPath),
		telemetry.TransportField(a.cfg.Transport.Kind),
	)

	var wg sync.WaitGroup
	if a.cfg.Observability.Enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := telemetry.StartHTTPServer(ctx, telemetry.HTTPServerOptions{
				Addr:          a.cfg.Observability.ListenAddress,
				EnableMetrics: a.cfg.Observability.Metrics,
				EnableHealthz: a.cfg.Observability.Healthz,
				Health:        a.server,
				Registry:      a.registry,
			}, a.logger.Named("telemetry"))
			if err != nil {
				a.logger.Warn("observability server failed", zap.Error(err))
			}
		}()
	}
	if a.serve.ConfigPath != "" && a.loader != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := a.loader.Watch(ctx, a.serve.ConfigPath, domain.ReloadDebounce(), a.applyReload); err != nil {
				a.logger.Warn("config watcher stopped", zap.Error(err))
			}
		}()
	}

	err := a.run(ctx)
	cancel()
	wg.Wait()
	return err
}

func (a *Application) run(ctx context.Context) error {
	switch a.cfg.Transport.Kind {
	case domain.TransportStdio:
		return transport.ServeStdio(ctx, a.server.MCP(), a.logger)
	case domain.TransportHTTP:
		httpCfg := a.cfg.Transport.HTTP
		auth, err := httpauth.Middleware(httpCfg.Auth)
		if err != nil {
			return err
		}
		return transport.ServeStreamableHTTP(ctx, a.server.MCP(), transport.HTTPOptions{
			Addr:            httpCfg.ListenAddress,
			Path:            httpCfg.Path,
			Stateless:       httpCfg.Stateless,
			JSONResponse:    httpCfg.JSONResponse,
			SessionTimeout:  httpCfg.SessionTimeout(),
			ShutdownTimeout: a.cfg.ShutdownTimeout(),
			Middleware:      []func(http.Handler) http.Handler{auth},
		}, a.logger)
	default:
		return fmt.Errorf("unsupported transport: %s", a.cfg.Transport.Kind)
	}
}

// applyReload hot-applies the log level. Other sections only take effect
// after a restart.
func (a *Application) applyReload(next domain.Config) {
	a.mu.Lock()
	defer a.mu.Unlock()

	changed, err := a.logging.SetLevel(next.Log.Level)
	if err != nil {
		a.logger.Warn("log level reload failed", zap.Error(err))
	} else if changed {
		a.logger.Info("log level updated",
			telemetry.EventField(telemetry.EventConfigReload),
			zap.String("level", next.Log.Level),
		)
	}
	if sections := restartRequired(a.cfg, next); len(sections) > 0 {
		a.logger.Warn("config changes require a restart", zap.Strings("sections", sections))
	}
	a.cfg.Log = next.Log
}

func restartRequired(current, next domain.Config) []string {
	var sections []string
	check := func(name string, a, b any) {
		if !reflect.DeepEqual(a, b) {
			sections = append(sections, name)
		}
	}
	check("server", current.Server, next.Server)
	check("transport", current.Transport, next.Transport)
	check("observability", current.Observability, next.Observability)
	check("log.format", current.Log.Format, next.Log.Format)
	check("plugins", current.Plugins, next.Plugins)
	check("shutdownTimeoutSeconds", current.ShutdownTimeoutSeconds, next.ShutdownTimeoutSeconds)
	return sections
}
