package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"calcmcp/internal/domain"
	"calcmcp/internal/infra/telemetry"
)

type HTTPOptions struct {
	Addr            string
	Path            string
	Stateless       bool
	JSONResponse    bool
	SessionTimeout  time.Duration
	ShutdownTimeout time.Duration
	// Middleware wraps the MCP endpoint, outermost first.
	Middleware []func(http.Handler) http.Handler
}

// Handler mounts the streamable HTTP endpoint for server at opts.Path. Every
// request carries an x-request-id.
func Handler(server *mcp.Server, opts HTTPOptions) http.Handler {
	path := opts.Path
	if path == "" {
		path = domain.DefaultHTTPPath
	}
	var endpoint http.Handler = mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{
		Stateless:      opts.Stateless,
		JSONResponse:   opts.JSONResponse,
		SessionTimeout: opts.SessionTimeout,
	})
	for i := len(opts.Middleware) - 1; i >= 0; i-- {
		if mw := opts.Middleware[i]; mw != nil {
			endpoint = mw(endpoint)
		}
	}

	mux := http.NewServeMux()
	mux.Handle(path, endpoint)
	return telemetry.RequestIDMiddleware(mux)
}

// ServeStreamableHTTP listens on opts.Addr and serves until ctx is done.
func ServeStreamableHTTP(ctx context.Context, server *mcp.Server, opts HTTPOptions, logger *zap.Logger) error {
	addr := opts.Addr
	if addr == "" {
		addr = domain.DefaultHTTPListenAddress
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return ServeListener(ctx, listener, server, opts, logger)
}

// ServeListener serves on an existing listener and closes it on return.
func ServeListener(ctx context.Context, listener net.Listener, server *mcp.Server, opts HTTPOptions, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	shutdownTimeout := opts.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = time.Duration(domain.DefaultShutdownTimeoutSeconds) * time.Second
	}

	httpServer := &http.Server{
		Handler:           Handler(server, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(listener)
	}()
	logger.Info("serving mcp",
		telemetry.EventField(telemetry.EventServeStart),
		telemetry.TransportField(domain.TransportHTTP),
		zap.String("addr", listener.Addr().String()),
		zap.String("path", opts.Path),
	)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := httpServer.Shutdown(shutdownCtx)
		logger.Info("mcp server stopped",
			telemetry.EventField(telemetry.EventServeStop),
			telemetry.TransportField(domain.TransportHTTP),
		)
		return err
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
