// Package transport serves an MCP server over stdio or streamable HTTP.
package transport

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"calcmcp/internal/domain"
	"calcmcp/internal/infra/telemetry"
)

// ServeStdio runs server over stdin/stdout until the peer disconnects or ctx
// is done. Cancellation is a clean stop.
func ServeStdio(ctx context.Context, server *mcp.Server, logger *zap.Logger) error {
	return serveTransport(ctx, server, &mcp.StdioTransport{}, logger)
}

func serveTransport(ctx context.Context, server *mcp.Server, t mcp.Transport, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("serving mcp",
		telemetry.EventField(telemetry.EventServeStart),
		telemetry.TransportField(domain.TransportStdio),
	)
	err := server.Run(ctx, t)
	logger.Info("mcp server stopped",
		telemetry.EventField(telemetry.EventServeStop),
		telemetry.TransportField(domain.TransportStdio),
	)
	if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		return nil
	}
	return err
}
