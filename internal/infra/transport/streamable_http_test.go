package transport

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calcmcp/internal/infra/registry"
	"calcmcp/internal/infra/telemetry"
	"calcmcp/internal/operations"
)

func newCalcServer(t *testing.T) *mcp.Server {
	t.Helper()
	server := mcp.NewServer(&mcp.Implementation{Name: "calc", Version: "0.1.0"}, nil)
	tools := registry.NewTools(server, registry.Options{})
	require.NoError(t, tools.Register(operations.Add))
	tools.Seal()
	return server
}

func TestStreamableHTTPCallTool(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	httpServer := httptest.NewServer(Handler(newCalcServer(t), HTTPOptions{Path: "/mcp", JSONResponse: true}))
	t.Cleanup(httpServer.Close)

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "0.1.0"}, nil)
	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{Endpoint: httpServer.URL + "/mcp"}, nil)
	require.NoError(t, err)
	defer session.Close()

	res, err := session.CallTool(ctx, &mcp.CallToolParams{Name: "add", Arguments: map[string]any{"a": 5, "b": 3}})
	require.NoError(t, err)
	require.False(t, res.IsError)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, `"result":8`)
}

func TestHandlerAppliesMiddlewareAndRequestID(t *testing.T) {
	deny := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "no bearer token", http.StatusUnauthorized)
		})
	}
	handler := Handler(newCalcServer(t), HTTPOptions{Path: "/mcp", Middleware: []func(http.Handler) http.Handler{deny}})

	req := httptest.NewRequest(http.MethodPost, "/mcp", strings.NewReader(`{}`))
	req.Header.Set(telemetry.RequestIDHeader, "req-7")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "req-7", rec.Header().Get(telemetry.RequestIDHeader))

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/other", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServeListenerStopsOnCancel(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- ServeListener(ctx, listener, newCalcServer(t), HTTPOptions{Path: "/mcp", ShutdownTimeout: time.Second}, nil)
	}()

	require.Eventually(t, func() bool {
		conn, err := net.Dial("tcp", listener.Addr().String())
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServeStdioReturnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	_, st := mcp.NewInMemoryTransports()
	done := make(chan error, 1)
	go func() {
		done <- serveTransport(ctx, newCalcServer(t), st, nil)
	}()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("stdio server did not stop")
	}
}
