package registry

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"calcmcp/internal/domain"
	"calcmcp/internal/infra/endpoint"
	"calcmcp/internal/schema"
)

// Tools registers operations as MCP tools. A nil server synthesizes the
// endpoints without publishing them, which is enough for in-process calls.
type Tools struct {
	*Registry[domain.Operation]
	opts endpoint.Options
}

func NewTools(server *mcp.Server, opts Options) *Tools {
	epOpts := endpoint.Options{Logger: opts.Logger, Metrics: opts.Metrics}
	publish := func(op domain.Operation) (any, error) {
		tool, handler, err := endpoint.Tool(op, epOpts)
		if err != nil {
			return nil, err
		}
		if server != nil {
			server.AddTool(tool, handler)
		}
		return tool, nil
	}
	return &Tools{
		Registry: New(domain.PluginKindTool, domain.Operation.InputSchema, publish, opts),
		opts:     epOpts,
	}
}

// RegisterAll registers factories in order and stops at the first error.
func (t *Tools) RegisterAll(factories []domain.OperationFactory, skip func(name string) bool) error {
	for _, factory := range factories {
		if err := t.register(factory, skip); err != nil {
			return err
		}
	}
	return nil
}

// Call invokes a registered operation in-process with the same binding and
// failure handling the MCP handler uses.
func (t *Tools) Call(ctx context.Context, name string, args map[string]any) (domain.OperationResult, error) {
	op, ok := t.Get(name)
	if !ok {
		return domain.OperationResult{}, domain.E(domain.CodeNotFound, "registry.Call",
			fmt.Sprintf("tool %q not found", name), domain.ErrToolNotFound)
	}
	return endpoint.InvokeOperation(ctx, op, args, t.opts), nil
}

// Schemas returns each registered operation's schema in registration order.
func (t *Tools) Schemas() []NamedSchema {
	out := make([]NamedSchema, 0, t.Len())
	for _, name := range t.order {
		op := t.plugins[name]
		out = append(out, NamedSchema{Name: name, Description: op.Description(), Schema: op.InputSchema()})
	}
	return out
}

// NamedSchema describes one registered plugin for listings.
type NamedSchema struct {
	Name        string
	Description string
	Schema      schema.Schema
}
