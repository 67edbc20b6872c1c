package endpoint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"calcmcp/internal/domain"
	"calcmcp/internal/infra/telemetry"
	"calcmcp/internal/schema"
)

var outputSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.For[domain.OperationResult](nil)
})

// Tool synthesizes the MCP tool definition and handler for op.
func Tool(op domain.Operation, opts Options) (*mcp.Tool, mcp.ToolHandler, error) {
	opts = opts.withDefaults()
	out, err := outputSchema()
	if err != nil {
		return nil, nil, domain.E(domain.CodeInternal, "endpoint.Tool", "infer output schema", err)
	}
	tool := &mcp.Tool{
		Name:         op.Name(),
		Description:  op.Description(),
		InputSchema:  op.InputSchema().JSONSchema(),
		OutputSchema: out,
	}
	handler := func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var raw json.RawMessage
		if req != nil && req.Params != nil {
			raw = req.Params.Arguments
		}
		args, err := decodeArguments(raw)
		if err != nil {
			res := domain.OperationFailed(op.Name(), domain.E(domain.CodeInvalidArgument, op.Name(), "", err))
			return ToolResult(res), nil
		}
		return ToolResult(InvokeOperation(ctx, op, args, opts)), nil
	}
	return tool, handler, nil
}

// InvokeOperation binds args against the operation schema and executes it.
// Every error and panic becomes a failure envelope.
func InvokeOperation(ctx context.Context, op domain.Operation, args map[string]any, opts Options) domain.OperationResult {
	opts = opts.withDefaults()
	start := time.Now()
	ctx, _ = telemetry.EnsureRequestMeta(ctx, "")

	res, out := invokeOperation(ctx, op, args)
	observe(ctx, opts, domain.PluginKindTool, op.Name(), start, out)
	return res
}

func invokeOperation(ctx context.Context, op domain.Operation, args map[string]any) (res domain.OperationResult, out outcome) {
	name := op.Name()
	defer func() {
		if r := recover(); r != nil {
			err := panicError(name, r)
			res = domain.OperationFailed(name, err)
			out = outcome{reason: domain.InvocationReasonPanic, message: res.ErrorMessage}
		}
	}()

	in, err := schema.Bind(op.InputSchema(), collect(op.InputSchema(), args, false))
	if err != nil {
		res = domain.OperationFailed(name, domain.Wrap(domain.CodeInvalidArgument, name, err))
		return res, outcome{reason: domain.InvocationReasonInvalidArgument, message: res.ErrorMessage}
	}
	res = op.Execute(ctx, in)
	if !res.Success {
		return res, outcome{reason: domain.InvocationReasonDomain, message: res.ErrorMessage}
	}
	return res, outcome{success: true, reason: domain.InvocationReasonOK}
}

// ToolResult maps an envelope onto the wire result: structured content is
// the envelope itself and the text content its JSON encoding.
func ToolResult(res domain.OperationResult) *mcp.CallToolResult {
	text, err := json.Marshal(res)
	if err != nil {
		text = []byte(res.ErrorMessage)
	}
	return &mcp.CallToolResult{
		Content:           []mcp.Content{&mcp.TextContent{Text: string(text)}},
		StructuredContent: res,
		IsError:           !res.Success,
	}
}

var errArgumentsNotObject = errors.New("arguments must be a JSON object")

func decodeArguments(raw json.RawMessage) (map[string]any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return map[string]any{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var args map[string]any
	if err := dec.Decode(&args); err != nil {
		return nil, errArgumentsNotObject
	}
	return args, nil
}
