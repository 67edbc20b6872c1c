package endpoint

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"calcmcp/internal/domain"
	"calcmcp/internal/infra/telemetry"
	"calcmcp/internal/schema"
)

// Prompt synthesizes the MCP prompt definition and handler for p.
func Prompt(p domain.Prompt, opts Options) (*mcp.Prompt, mcp.PromptHandler, error) {
	opts = opts.withDefaults()
	prompt := &mcp.Prompt{
		Name:        p.Name(),
		Description: p.Description(),
		Arguments:   PromptArguments(p.ArgumentsSchema()),
	}
	handler := func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		args := map[string]any{}
		if req != nil && req.Params != nil {
			for k, v := range req.Params.Arguments {
				args[k] = v
			}
		}
		return PromptResult(p.Description(), InvokePrompt(ctx, p, args, opts)), nil
	}
	return prompt, handler, nil
}

// PromptArguments lists the schema fields as prompt arguments in declared
// order.
func PromptArguments(s schema.Schema) []*mcp.PromptArgument {
	fields := s.Fields()
	out := make([]*mcp.PromptArgument, 0, len(fields))
	for _, f := range fields {
		out = append(out, &mcp.PromptArgument{
			Name:        f.Name,
			Description: f.Description,
			Required:    f.Required,
		})
	}
	return out
}

// InvokePrompt binds args against the prompt schema and generates the
// content. Prompt arguments arrive as strings, so an empty string leaves an
// optional argument unset.
func InvokePrompt(ctx context.Context, p domain.Prompt, args map[string]any, opts Options) domain.PromptResult {
	opts = opts.withDefaults()
	start := time.Now()
	ctx, _ = telemetry.EnsureRequestMeta(ctx, "")

	res, out := invokePrompt(ctx, p, args)
	observe(ctx, opts, domain.PluginKindPrompt, p.Name(), start, out)
	return res
}

func invokePrompt(ctx context.Context, p domain.Prompt, args map[string]any) (res domain.PromptResult, out outcome) {
	name := p.Name()
	defer func() {
		if r := recover(); r != nil {
			res = domain.PromptFailed(name, panicError(name, r))
			out = outcome{reason: domain.InvocationReasonPanic, message: res.ErrorMessage}
		}
	}()

	in, err := schema.Bind(p.ArgumentsSchema(), collect(p.ArgumentsSchema(), args, true))
	if err != nil {
		res = domain.PromptFailed(name, domain.Wrap(domain.CodeInvalidArgument, name, err))
		return res, outcome{reason: domain.InvocationReasonInvalidArgument, message: res.ErrorMessage}
	}
	res = p.Generate(ctx, in)
	if !res.Success {
		return res, outcome{reason: domain.InvocationReasonDomain, message: res.ErrorMessage}
	}
	return res, outcome{success: true, reason: domain.InvocationReasonOK}
}

// PromptResult maps an envelope onto the wire result. The host always gets
// one user message; the full envelope rides in _meta.result.
func PromptResult(description string, res domain.PromptResult) *mcp.GetPromptResult {
	text := res.Content
	if !res.Success {
		text = "Error: " + res.ErrorMessage
	}
	return &mcp.GetPromptResult{
		Meta:        mcp.Meta{"result": res},
		Description: description,
		Messages: []*mcp.PromptMessage{
			{Role: "user", Content: &mcp.TextContent{Text: text}},
		},
	}
}
