package registry

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"calcmcp/internal/domain"
	"calcmcp/internal/infra/endpoint"
)

// Prompts registers prompt plugins as MCP prompts.
type Prompts struct {
	*Registry[domain.Prompt]
	opts endpoint.Options
}

func NewPrompts(server *mcp.Server, opts Options) *Prompts {
	epOpts := endpoint.Options{Logger: opts.Logger, Metrics: opts.Metrics}
	publish := func(p domain.Prompt) (any, error) {
		prompt, handler, err := endpoint.Prompt(p, epOpts)
		if err != nil {
			return nil, err
		}
		if server != nil {
			server.AddPrompt(prompt, handler)
		}
		return prompt, nil
	}
	return &Prompts{
		Registry: New(domain.PluginKindPrompt, domain.Prompt.ArgumentsSchema, publish, opts),
		opts:     epOpts,
	}
}

func (p *Prompts) RegisterAll(factories []domain.PromptFactory, skip func(name string) bool) error {
	for _, factory := range factories {
		if err := p.register(factory, skip); err != nil {
			return err
		}
	}
	return nil
}

// Get renders a registered prompt in-process.
func (p *Prompts) Get(ctx context.Context, name string, args map[string]any) (domain.PromptResult, error) {
	prompt, ok := p.Registry.Get(name)
	if !ok {
		return domain.PromptResult{}, domain.E(domain.CodeNotFound, "registry.Get",
			fmt.Sprintf("prompt %q not found", name), domain.ErrPromptNotFound)
	}
	return endpoint.InvokePrompt(ctx, prompt, args, p.opts), nil
}

func (p *Prompts) Schemas() []NamedSchema {
	out := make([]NamedSchema, 0, p.Len())
	for _, name := range p.order {
		prompt := p.plugins[name]
		out = append(out, NamedSchema{Name: name, Description: prompt.Description(), Schema: prompt.ArgumentsSchema()})
	}
	return out
}
