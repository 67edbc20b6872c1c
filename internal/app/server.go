package app

import (
	"fmt"
	"slices"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"calcmcp/internal/domain"
	"calcmcp/internal/infra/hashutil"
	"calcmcp/internal/infra/registry"
	"calcmcp/internal/infra/telemetry"
	"calcmcp/internal/operations"
	"calcmcp/internal/prompts"
)

// Server is the assembled MCP server with sealed tool and prompt registries.
type Server struct {
	mcp     *mcp.Server
	tools   *registry.Tools
	prompts *registry.Prompts
	logger  *zap.Logger
}

// NewServer registers every catalog plugin not disabled by cfg, then seals
// the registries. Any registration error aborts assembly.
func NewServer(cfg domain.Config, logger *zap.Logger, metrics domain.Metrics) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	skip, err := disabledFilter(cfg.Plugins.Disabled, operations.Catalog(), prompts.Catalog())
	if err != nil {
		return nil, err
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Server.Name,
		Title:   cfg.Server.Title,
		Version: cfg.Server.Version,
	}, &mcp.ServerOptions{
		Instructions: cfg.Server.Instructions,
	})

	opts := registry.Options{Logger: logger, Metrics: metrics}
	tools := registry.NewTools(server, opts)
	if err := tools.RegisterAll(operations.Catalog(), skip); err != nil {
		return nil, err
	}
	promptRegistry := registry.NewPrompts(server, opts)
	if err := promptRegistry.RegisterAll(prompts.Catalog(), skip); err != nil {
		return nil, err
	}
	tools.Seal()
	promptRegistry.Seal()

	s := &Server{mcp: server, tools: tools, prompts: promptRegistry, logger: logger}
	logger.Info("server assembled",
		zap.String("name", cfg.Server.Name),
		zap.String("version", cfg.Server.Version),
		zap.Int("tools", tools.Len()),
		zap.Int("prompts", promptRegistry.Len()),
		zap.Strings("disabled", cfg.Plugins.Disabled),
	)
	return s, nil
}

func disabledFilter(disabled []string, ops []domain.OperationFactory, ps []domain.PromptFactory) (func(string) bool, error) {
	if len(disabled) == 0 {
		return nil, nil
	}
	known := make(map[string]struct{}, len(ops)+len(ps))
	for _, factory := range ops {
		known[factory().Name()] = struct{}{}
	}
	for _, factory := range ps {
		known[factory().Name()] = struct{}{}
	}
	for _, name := range disabled {
		if _, ok := known[name]; !ok {
			return nil, domain.E(domain.CodeInvalidArgument, "app.NewServer",
				fmt.Sprintf("plugins.disabled: unknown plugin %q", name), nil)
		}
	}
	return func(name string) bool { return slices.Contains(disabled, name) }, nil
}

func (s *Server) MCP() *mcp.Server { return s.mcp }

func (s *Server) Tools() *registry.Tools { return s.tools }

func (s *Server) Prompts() *registry.Prompts { return s.prompts }

// ETag identifies the published catalog.
func (s *Server) ETag() string {
	return hashutil.CombinedETag(s.logger, s.tools.ETag(), s.prompts.ETag())
}

func (s *Server) Health() telemetry.HealthReport {
	status := telemetry.HealthStatusOK
	if !s.tools.Sealed() || !s.prompts.Sealed() {
		status = telemetry.HealthStatusStarting
	}
	return telemetry.HealthReport{
		Status:  status,
		Tools:   s.tools.Len(),
		Prompts: s.prompts.Len(),
		ETag:    s.ETag(),
	}
}

var _ telemetry.HealthSource = (*Server)(nil)
