package app

import (
	"context"

	"go.uber.org/zap"
)

// ValidateSummary reports what a configuration would serve.
type ValidateSummary struct {
	Transport string `json:"transport"`
	Tools     int    `json:"tools"`
	Prompts   int    `json:"prompts"`
	ETag      string `json:"etag"`
}

// Validate loads the configuration and assembles the server without serving
// it. Duplicate or malformed plugins fail here the same way they fail at
// startup.
func Validate(ctx context.Context, sc ServeConfig) (ValidateSummary, error) {
	loader := NewConfigLoader(sc)
	cfg, err := NewConfig(ctx, loader, sc)
	if err != nil {
		return ValidateSummary{}, err
	}
	server, err := NewServer(cfg, sc.BootstrapLogger, NewOfflineMetrics())
	if err != nil {
		return ValidateSummary{}, err
	}

	summary := ValidateSummary{
		Transport: cfg.Transport.Kind,
		Tools:     server.Tools().Len(),
		Prompts:   server.Prompts().Len(),
		ETag:      server.ETag(),
	}
	if sc.BootstrapLogger != nil {
		sc.BootstrapLogger.Info("configuration validated",
			zap.String("config", sc.ConfigPath),
			zap.Int("tools", summary.Tools),
			zap.Int("prompts", summary.Prompts),
		)
	}
	return summary, nil
}
