//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"
)

func InitializeApplication(ctx context.Context, sc ServeConfig) (*Application, error) {
	wire.Build(AppSet)
	return nil, nil
}

// InitializeServer assembles the server without metrics for one-shot
// commands.
func InitializeServer(ctx context.Context, sc ServeConfig) (*Server, error) {
	wire.Build(OfflineSet)
	return nil, nil
}
