//go:build wireinject
// +build wireinject

package app

import (
	"log/slog"

	"github.com/google/wire"

	"meeting-scribe/internal/api/server"
	"meeting-scribe/internal/config"
)

// InitializeServer builds the API server with its full dependency graph.
func InitializeServer(cfg server.Config, settings *config.Settings, logger *slog.Logger) (*server.Server, func(), error) {
	wire.Build(
		provideAnalysisDAO,
		provideCollectors,
		provideArchive,
		provideServiceContainer,
		server.NewServer,
	)
	return nil, nil, nil
}
