//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/eslsoft/repaso/internal/adapter/httpapi"
	"github.com/eslsoft/repaso/internal/adapter/knowledge"
	"github.com/eslsoft/repaso/internal/adapter/repository"
	"github.com/eslsoft/repaso/internal/infrastructure/config"
	"github.com/eslsoft/repaso/internal/infrastructure/database"
	"github.com/eslsoft/repaso/internal/infrastructure/server"
	"github.com/eslsoft/repaso/internal/usecase"
)

var configSet = wire.NewSet(
	config.Load,
)

var databaseSet = wire.NewSet(
	database.NewConnection,
)

var repositorySet = wire.NewSet(
	repository.NewStudyItemRepository,
	repository.NewReviewStateRepository,
	provideKnowledgeConfig,
	knowledge.NewClient,
)

var usecaseSet = wire.NewSet(
	provideSyncOptions,
	usecase.NewStudyUsecase,
	usecase.NewSyncUsecase,
)

var serverSet = wire.NewSet(
	server.NewLogger,
	server.NewServer,
	httpapi.NewHandler,
)

// Initialize builds the application container using Wire.
func Initialize() (*Container, func(), error) {
	wire.Build(
		configSet,
		databaseSet,
		repositorySet,
		usecaseSet,
		serverSet,
		wire.Struct(new(Container), "Config", "DB", "Logger", "Server", "Study", "Sync"),
	)
	return nil, nil, nil
}
