package app

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/repaso/internal/adapter/knowledge"
	"github.com/eslsoft/repaso/internal/infrastructure/config"
	"github.com/eslsoft/repaso/internal/infrastructure/server"
	"github.com/eslsoft/repaso/internal/usecase"
)

// Container aggregates the application dependencies produced by Wire.
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Logger *logrus.Logger
	Server *server.Server
	Study  usecase.StudyUsecase
	Sync   usecase.SyncUsecase
}

func provideKnowledgeConfig(cfg *config.Config) knowledge.Config {
	return knowledge.Config{
		BaseURL: cfg.Knowledge.BaseURL,
		Token:   cfg.Knowledge.Token,
		Timeout: time.Duration(cfg.Knowledge.TimeoutSeconds) * time.Second,
	}
}

func provideSyncOptions(cfg *config.Config) usecase.SyncOptions {
	return usecase.SyncOptions{
		Topics:      cfg.Sync.Topics,
		Parallelism: cfg.Sync.Parallelism,
	}
}
