package main

import (
	"fmt"

	"github.com/h4ks-com/farmstead/internal/config"
	"github.com/h4ks-com/farmstead/internal/database"
	"github.com/h4ks-com/farmstead/internal/logging"
	"github.com/h4ks-com/farmstead/internal/repository"
	"github.com/h4ks-com/farmstead/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// environment is what every subcommand needs: configuration, a logger and a migrated database.
type environment struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
}

func setup() (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.Log, cfg.GinMode != "release")
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}

	db, err := database.Connect(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.Migrate(db, logger); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &environment{cfg: cfg, logger: logger, db: db}, nil
}

func (e *environment) authService() *services.AuthService {
	return services.NewAuthService(
		repository.NewUserRepository(e.db),
		repository.NewTokenRepository(e.db),
		services.NewTokenService(e.cfg.JWT.Secret, e.cfg.JWT.TokenTTL),
		e.logger,
	)
}

func (e *environment) close() {
	e.logger.Sync()
	if sqlDB, err := e.db.DB(); err == nil {
		sqlDB.Close()
	}
}
