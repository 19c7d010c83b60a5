package cli

import (
	"context"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"invoice-service/config"
	"invoice-service/core"
)

// bootstrap loads the configuration and opens the logger and the database.
// The returned cleanup closes both.
func bootstrap(ctx context.Context) (*config.Config, *zap.Logger, *gorm.DB, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, nil, err
	}

	logger, err := core.NewLogger(cfg)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	db, err := core.OpenDatabase(ctx, cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, nil, nil, err
	}

	cleanup := func() {
		if err := core.CloseDatabase(db); err != nil {
			logger.Warn("Failed to close database", zap.Error(err))
		}
		_ = logger.Sync()
	}

	return cfg, logger, db, cleanup, nil
}
