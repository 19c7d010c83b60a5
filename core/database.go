package core

import (
	"context"
	"fmt"
	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"invoice-service/config"
	"time"
)

// OpenDatabase opens the postgres connection pool and waits until the server answers.
func OpenDatabase(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	sqlLevel := gormlogger.Warn
	if cfg.IsDev() {
		sqlLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError:       true,
		DisableAutomaticPing: true,
		Logger: gormlogger.New(
			zap.NewStdLog(logger.Named("sql")),
			gormlogger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  sqlLevel,
				IgnoreRecordNotFoundError: true,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	err = retry.Do(
		func() error {
			return sqlDB.PingContext(ctx)
		},
		retry.Context(ctx),
		retry.Attempts(cfg.Database.ConnectAttempts),
		retry.Delay(time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn("Database not reachable yet", zap.Uint("attempt", n+1), zap.Error(err))
		}),
	)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// CloseDatabase releases the underlying connection pool.
func CloseDatabase(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
