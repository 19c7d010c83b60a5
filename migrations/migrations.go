package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed sql/*.sql
var files embed.FS

type zapLogger struct {
	logger *zap.SugaredLogger
}

func (l zapLogger) Printf(format string, v ...any) {
	l.logger.Infof(format, v...)
}

func (l zapLogger) Verbose() bool {
	return false
}

func newMigrate(ctx context.Context, conn *sql.Conn, logger *zap.Logger) (*migrate.Migrate, error) {
	source, err := iofs.New(files, "sql")
	if err != nil {
		return nil, fmt.Errorf("failed to open migration files: %w", err)
	}

	driver, err := postgres.WithConnection(ctx, conn, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, err
	}
	m.Log = zapLogger{logger: logger.Named("migrate").Sugar()}
	return m, nil
}

// run hands fn a migrator bound to one connection of db. The connection goes
// back to the pool when fn returns.
func run(ctx context.Context, db *sql.DB, logger *zap.Logger, fn func(*migrate.Migrate) error) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire migration connection: %w", err)
	}
	defer conn.Close()

	m, err := newMigrate(ctx, conn, logger)
	if err != nil {
		return err
	}
	return fn(m)
}

// Up applies every pending migration.
func Up(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	return run(ctx, db, logger, func(m *migrate.Migrate) error {
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}

		version, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			return err
		}
		logger.Info("Database schema is up to date", zap.Uint("version", version), zap.Bool("dirty", dirty))
		return nil
	})
}

// Down rolls back the given number of migrations.
func Down(ctx context.Context, db *sql.DB, steps int, logger *zap.Logger) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}

	return run(ctx, db, logger, func(m *migrate.Migrate) error {
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to roll back migrations: %w", err)
		}
		logger.Info("Rolled back migrations", zap.Int("steps", steps))
		return nil
	})
}
