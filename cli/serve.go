package cli

import (
	"context"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"invoice-service/core"
	"invoice-service/invoices"
	invoicerepositories "invoice-service/invoices/repositories"
	"invoice-service/migrations"
	"invoice-service/server"
	"invoice-service/shipments"
	shipmentrepositories "invoice-service/shipments/repositories"
	"invoice-service/workers/stats"
	"os"
	"os/signal"
	"syscall"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the scheduled workers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Wait for termination signal to exit gracefully
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx)
		},
	}
}

func serve(ctx context.Context) error {
	cfg, logger, db, cleanup, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	logger.Info("Starting invoice-service",
		zap.String("profile", cfg.Profile),
		zap.String("version", cfg.Version),
	)

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if cfg.Database.AutoMigrate {
		if err := migrations.Up(ctx, sqlDB, logger); err != nil {
			return err
		}
	}

	aspect := core.NewLoggingAspect(cfg.Profile, logger)
	invoiceService := invoices.NewService(logger, aspect, invoicerepositories.NewInvoiceRepository(db), cfg.HTTP.RequestTimeout)
	shipmentService := shipments.NewService(logger, aspect, shipmentrepositories.NewShipmentRepository(db), cfg.HTTP.RequestTimeout)

	orchestrator := core.NewOrchestrator(logger, []core.Worker{
		stats.NewWorker(logger, cfg.StatsSchedule, map[string]stats.Counter{
			"invoice":  invoiceService,
			"shipment": shipmentService,
		}),
	})

	c, err := orchestrator.Start(ctx)
	if err != nil {
		return err
	}
	defer orchestrator.Stop(c)

	router := server.NewRouter(server.Dependencies{
		Config:    cfg,
		Logger:    logger,
		Ping:      sqlDB.PingContext,
		Invoices:  invoiceService,
		Shipments: shipmentService,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.New(cfg, logger, router).Run(gctx)
	})

	err = g.Wait()
	logger.Info("invoice-service stopped")
	return err
}
