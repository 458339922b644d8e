package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tournevent/shipit/internal/server"
	"go.uber.org/zap"
)

var version = "0.0.1"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "shipit",
	Short:   "Shipit Bridge - Shipit logistics client, GraphQL service and webhook receiver",
	Version: version,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the GraphQL server and webhook receiver",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Initialize telemetry
	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	tracer, tracerShutdown, err := initTracer(ctx, cfg)
	if err != nil {
		logger.Warn("Failed to initialize tracer", zap.Error(err))
	} else {
		defer tracerShutdown(context.Background())
	}

	client := initShipitClient(cfg, logger, tracer)

	dispatcher, closeDispatcher, err := initDispatcher(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeDispatcher()

	logger.Info("Starting Shipit Bridge",
		zap.Int("port", cfg.Port),
		zap.String("version", cfg.Version),
		zap.String("environment", client.Environment().String()),
		zap.Bool("mock", cfg.ShipitUseMock),
	)

	// Start HTTP server
	srv := server.New(server.Config{Port: cfg.Port, WebhookPath: cfg.WebhookPath}, client, dispatcher, logger)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
