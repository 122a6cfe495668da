package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/psds-microservice/openapi-docs/internal/app"
	"github.com/psds-microservice/openapi-docs/internal/config"
	"github.com/psds-microservice/openapi-docs/internal/grpc_server"
)

var serveGrpcPort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run HTTP server (and gRPC when grpc port is set) serving the OpenAPI document",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveGrpcPort, "grpc-port", "", "gRPC port (empty disables gRPC)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if serveGrpcPort != "" {
		cfg.GRPCPort = serveGrpcPort
	}

	application, err := app.NewApplicationWithConfig(cfg, logger)
	if err != nil {
		return fmt.Errorf("application: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	return runDualServer(ctx, application, logger, cfg)
}

func runDualServer(
	ctx context.Context,
	application *app.Application,
	logger *zap.Logger,
	cfg *config.Config,
) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	httpErrChan := make(chan error, 1)
	grpcErrChan := make(chan error, 1)

	// HTTP server
	go func() {
		if err := application.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", zap.Error(err))
			httpErrChan <- err
		}
	}()

	// gRPC server
	if cfg.GRPCPort != "" {
		grpcServer := grpc_server.NewGRPCServer(grpc_server.Deps{
			Generator: app.GetBuilder(application),
			Logger:    logger,
		})
		go func() {
			if err := grpc_server.RunGRPC(ctx, cfg.GRPCPort, grpcServer, logger); err != nil {
				logger.Error("gRPC server error", zap.Error(err))
				grpcErrChan <- err
			}
		}()
	}

	host := cfg.Host
	if host == "0.0.0.0" {
		host = "localhost"
	}
	httpBase := fmt.Sprintf("http://%s:%d", host, cfg.Port)
	logger.Info("HTTP server listening",
		zap.String("address", cfg.HTTPAddr()),
		zap.String("openapi", httpBase+cfg.Docs.Path),
		zap.String("swagger_ui", httpBase+strings.TrimSuffix(cfg.Docs.UIPath, "/")+"/index.html"),
		zap.String("health", httpBase+"/health"))
	if cfg.GRPCPort != "" {
		logger.Info("gRPC server listening", zap.String("address", ":"+cfg.GRPCPort))
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case runErr = <-httpErrChan:
	case runErr = <-grpcErrChan:
	}

	logger.Info("Stopping servers...")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := application.Stop(shutdownCtx); err != nil {
		logger.Error("HTTP stop error", zap.Error(err))
	}
	logger.Info("Server stopped")
	return runErr
}
