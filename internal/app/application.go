package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/psds-microservice/openapi-docs/internal/config"
	"github.com/psds-microservice/openapi-docs/internal/handler"
	"github.com/psds-microservice/openapi-docs/internal/swagger"
)

// Application основное приложение (HTTP; gRPC поднимается рядом из cmd)
type Application struct {
	config      *config.Config
	logger      *zap.Logger
	router      http.Handler
	server      *http.Server
	builder     *swagger.Builder
	docsHandler *handler.SwaggerHandler
}

// NewApplicationWithConfig создает приложение с конфигурацией
func NewApplicationWithConfig(cfg *config.Config, logger *zap.Logger) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		logger.Warn("Incomplete configuration, document info may be partial", zap.Error(err))
	}

	builder := swagger.New(cfg.SwaggerOptions(), logger)
	docsHandler := handler.NewSwaggerHandler(builder)

	router := NewRouter(docsHandler, logger, cfg)

	server := &http.Server{
		Addr:           cfg.HTTPAddr(),
		Handler:        router,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	return &Application{
		config:      cfg,
		logger:      logger,
		router:      router,
		server:      server,
		builder:     builder,
		docsHandler: docsHandler,
	}, nil
}

// GetBuilder возвращает генератор документа
func GetBuilder(app *Application) *swagger.Builder {
	return app.builder
}

// GetConfig возвращает конфигурацию
func GetConfig(app *Application) *config.Config {
	return app.config
}

// Start запускает приложение
func (app *Application) Start() error {
	opts := app.builder.Options()
	app.logger.Info("Starting application",
		zap.String("address", app.server.Addr),
		zap.String("api_folder", opts.APIFolder),
		zap.String("openapi", opts.OpenAPIVersion))
	return app.server.ListenAndServe()
}

// Stop останавливает приложение, дожидаясь активных запросов
func (app *Application) Stop(ctx context.Context) error {
	app.logger.Info("Stopping application")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// GetRouter возвращает роутер
func (app *Application) GetRouter() http.Handler {
	return app.router
}
