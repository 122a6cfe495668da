package app

import (
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/psds-microservice/openapi-docs/internal/config"
	"github.com/psds-microservice/openapi-docs/internal/handler"
	"github.com/psds-microservice/openapi-docs/pkg/constants"
)

// NewRouter создает роутер: health, OpenAPI-документ и Swagger UI
func NewRouter(
	docsHandler *handler.SwaggerHandler,
	logger *zap.Logger,
	cfg *config.Config,
) http.Handler {

	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Output: io.Discard,
		Formatter: func(param gin.LogFormatterParams) string {
			logger.Info("HTTP Request",
				zap.String("method", param.Method),
				zap.String("path", param.Path),
				zap.Int("status", param.StatusCode),
				zap.Duration("latency", param.Latency),
				zap.String("client_ip", param.ClientIP))
			return ""
		},
	}))
	router.Use(gin.Recovery())

	corsOpts := cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "HEAD", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Accept", "Origin", "Cache-Control", "X-Requested-With"},
	}

	router.GET(constants.PathHealth, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "openapi-docs",
			"time":    time.Now().Unix(),
		})
	})
	router.GET(constants.PathReady, func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	// метод запроса не проверяется
	router.Any(cfg.Docs.Path, docsHandler.Gin())

	uiPath := strings.TrimSuffix(cfg.Docs.UIPath, "/")
	router.GET(uiPath+"/*any", gin.WrapH(httpSwagger.Handler(
		httpSwagger.URL(cfg.Docs.Path),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
	)))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not Found",
			"message": "The requested resource was not found",
			"path":    c.Request.URL.Path,
			"suggestions": []string{
				"Check " + constants.PathHealth + " for service status",
				"Check " + cfg.Docs.Path + " for the OpenAPI document",
				"Check " + uiPath + "/index.html for Swagger UI",
			},
		})
	})

	return cors.New(corsOpts).Handler(router)
}
