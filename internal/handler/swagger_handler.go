package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/psds-microservice/openapi-docs/internal/annotation"
	"github.com/psds-microservice/openapi-docs/internal/swagger"
	"github.com/psds-microservice/openapi-docs/pkg/constants"
)

// Generator — источник OpenAPI-документа (swagger.Builder).
type Generator interface {
	Build(ctx context.Context) (annotation.Document, error)
}

// SwaggerHandler отдаёт документ, собранный заново на каждый запрос.
// Метод, query и тело запроса не используются.
type SwaggerHandler struct {
	generator Generator
}

// NewSwaggerHandler создает хендлер документа
func NewSwaggerHandler(generator Generator) *SwaggerHandler {
	return &SwaggerHandler{generator: generator}
}

// WithSwagger фиксирует конфигурацию и возвращает net/http хендлер:
// 200 с JSON-документом или 400 с текстом ошибки как есть.
func WithSwagger(opts swagger.Options, logger *zap.Logger) http.HandlerFunc {
	return NewSwaggerHandler(swagger.New(opts, logger)).ServeHTTP
}

func (h *SwaggerHandler) render(ctx context.Context) (int, string, []byte) {
	doc, err := h.generator.Build(ctx)
	if err == nil {
		var body []byte
		if body, err = json.Marshal(doc); err == nil {
			return http.StatusOK, constants.ContentTypeJSON, body
		}
	}
	return http.StatusBadRequest, constants.ContentTypeText, []byte(err.Error())
}

// ServeHTTP реализует http.Handler
func (h *SwaggerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status, contentType, body := h.render(r.Context())
	w.Header().Set(constants.HeaderContentType, contentType)
	w.WriteHeader(status)
	w.Write(body)
}

// Gin — тот же хендлер для gin-роутера
func (h *SwaggerHandler) Gin() gin.HandlerFunc {
	return func(c *gin.Context) {
		status, contentType, body := h.render(c.Request.Context())
		c.Data(status, contentType, body)
	}
}
