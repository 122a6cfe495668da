package config

import (
	"fmt"
	"strings"

	apperrors "github.com/psds-microservice/openapi-docs/internal/errors"
	"github.com/psds-microservice/openapi-docs/internal/swagger"
)

// HTTPAddr возвращает адрес HTTP сервера
func (c *YamlConfig) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SwaggerOptions возвращает параметры генерации документа
func (c *YamlConfig) SwaggerOptions() swagger.Options {
	return c.Swagger.WithDefaults()
}

// Validate проверяет конфигурацию сервиса
func (c *YamlConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("%w: port %d", apperrors.ErrInvalidConfig, c.Port)
	}
	if !strings.HasPrefix(c.Docs.Path, "/") {
		return fmt.Errorf("%w: docs.path must start with /", apperrors.ErrInvalidConfig)
	}
	if !strings.HasPrefix(c.Docs.UIPath, "/") {
		return fmt.Errorf("%w: docs.ui_path must start with /", apperrors.ErrInvalidConfig)
	}
	return c.Swagger.Validate()
}
