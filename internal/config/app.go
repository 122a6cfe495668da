package config

import (
	"errors"
	"fmt"
	"io/fs"

	apperrors "github.com/psds-microservice/openapi-docs/internal/errors"
)

// Config — алиас для YamlConfig
type Config = YamlConfig

// LoadConfig загружает конфигурацию: сначала YAML (если файл есть), затем применяет переопределения из .env.
// Отсутствующий файл не ошибка — конфиг собирается из env и дефолтов; битый YAML возвращается как ошибка.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return LoadConfigFromEnv(), nil
	}
	cfg, err := LoadYamlConfig(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return LoadConfigFromEnv(), nil
		}
		return nil, fmt.Errorf("%w: %s: %v", apperrors.ErrInvalidConfig, path, err)
	}
	ApplyEnvOverrides(cfg)
	return cfg, nil
}

// GetDefaultConfig возвращает конфигурацию по умолчанию
func GetDefaultConfig() *Config {
	return GetDefaultYamlConfig()
}
