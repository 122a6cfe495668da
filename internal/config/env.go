package config

import (
	"os"
	"strconv"
)

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// ApplyEnvOverrides применяет переменные окружения поверх конфига (env переопределяет YAML)
func ApplyEnvOverrides(cfg *YamlConfig) {
	if v := getEnv("HOST", ""); v != "" {
		cfg.Host = v
	}
	if v := getEnv("HTTP_PORT", ""); v != "" {
		cfg.Port = getEnvInt("HTTP_PORT", cfg.Port)
	} else if v := getEnv("PORT", ""); v != "" {
		cfg.Port = getEnvInt("PORT", cfg.Port)
	}
	if v := getEnv("GRPC_PORT", ""); v != "" {
		cfg.GRPCPort = v
	}

	if v := getEnv("SWAGGER_OPENAPI_VERSION", ""); v != "" {
		cfg.Swagger.OpenAPIVersion = v
	}
	if v := getEnv("SWAGGER_API_FOLDER", ""); v != "" {
		cfg.Swagger.APIFolder = v
	}
	if v := getEnv("SWAGGER_TITLE", ""); v != "" {
		cfg.Swagger.Title = v
	}
	if v := getEnv("SWAGGER_VERSION", ""); v != "" {
		cfg.Swagger.Version = v
	}
	if v := getEnv("SWAGGER_DESCRIPTION", ""); v != "" {
		cfg.Swagger.Description = v
	}

	if v := getEnv("DOCS_PATH", ""); v != "" {
		cfg.Docs.Path = v
	}
	if v := getEnv("DOCS_UI_PATH", ""); v != "" {
		cfg.Docs.UIPath = v
	}

	if v := getEnv("LOG_LEVEL", ""); v != "" {
		cfg.Logging.Level = v
	}
	if v := getEnv("LOG_FORMAT", ""); v != "" {
		cfg.Logging.Format = v
	}
}

// LoadConfigFromEnv собирает конфиг только из переменных окружения (для работы без YAML)
func LoadConfigFromEnv() *YamlConfig {
	cfg := GetDefaultYamlConfig()
	ApplyEnvOverrides(cfg)
	return cfg
}
