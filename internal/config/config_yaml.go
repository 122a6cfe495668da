package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/psds-microservice/openapi-docs/internal/swagger"
	"github.com/psds-microservice/openapi-docs/pkg/constants"
)

// YamlConfig представляет конфигурацию сервиса документации из YAML
type YamlConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	GRPCPort string `yaml:"grpc_port"`

	Swagger swagger.Options `yaml:"swagger"`

	Docs struct {
		Path   string `yaml:"path"`
		UIPath string `yaml:"ui_path"`
	} `yaml:"docs"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
}

// LoadYamlConfig загружает конфигурацию из YAML файла поверх значений по умолчанию
func LoadYamlConfig(path string) (*YamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := GetDefaultYamlConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// GetDefaultYamlConfig возвращает конфигурацию по умолчанию
func GetDefaultYamlConfig() *YamlConfig {
	cfg := &YamlConfig{
		Host: "0.0.0.0",
		Port: 8080,
	}
	cfg.Swagger.OpenAPIVersion = swagger.DefaultOpenAPIVersion
	cfg.Swagger.APIFolder = swagger.DefaultAPIFolder
	cfg.Docs.Path = constants.PathOpenAPI
	cfg.Docs.UIPath = constants.PathSwagger
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "json"
	return cfg
}
