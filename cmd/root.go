package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/psds-microservice/openapi-docs/internal/config"
)

var (
	flagDebug          bool
	flagConfig         string
	flagAPIFolder      string
	flagTitle          string
	flagAPIVersion     string
	flagDescription    string
	flagOpenAPIVersion string
)

var rootCmd = &cobra.Command{
	Use:   "openapi-docs",
	Short: "OpenAPI document generated from @openapi annotations in API route sources",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
	},
	RunE:          runServe, // по умолчанию — запуск сервера
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute запускает корневую команду (Cobra CLI)
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&flagDebug, "debug", false, "Debug logging")
	pf.StringVar(&flagConfig, "config", "./config/config.yaml", "Path to config.yaml")
	pf.StringVar(&flagAPIFolder, "api-folder", "", "API folder relative to the working directory (default pages/api)")
	pf.StringVar(&flagTitle, "title", "", "Document title")
	pf.StringVar(&flagAPIVersion, "api-version", "", "Document version")
	pf.StringVar(&flagDescription, "description", "", "Document description")
	pf.StringVar(&flagOpenAPIVersion, "openapi-version", "", "OpenAPI version (default 3.0.0)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig: YAML → env → флаги командной строки
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(flagConfig)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("api-folder") {
		cfg.Swagger.APIFolder = flagAPIFolder
	}
	if flags.Changed("title") {
		cfg.Swagger.Title = flagTitle
	}
	if flags.Changed("api-version") {
		cfg.Swagger.Version = flagAPIVersion
	}
	if flags.Changed("description") {
		cfg.Swagger.Description = flagDescription
	}
	if flags.Changed("openapi-version") {
		cfg.Swagger.OpenAPIVersion = flagOpenAPIVersion
	}
	return cfg, nil
}

func newLogger(debug bool, cfg *config.Config) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	zcfg := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(cfg.Logging.Level); err == nil {
		zcfg.Level = lvl
	}
	if cfg.Logging.Format == "console" {
		zcfg.Encoding = "console"
		zcfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	return zcfg.Build()
}

func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	logger, err := newLogger(flagDebug, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("logger: %w", err)
	}
	return cfg, logger, nil
}
