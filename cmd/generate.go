package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/psds-microservice/openapi-docs/internal/annotation"
	apperrors "github.com/psds-microservice/openapi-docs/internal/errors"
	"github.com/psds-microservice/openapi-docs/internal/swagger"
)

var (
	generateOutput string
	generateFormat string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build the OpenAPI document once and write it to a file or stdout",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output path (default stdout)")
	generateCmd.Flags().StringVar(&generateFormat, "format", "json", "Output format: json or yaml")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	opts := cfg.SwaggerOptions()
	if err := opts.Validate(); err != nil {
		logger.Warn("Incomplete document info", zap.Error(err))
	}

	doc, err := swagger.CreateSpec(cmd.Context(), opts, logger)
	if err != nil {
		return fmt.Errorf("build openapi: %w", err)
	}

	data, err := encodeDocument(doc, generateFormat)
	if err != nil {
		return err
	}

	if generateOutput == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(generateOutput, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", generateOutput, err)
	}
	logger.Info("OpenAPI document written",
		zap.String("output", generateOutput),
		zap.Int("paths", len(doc["paths"].(map[string]any))))
	return nil
}

func encodeDocument(doc annotation.Document, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal json: %w", err)
		}
		return append(data, '\n'), nil
	case "yaml", "yml":
		data, err := yaml.Marshal(map[string]any(doc))
		if err != nil {
			return nil, fmt.Errorf("marshal yaml: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: %s (json or yaml)", apperrors.ErrUnsupportedFormat, format)
	}
}
