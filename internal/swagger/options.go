package swagger

import (
	"fmt"
	"path/filepath"
	"strings"

	apperrors "github.com/psds-microservice/openapi-docs/internal/errors"
)

// Значения по умолчанию
const (
	DefaultOpenAPIVersion = "3.0.0"
	DefaultAPIFolder      = "pages/api"
	// BuildOutputDir — куда Next.js кладёт скомпилированные API-роуты (относительно рабочей директории)
	BuildOutputDir = ".next/server"
)

// Options — конфигурация генерации документа.
// OpenAPIVersion и APIFolder необязательны; Title, Version, Description проверяются в Validate.
type Options struct {
	OpenAPIVersion string `yaml:"openapi_version"`
	APIFolder      string `yaml:"api_folder"`
	Title          string `yaml:"title"`
	Version        string `yaml:"version"`
	Description    string `yaml:"description"`
}

// WithDefaults возвращает копию с заполненными значениями по умолчанию
func (o Options) WithDefaults() Options {
	if o.OpenAPIVersion == "" {
		o.OpenAPIVersion = DefaultOpenAPIVersion
	}
	if o.APIFolder == "" {
		o.APIFolder = DefaultAPIFolder
	}
	return o
}

// Validate проверяет обязательные поля info
func (o Options) Validate() error {
	var missing []string
	if o.Title == "" {
		missing = append(missing, "title")
	}
	if o.Version == "" {
		missing = append(missing, "version")
	}
	if o.Description == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrMissingField, strings.Join(missing, ", "))
	}
	return nil
}

// APIGlobs строит шаблоны сканирования от рабочей директории:
// исходники <cwd>/<apiFolder>/**/*.{js,ts,tsx} и сборка <cwd>/.next/server/<apiFolder>/**/*.js.
func APIGlobs(cwd, apiFolder string) []string {
	apiDirectory := filepath.ToSlash(filepath.Join(cwd, apiFolder))
	buildAPIDirectory := filepath.ToSlash(filepath.Join(cwd, BuildOutputDir, apiFolder))
	return []string{
		apiDirectory + "/**/*.{js,ts,tsx}",
		buildAPIDirectory + "/**/*.js",
	}
}
