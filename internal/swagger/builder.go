// Package swagger собирает OpenAPI-документ Next.js-подобного приложения:
// вычисляет шаблоны файлов API-роутов и передаёт их сканеру аннотаций.
package swagger

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/psds-microservice/openapi-docs/internal/annotation"
)

// Scanner — сборщик документа по аннотациям (annotation.Scanner).
type Scanner interface {
	Scan(ctx context.Context, opts annotation.Options) (annotation.Document, error)
}

// Builder генерирует документ заново на каждый вызов Build, ничего не кеширует.
type Builder struct {
	options Options
	scanner Scanner
	getwd   func() (string, error)
	logger  *zap.Logger
}

// BuilderOption настраивает Builder
type BuilderOption func(*Builder)

// WithScanner подменяет сканер аннотаций
func WithScanner(s Scanner) BuilderOption {
	return func(b *Builder) {
		b.scanner = s
	}
}

// New создает Builder; значения по умолчанию применяются здесь, а не при каждом вызове.
func New(opts Options, logger *zap.Logger, options ...BuilderOption) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	b := &Builder{
		options: opts.WithDefaults(),
		getwd:   os.Getwd,
		logger:  logger,
	}
	for _, o := range options {
		o(b)
	}
	if b.scanner == nil {
		b.scanner = annotation.NewScanner(logger)
	}
	return b
}

// Options возвращает конфигурацию с применёнными значениями по умолчанию
func (b *Builder) Options() Options {
	return b.options
}

// Definition — корень документа: openapi и info. Пустые поля info опускаются.
func (b *Builder) Definition() annotation.Document {
	info := make(map[string]any, 3)
	if b.options.Title != "" {
		info["title"] = b.options.Title
	}
	if b.options.Version != "" {
		info["version"] = b.options.Version
	}
	if b.options.Description != "" {
		info["description"] = b.options.Description
	}
	return annotation.Document{
		"openapi": b.options.OpenAPIVersion,
		"info":    info,
	}
}

// ScanOptions собирает параметры сканирования от текущей рабочей директории процесса.
func (b *Builder) ScanOptions() (annotation.Options, error) {
	cwd, err := b.getwd()
	if err != nil {
		return annotation.Options{}, fmt.Errorf("working directory: %w", err)
	}
	return annotation.Options{
		Definition:   b.Definition(),
		APIs:         APIGlobs(cwd, b.options.APIFolder),
		FailOnErrors: true,
	}, nil
}

// Build возвращает документ сканера как есть; ошибки сканера не оборачиваются.
func (b *Builder) Build(ctx context.Context) (annotation.Document, error) {
	opts, err := b.ScanOptions()
	if err != nil {
		return nil, err
	}
	b.logger.Debug("Building OpenAPI document", zap.Strings("apis", opts.APIs))
	return b.scanner.Scan(ctx, opts)
}

// CreateSpec — однократная сборка документа по конфигурации.
func CreateSpec(ctx context.Context, opts Options, logger *zap.Logger) (annotation.Document, error) {
	return New(opts, logger).Build(ctx)
}
