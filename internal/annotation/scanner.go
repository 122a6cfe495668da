package annotation

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Options — входные данные сканирования.
type Options struct {
	// Definition — корень документа (openapi, info, ...), в который вливаются фрагменты.
	Definition Document
	// APIs — glob-шаблоны файлов с аннотациями (поддерживаются ** и {a,b}).
	APIs []string
	// FailOnErrors: ошибка разбора фрагмента прерывает сканирование вместо предупреждения в лог.
	FailOnErrors bool
}

// ParseError — некорректный YAML во фрагменте.
type ParseError struct {
	File string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: invalid annotation: %v", e.File, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var errNotMapping = errors.New("annotation must be a YAML mapping")

// Scanner обходит файлы по шаблонам и собирает из них OpenAPI-документ.
type Scanner struct {
	logger *zap.Logger
}

// NewScanner создает сканер
func NewScanner(logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{logger: logger}
}

// Scan строит новый документ: Definition не изменяется, результат каждый раз независим.
func (s *Scanner) Scan(ctx context.Context, opts Options) (Document, error) {
	doc := opts.Definition.Clone()
	if doc == nil {
		doc = Document{}
	}

	files, err := ResolveFiles(opts.APIs)
	if err != nil {
		return nil, err
	}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fragments, parseErrs, err := parseFile(file)
		if err != nil {
			return nil, err
		}
		for _, perr := range parseErrs {
			if opts.FailOnErrors {
				return nil, perr
			}
			s.logger.Warn("Skipping malformed annotation",
				zap.String("file", perr.File),
				zap.Int("line", perr.Line),
				zap.Error(perr.Err))
		}
		for _, fragment := range fragments {
			organize(doc, fragment)
		}
	}

	finalize(doc)
	s.logger.Debug("OpenAPI document assembled",
		zap.Int("files", len(files)),
		zap.Int("paths", len(doc["paths"].(map[string]any))))
	return doc, nil
}

// ResolveFiles раскрывает шаблоны в отсортированный список файлов без повторов.
// Шаблон, базовая директория которого не существует, не даёт совпадений.
func ResolveFiles(patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	for _, pattern := range patterns {
		matches, err := expand(pattern)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	return files, nil
}

func expand(pattern string) ([]string, error) {
	base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
	if _, err := os.Stat(filepath.FromSlash(base)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat %s: %w", base, err)
	}
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

func parseFile(path string) ([]map[string]any, []*ParseError, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	var raws []rawAnnotation
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		raws = []rawAnnotation{{Line: 1, Text: string(data)}}
	default:
		raws = extractAnnotations(string(data))
	}

	var (
		fragments []map[string]any
		parseErrs []*ParseError
	)
	for _, raw := range raws {
		fragment, err := decodeFragment(raw.Text)
		if err != nil {
			parseErrs = append(parseErrs, &ParseError{File: path, Line: raw.Line, Err: err})
			continue
		}
		if fragment != nil {
			fragments = append(fragments, fragment)
		}
	}
	return fragments, parseErrs, nil
}

func decodeFragment(text string) (map[string]any, error) {
	var v any
	if err := yaml.Unmarshal([]byte(text), &v); err != nil {
		return nil, err
	}
	if v == nil {
		return nil, nil
	}
	m, ok := normalize(v).(map[string]any)
	if !ok {
		return nil, errNotMapping
	}
	return m, nil
}
